package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/Amala4/Chat-App/internal/enums"
	"github.com/Amala4/Chat-App/internal/errs"
	"github.com/Amala4/Chat-App/internal/models"
	redisModels "github.com/Amala4/Chat-App/internal/models/redis"
	"github.com/Amala4/Chat-App/internal/msgs"
	"github.com/Amala4/Chat-App/internal/services"
	"github.com/Amala4/Chat-App/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

// SocketChatHandler is the websocket alternative to the SSE stream:
// clients connected to a pair's channel receive every message committed
// for that pair, fanned out through redis so all server instances see
// the publish, and may push sends over the same connection.
type SocketChatHandler struct {
	mu          sync.Mutex
	ctx         context.Context
	upgrader    websocket.Upgrader
	hub         *models.SocketHub
	chatService *services.ChatService
}

func NewSocketChatHandler(redis *redis.Client, ctx context.Context, chatService *services.ChatService) *SocketChatHandler {
	return &SocketChatHandler{
		ctx:         ctx,
		chatService: chatService,
		hub: &models.SocketHub{
			Pairs: make(map[string][]*models.SocketClient),
			Redis: redis,
		},
	}
}

func (sch *SocketChatHandler) StartSocket() {
	sch.initializeSocketUpgrader()
	go sch.handleRedisMessages()
}

func (sch *SocketChatHandler) initializeSocketUpgrader() {
	sch.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
}

func (sch *SocketChatHandler) HandleSocketChatRoute(ctx *gin.Context) {
	jwtToken := ctx.Request.Header.Get("Authorization")
	if jwtToken == "" {
		jwtToken = ctx.Query("token")
	}
	userInfo, err := utils.VerifyToken(jwtToken, utils.GetJwtKey())
	if err != nil || userInfo.ID == 0 {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrUnauthorized},
		})
		return
	}

	peerId := ctx.Query("peerId")
	peerIdInt, err := strconv.Atoi(peerId)
	if err != nil || peerIdInt < 1 || uint(peerIdInt) == userInfo.ID {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidPeerId},
		})
		return
	}
	peerID := uint(peerIdInt)
	if err := sch.chatService.CheckUserExists(peerID); err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}

	sch.handleConnection(ctx, userInfo, peerID)
}

func (sch *SocketChatHandler) handleConnection(ctx *gin.Context, userInfo *models.Claims, peerID uint) {
	ws, err := sch.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer func(ws *websocket.Conn) {
		if err := ws.Close(); err != nil {
			log.Printf("Error closing connection: %v", err)
		}
	}(ws)

	pairKey := utils.PairKey(userInfo.ID, peerID)

	ws.SetCloseHandler(func(code int, text string) error {
		sch.removeClientFromPair(userInfo.ID, pairKey)
		return nil
	})

	sch.addClientToPair(userInfo.ID, pairKey, ws)
	sch.readLoop(ws, userInfo, peerID, pairKey)
}

func (sch *SocketChatHandler) addClientToPair(userId uint, pairKey string, ws *websocket.Conn) {
	sch.mu.Lock()
	defer sch.mu.Unlock()
	if _, ok := sch.hub.Pairs[pairKey]; !ok {
		sch.hub.Pairs[pairKey] = []*models.SocketClient{}
	}
	sch.hub.Pairs[pairKey] = append(sch.hub.Pairs[pairKey], &models.SocketClient{
		Conn:   ws,
		UserId: userId,
	})
}

func (sch *SocketChatHandler) readLoop(ws *websocket.Conn, userInfo *models.Claims, peerID uint, pairKey string) {
	for {
		var event models.SocketEvent
		err := ws.ReadJSON(&event)
		if err != nil {
			log.Printf("Error reading json: %v", err)
			sch.removeClientFromPair(userInfo.ID, pairKey)
			break
		}

		switch event.Event {
		case enums.SOCKET_EVENT_SEND_MESSAGE:
			if errList := sch.handleSendMessageEvent(event.Payload, userInfo, peerID); len(errList) > 0 {
				log.Printf("Error while handling send message event: %v", errList)
			}
		default:
			log.Printf("Unknown event: %v", event.Event)
		}
	}
}

func (sch *SocketChatHandler) handleSendMessageEvent(payload json.RawMessage, userInfo *models.Claims, peerID uint) []error {
	var errList []error
	var messageRequest models.MessageRequest
	if err := json.Unmarshal(payload, &messageRequest); err != nil {
		errList = append(errList, errs.ErrInvalidRequest)
		return errList
	}

	// The service persists and publishes; fan-out to this hub happens
	// through the redis subscription like every other instance.
	_, sendErrs := sch.chatService.SendMessage(userInfo.ID, peerID, messageRequest.Content)
	if len(sendErrs) > 0 {
		errList = append(errList, sendErrs...)
		return errList
	}
	return nil
}

func (sch *SocketChatHandler) removeClientFromPair(userId uint, pairKey string) {
	sch.mu.Lock()
	defer sch.mu.Unlock()
	for i, client := range sch.hub.Pairs[pairKey] {
		if client.UserId == userId {
			sch.hub.Pairs[pairKey] = append(sch.hub.Pairs[pairKey][:i], sch.hub.Pairs[pairKey][i+1:]...)
			break
		}
	}
	if len(sch.hub.Pairs[pairKey]) == 0 {
		delete(sch.hub.Pairs, pairKey)
	}
}

func (sch *SocketChatHandler) handleRedisMessages() {
	ch := sch.subscribeToChannel(sch.hub.Redis, redisModels.REDIS_CHANNEL_CHAT)
	for msg := range ch {
		var redisMessage redisModels.RedisPublishedMessage
		if err := json.Unmarshal([]byte(msg.Payload), &redisMessage); err != nil {
			log.Printf("Error unmarshalling message: %v", err)
			continue
		}
		sch.sendMessageToPair(redisMessage)
	}
}

func (sch *SocketChatHandler) sendMessageToPair(redisMessage redisModels.RedisPublishedMessage) {
	sch.mu.Lock()
	defer sch.mu.Unlock()
	clients, ok := sch.hub.Pairs[redisMessage.PairKey]
	if !ok {
		return
	}
	for _, client := range clients {
		if err := client.Conn.WriteJSON(redisMessage); err != nil {
			log.Printf("Error writing json: %v", err)
			if err := client.Conn.Close(); err != nil {
				log.Printf("Error closing connection: %v", err)
			}
		}
	}
}

func (sch *SocketChatHandler) subscribeToChannel(redis *redis.Client, channel string) <-chan *redis.Message {
	pubsub := redis.Subscribe(sch.ctx, channel)
	if _, err := pubsub.Receive(sch.ctx); err != nil {
		log.Fatalf("Could not subscribe to channel: %v", err)
	}
	return pubsub.Channel()
}
