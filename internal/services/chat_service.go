package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"time"

	"github.com/Amala4/Chat-App/internal/enums"
	"github.com/Amala4/Chat-App/internal/errs"
	"github.com/Amala4/Chat-App/internal/models"
	redisModels "github.com/Amala4/Chat-App/internal/models/redis"
	"github.com/Amala4/Chat-App/internal/utils"
	"github.com/redis/go-redis/v9"
)

// ChatRepository is the persistence surface the chat service needs.
// Implemented by repositories.ChatRepository; mocked in tests.
type ChatRepository interface {
	ResolveOrCreateConversation(userA, userB uint) (*models.Conversation, []error)
	SaveMessage(message *models.Message) (*models.Message, []error)
	ListMessagesBetween(userA, userB uint, since *time.Time) ([]models.Message, error)
	GetUserConversations(userID uint) ([]models.Conversation, error)
	GetConversationLastMessage(conversationID uint) (*models.Message, error)
	GetUserByID(id uint) (*models.User, error)
}

type ChatService struct {
	chatRepo ChatRepository
	redis    *redis.Client
	ctx      context.Context
}

func NewChatService(chatRepo ChatRepository, redis *redis.Client, ctx context.Context) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		redis:    redis,
		ctx:      ctx,
	}
}

// SendMessage resolves the pair's conversation (creating it on first
// contact), appends the message and fans the committed row out over
// redis for websocket listeners. The fan-out is advisory: a publish
// failure is logged, never surfaced, because polling readers will pick
// the row up from the store anyway.
func (cs *ChatService) SendMessage(senderID, peerID uint, content string) (*models.Message, []error) {
	var errList []error

	if senderID == peerID {
		errList = append(errList, errs.ErrSelfConversation)
		return nil, errList
	}

	if _, err := cs.chatRepo.GetUserByID(peerID); err != nil {
		errList = append(errList, err)
		return nil, errList
	}

	conversation, resolveErrs := cs.chatRepo.ResolveOrCreateConversation(senderID, peerID)
	if len(resolveErrs) > 0 {
		return nil, resolveErrs
	}

	conversationID := conversation.ID
	message := &models.Message{
		ConversationID: &conversationID,
		SenderID:       senderID,
		ReceiverID:     peerID,
		Content:        content,
	}

	saved, saveErrs := cs.chatRepo.SaveMessage(message)
	if len(saveErrs) > 0 {
		return nil, saveErrs
	}

	cs.publishNewMessage(saved)

	return saved, nil
}

// GetConversation returns the full two-party history, ascending.
func (cs *ChatService) GetConversation(viewerID, peerID uint) (*models.MessageListResponse, []error) {
	var errList []error

	peer, err := cs.chatRepo.GetUserByID(peerID)
	if err != nil {
		errList = append(errList, err)
		return nil, errList
	}

	messages, err := cs.chatRepo.ListMessagesBetween(viewerID, peerID, nil)
	if err != nil {
		errList = append(errList, err)
		return nil, errList
	}

	return &models.MessageListResponse{
		Messages:  messages,
		OtherUser: peer.ToUserResponse(),
	}, nil
}

// GetChatList rebuilds the inbox overview from scratch on every call:
// one entry per conversation the user participates in, carrying the
// other participant and the latest message, most recently active first.
// Conversations with no messages yet are skipped rather than failed.
func (cs *ChatService) GetChatList(userID uint) ([]models.ChatListEntry, []error) {
	var errList []error

	conversations, err := cs.chatRepo.GetUserConversations(userID)
	if err != nil {
		errList = append(errList, err)
		return nil, errList
	}

	chatList := []models.ChatListEntry{}
	for _, conversation := range conversations {
		latest, err := cs.chatRepo.GetConversationLastMessage(conversation.ID)
		if err != nil {
			if err == errs.ErrEmptyConversation {
				continue
			}
			errList = append(errList, err)
			return nil, errList
		}

		other := conversation.OtherMember(userID)
		if other == nil {
			continue
		}

		chatList = append(chatList, models.ChatListEntry{
			OtherUser:              other.ToUserResponse(),
			LatestMessage:          latest,
			LatestMessageTimestamp: latest.CreatedAt,
		})
	}

	// Stable so equal timestamps keep the fetch order.
	sort.SliceStable(chatList, func(i, j int) bool {
		return chatList[i].LatestMessageTimestamp.After(chatList[j].LatestMessageTimestamp)
	})

	return chatList, nil
}

func (cs *ChatService) CheckUserExists(userID uint) error {
	_, err := cs.chatRepo.GetUserByID(userID)
	return err
}

func (cs *ChatService) publishNewMessage(message *models.Message) {
	if cs.redis == nil {
		return
	}

	redisEvent := redisModels.RedisPublishedMessage{
		Event:   enums.SOCKET_EVENT_NEW_MESSAGE,
		PairKey: utils.PairKey(message.SenderID, message.ReceiverID),
		Payload: message,
	}

	jsonEvent, err := json.Marshal(redisEvent)
	if err != nil {
		log.Printf("Error marshalling message event: %v", err)
		return
	}
	if err := cs.redis.Publish(cs.ctx, redisModels.REDIS_CHANNEL_CHAT, jsonEvent).Err(); err != nil {
		log.Printf("Error publishing message event: %v", err)
	}
}
