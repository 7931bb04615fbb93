package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Amala4/Chat-App/internal/errs"
	"github.com/Amala4/Chat-App/internal/models"
	"github.com/Amala4/Chat-App/internal/msgs"
	"github.com/Amala4/Chat-App/internal/services"
	"github.com/Amala4/Chat-App/internal/utils"
	"github.com/gin-gonic/gin"
)

type RestHandler struct {
	authService *services.AuthenticationService
	chatService *services.ChatService
	feedService *services.FeedService
}

func NewRestHandler(
	authService *services.AuthenticationService,
	chatService *services.ChatService,
	feedService *services.FeedService,
) *RestHandler {
	return &RestHandler{
		authService: authService,
		chatService: chatService,
		feedService: feedService,
	}
}

func (rh *RestHandler) Register(ctx *gin.Context) {
	var errList []error

	var user models.User
	err := ctx.BindJSON(&user)
	if err != nil {
		errList = append(errList, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errList,
		})
		return
	}

	_, registerErrs := rh.authService.Register(&user)
	if len(registerErrs) > 0 {
		errList = append(errList, registerErrs...)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errList,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgUserCreatedSuccessfully,
	})
}

func (rh *RestHandler) Login(ctx *gin.Context) {
	var errList []error

	var loginData models.LoginRequestBody
	err := ctx.BindJSON(&loginData)
	if err != nil {
		log.Println("Error login data json binding:", err)
		errList = append(errList, errs.ErrInvalidRequestBody)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errList,
		})
		return
	}

	loginResponse, loginErrs := rh.authService.Login(&loginData)
	if len(loginErrs) > 0 {
		errList = append(errList, loginErrs...)
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  errList,
		})
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    loginResponse,
	})
}

func (rh *RestHandler) GetProfile(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	user, err := rh.authService.GetUserByID(userID)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{err},
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    user.ToProfileResponse(),
	})
}

func (rh *RestHandler) GetAllUsers(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	page, size := paginationParams(ctx)

	response, userErrs := rh.authService.GetAllUsersWithPagination(userID, page, size)
	if len(userErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  userErrs,
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    response,
	})
}

func (rh *RestHandler) SearchUsers(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	users, searchErrs := rh.authService.SearchUsers(userID, ctx.Query("q"))
	if len(searchErrs) > 0 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  searchErrs,
		})
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    models.SearchUsersResponse{Users: users},
	})
}

func (rh *RestHandler) GetChatList(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	chatList, listErrs := rh.chatService.GetChatList(userID)
	if len(listErrs) > 0 {
		rh.abortOnChatErrors(ctx, listErrs)
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    models.ChatListResponse{ChatList: chatList},
	})
}

func (rh *RestHandler) GetConversation(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	peerID, ok := rh.peerIdParam(ctx)
	if !ok {
		return
	}

	history, historyErrs := rh.chatService.GetConversation(userID, peerID)
	if len(historyErrs) > 0 {
		rh.abortOnChatErrors(ctx, historyErrs)
		return
	}
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    history,
	})
}

func (rh *RestHandler) SendMessage(ctx *gin.Context) {
	senderID := utils.GetUserIdFromContext(ctx)
	if senderID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	peerID, ok := rh.peerIdParam(ctx)
	if !ok {
		return
	}

	var messageRequest models.MessageRequest
	if err := ctx.ShouldBindJSON(&messageRequest); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidRequest},
		})
		return
	}

	message, sendErrs := rh.chatService.SendMessage(senderID, peerID, messageRequest.Content)
	if len(sendErrs) > 0 {
		rh.abortOnChatErrors(ctx, sendErrs)
		return
	}

	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: msgs.MsgOperationSuccessful,
		Data:    message,
	})
}

func (rh *RestHandler) abortUnauthorized(ctx *gin.Context) {
	log.Println("User id not found")
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
		Success: false,
		Message: msgs.MsgOperationFailed,
		Errors:  []error{errs.ErrUnauthorized},
	})
}

// abortOnChatErrors picks the status from the error class: an
// unresolved peer is 404, domain rule violations are 400, and anything
// the store threw is 500. The envelope stays the same.
func (rh *RestHandler) abortOnChatErrors(ctx *gin.Context, errList []error) {
	status := http.StatusBadRequest
	for _, err := range errList {
		if errors.Is(err, errs.ErrUserNotFound) {
			status = http.StatusNotFound
			break
		}
		var domainErr errs.Error
		if !errors.As(err, &domainErr) {
			status = http.StatusInternalServerError
		}
	}
	ctx.AbortWithStatusJSON(status, models.Response{
		Success: false,
		Message: msgs.MsgOperationFailed,
		Errors:  errList,
	})
}

func (rh *RestHandler) peerIdParam(ctx *gin.Context) (uint, bool) {
	id := ctx.Param("id")
	idInt, err := strconv.Atoi(id)
	if err != nil || idInt < 1 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  []error{errs.ErrInvalidPeerId},
		})
		return 0, false
	}
	return uint(idInt), true
}

func paginationParams(ctx *gin.Context) (int, int) {
	page, err := strconv.Atoi(ctx.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(ctx.Query("size"))
	if err != nil || size < 1 {
		size = 10
	}
	return page, size
}
