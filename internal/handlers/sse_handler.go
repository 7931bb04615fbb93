package handlers

import (
	"io"

	"github.com/Amala4/Chat-App/internal/enums"
	"github.com/Amala4/Chat-App/internal/utils"
	"github.com/gin-gonic/gin"
)

// StreamConversation serves the live update feed over server-sent
// events. The feed goroutine stops when the client disconnects (the
// request context is its cancellation signal) or when it closes itself
// after the inactivity window.
func (rh *RestHandler) StreamConversation(ctx *gin.Context) {
	viewerID := utils.GetUserIdFromContext(ctx)
	if viewerID < 1 {
		rh.abortUnauthorized(ctx)
		return
	}

	peerID, ok := rh.peerIdParam(ctx)
	if !ok {
		return
	}

	if err := rh.chatService.CheckUserExists(peerID); err != nil {
		rh.abortOnChatErrors(ctx, []error{err})
		return
	}

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")
	ctx.Writer.Header().Set("X-Accel-Buffering", "no")

	events := rh.feedService.Open(ctx.Request.Context(), viewerID, peerID)

	ctx.Stream(func(w io.Writer) bool {
		event, open := <-events
		if !open {
			return false
		}
		ctx.SSEvent(event.Event, event)
		// A close event is terminal, stop streaming after writing it.
		return event.Event != enums.FEED_EVENT_CLOSE
	})
}
