package services

import (
	"context"
	"log"
	"time"

	"github.com/Amala4/Chat-App/internal/enums"
	"github.com/Amala4/Chat-App/internal/models"
)

// FeedMessageStore is the read surface a live feed polls. Implemented by
// repositories.ChatRepository; mocked in tests.
type FeedMessageStore interface {
	ListMessagesBetween(userA, userB uint, since *time.Time) ([]models.Message, error)
}

// FeedService runs one goroutine per open feed. Each feed keeps a
// watermark of the last delivered timestamp and re-polls the store, so
// feeds never block each other or the send path.
type FeedService struct {
	store             FeedMessageStore
	pollInterval      time.Duration
	inactivityTimeout time.Duration
}

func NewFeedService(store FeedMessageStore, pollInterval, inactivityTimeout time.Duration) *FeedService {
	return &FeedService{
		store:             store,
		pollInterval:      pollInterval,
		inactivityTimeout: inactivityTimeout,
	}
}

// Open starts a live feed for viewerID watching its conversation with
// peerID. The returned channel carries one event per message addressed
// to the viewer, then exactly one close event (inactivity or store
// error) before closing - unless the context is cancelled first, in
// which case the channel just closes. The viewer's own outbound
// messages are not echoed back on this channel.
func (fs *FeedService) Open(ctx context.Context, viewerID, peerID uint) <-chan models.FeedEvent {
	events := make(chan models.FeedEvent)
	go fs.watch(ctx, viewerID, peerID, events)
	return events
}

func (fs *FeedService) watch(ctx context.Context, viewerID, peerID uint, events chan<- models.FeedEvent) {
	defer close(events)

	watermark := time.Now()
	lastActivity := time.Now()

	for {
		messages, err := fs.store.ListMessagesBetween(viewerID, peerID, &watermark)
		if err != nil {
			log.Printf("Feed store read failed for viewer %d peer %d: %v", viewerID, peerID, err)
			fs.emit(ctx, events, models.FeedEvent{
				Event:  enums.FEED_EVENT_CLOSE,
				Reason: enums.FEED_CLOSE_REASON_STORE,
			})
			return
		}

		if len(messages) > 0 {
			// The store returns ascending order, so the last row holds
			// the new watermark.
			watermark = messages[len(messages)-1].CreatedAt
			lastActivity = time.Now()

			for i := range messages {
				if messages[i].SenderID != peerID || messages[i].ReceiverID != viewerID {
					continue
				}
				if !fs.emit(ctx, events, models.FeedEvent{
					Event:   enums.FEED_EVENT_MESSAGE,
					Message: &messages[i],
				}) {
					return
				}
			}
		} else if time.Since(lastActivity) > fs.inactivityTimeout {
			fs.emit(ctx, events, models.FeedEvent{
				Event:  enums.FEED_EVENT_CLOSE,
				Reason: enums.FEED_CLOSE_REASON_INACTIVITY,
			})
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(fs.pollInterval):
		}
	}
}

// emit delivers one event unless the client is already gone; it reports
// whether the loop should keep running.
func (fs *FeedService) emit(ctx context.Context, events chan<- models.FeedEvent, event models.FeedEvent) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		return false
	}
}
