package models

// FeedEvent is one item on a live update feed: either a newly arrived
// message addressed to the viewer, or the terminal close notice. After a
// close event the feed emits nothing further.
type FeedEvent struct {
	Event   string   `json:"event"`
	Message *Message `json:"message,omitempty"`
	Reason  string   `json:"reason,omitempty"`
}
