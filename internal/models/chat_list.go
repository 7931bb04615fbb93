package models

import "time"

// ChatListEntry is derived on every request, never persisted.
type ChatListEntry struct {
	OtherUser              *UserResponse `json:"other_user"`
	LatestMessage          *Message      `json:"latest_message"`
	LatestMessageTimestamp time.Time     `json:"latest_message_timestamp"`
}

type ChatListResponse struct {
	ChatList []ChatListEntry `json:"chat_list"`
}
