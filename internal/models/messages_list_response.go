package models

type MessageListResponse struct {
	Messages  []Message     `json:"messages"`
	OtherUser *UserResponse `json:"other_user"`
}
