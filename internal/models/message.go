package models

import (
	"gorm.io/gorm"
)

// Message is an immutable append-only record. ConversationID is nullable
// only to tolerate rows that predate conversation linking; the send path
// always sets it. CreatedAt is assigned on insert and is non-decreasing
// in insertion order, which the live feed's watermark relies on.
type Message struct {
	gorm.Model
	ConversationID *uint         `json:"conversation_id"`
	Conversation   *Conversation `json:"-"`
	SenderID       uint          `gorm:"index;not null" json:"sender_id"`
	ReceiverID     uint          `gorm:"index;not null" json:"receiver_id"`
	Content        string        `json:"content"`
}
