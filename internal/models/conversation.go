package models

import (
	"gorm.io/gorm"
)

// Conversation pairs exactly two users. PairKey is the normalized
// "minUserID:maxUserID" key; its unique index is what upholds the
// at-most-one-conversation-per-pair invariant under racing sends.
type Conversation struct {
	gorm.Model
	PairKey  string    `gorm:"uniqueIndex;not null" json:"-"`
	Members  []User    `gorm:"many2many:conversation_members;" json:"members"`
	Messages []Message `json:"-"`
}

// OtherMember returns the first participant that is not userID, or nil
// if the members are not loaded.
func (conversation *Conversation) OtherMember(userID uint) *User {
	for i := range conversation.Members {
		if conversation.Members[i].ID != userID {
			return &conversation.Members[i]
		}
	}
	return nil
}
