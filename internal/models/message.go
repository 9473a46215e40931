package models

import "time"

// Message is a persisted chat message. Content and created_at are immutable
// after ingestion; only the edited/deleted markers may change.
type Message struct {
	ID              string     `db:"id" json:"id"`
	ConversationID  string     `db:"conversation_id" json:"conversation_id"`
	SenderID        string     `db:"sender_id" json:"sender_id"`
	ClientMessageID string     `db:"client_message_id" json:"client_message_id,omitempty"`
	Content         string     `db:"content" json:"content"`
	Type            string     `db:"msg_type" json:"type"`
	Edited          bool       `db:"edited" json:"edited"`
	Deleted         bool       `db:"deleted" json:"deleted"`
	DistributedAt   *time.Time `db:"distributed_at" json:"-"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// UnreadCount is one conversation's derived unread total for a user.
type UnreadCount struct {
	ConversationID string `db:"conversation_id" json:"conversation_id"`
	Count          int    `db:"count" json:"count"`
}
