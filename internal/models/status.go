package models

import "time"

// DeliveryState is the per-recipient progress marker for a message.
// Transitions are monotonic: SENT < DELIVERED < READ.
type DeliveryState int16

const (
	StateSent DeliveryState = iota
	StateDelivered
	StateRead
)

func (s DeliveryState) String() string {
	switch s {
	case StateSent:
		return "SENT"
	case StateDelivered:
		return "DELIVERED"
	case StateRead:
		return "READ"
	}
	return "UNKNOWN"
}

// DeliveryStatus is one (message, participant) status row.
type DeliveryStatus struct {
	MessageID     string        `db:"message_id" json:"message_id"`
	ParticipantID string        `db:"participant_id" json:"participant_id"`
	State         DeliveryState `db:"state" json:"state"`
	DeliveredAt   *time.Time    `db:"delivered_at" json:"delivered_at,omitempty"`
	ReadAt        *time.Time    `db:"read_at" json:"read_at,omitempty"`
}

// ReadMarker records how far a user has read in a conversation. It drives
// unread-count derivation and is only moved forward by explicit read signals.
type ReadMarker struct {
	UserID         string    `db:"user_id" json:"user_id"`
	ConversationID string    `db:"conversation_id" json:"conversation_id"`
	LastReadAt     time.Time `db:"last_read_at" json:"last_read_at"`
}
