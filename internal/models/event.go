package models

import "time"

// Distribution event kinds carried on the queue.
const (
	EventMessage = "message"
	EventTyping  = "typing"
	EventStatus  = "status"
	EventEdit    = "edit"
	EventDelete  = "delete"
)

// DistributionEvent is the durable record that drives fan-out. Events are
// partitioned by ConversationID, so per-conversation order is preserved
// end-to-end. Typing events are the one ephemeral kind: they ride the queue
// but are never persisted.
type DistributionEvent struct {
	Kind            string `json:"kind"`
	MessageID       string `json:"message_id,omitempty"`
	ConversationID  string `json:"conversation_id"`
	SenderID        string `json:"sender_id"`
	ClientMessageID string `json:"client_message_id,omitempty"`
	ParticipantID   string `json:"participant_id,omitempty"`
	Status          string `json:"status,omitempty"`
	Content         string `json:"content,omitempty"`
	Edited          bool   `json:"edited,omitempty"`
	Deleted         bool   `json:"deleted,omitempty"`
	Timestamp       int64  `json:"timestamp"`
}

// MessageEvent builds the distribution record for a freshly ingested message.
func MessageEvent(msg Message) DistributionEvent {
	return DistributionEvent{
		Kind:            EventMessage,
		MessageID:       msg.ID,
		ConversationID:  msg.ConversationID,
		SenderID:        msg.SenderID,
		ClientMessageID: msg.ClientMessageID,
		Content:         msg.Content,
		Edited:          msg.Edited,
		Deleted:         msg.Deleted,
		Timestamp:       msg.CreatedAt.UnixMilli(),
	}
}

// StatusEvent builds the record that fans a delivery-status change back to
// the sender's sessions on every process.
func StatusEvent(messageID, conversationID, senderID, participantID string, state DeliveryState) DistributionEvent {
	return DistributionEvent{
		Kind:           EventStatus,
		MessageID:      messageID,
		ConversationID: conversationID,
		SenderID:       senderID,
		ParticipantID:  participantID,
		Status:         state.String(),
		Timestamp:      time.Now().UnixMilli(),
	}
}
