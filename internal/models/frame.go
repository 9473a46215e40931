package models

// Inbound frame types accepted by the gateway.
const (
	FrameChatMessage = "CHAT_MESSAGE"
	FrameTyping      = "TYPING"
	FrameReadReceipt = "READ_RECEIPT"
	FramePing        = "PING"
	FrameEditMessage = "EDIT_MESSAGE"
	FrameDelMessage  = "DELETE_MESSAGE"
)

// Outbound frame types pushed by the gateway.
const (
	FrameMessage       = "MESSAGE"
	FrameStatusUpdate  = "STATUS_UPDATE"
	FrameError         = "ERROR"
	FrameAck           = "ACK"
	FramePong          = "PONG"
	FrameUnreadSummary = "UNREAD_SUMMARY"
)

// InboundFrame is the wire format read from a client connection.
type InboundFrame struct {
	Type            string `json:"type"`
	ConversationID  string `json:"conversationId,omitempty"`
	Content         string `json:"content,omitempty"`
	ClientMessageID string `json:"clientMessageId,omitempty"`
	MessageID       string `json:"messageId,omitempty"`
	UpToTimestamp   int64  `json:"upToTimestamp,omitempty"`
}

// OutboundFrame is the wire format pushed to a client connection.
type OutboundFrame struct {
	Type            string         `json:"type"`
	ServerMessageID string         `json:"serverMessageId,omitempty"`
	ClientMessageID string         `json:"clientMessageId,omitempty"`
	ConversationID  string         `json:"conversationId,omitempty"`
	SenderID        string         `json:"senderId,omitempty"`
	ParticipantID   string         `json:"participantId,omitempty"`
	Content         string         `json:"content,omitempty"`
	Timestamp       int64          `json:"timestamp,omitempty"`
	Status          string         `json:"status,omitempty"`
	Edited          bool           `json:"edited,omitempty"`
	Deleted         bool           `json:"deleted,omitempty"`
	Unread          map[string]int `json:"unread,omitempty"`
	Error           string         `json:"error,omitempty"`
}
