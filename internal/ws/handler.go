package ws

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"

	"chat-delivery/internal/directory"
	"chat-delivery/internal/ingest"
	"chat-delivery/internal/models"
	"chat-delivery/internal/observability"
	"chat-delivery/internal/telemetry"
)

// TokenValidator resolves a bearer token to a user id.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}

// Ingestor is the message entry point the gateway feeds.
type Ingestor interface {
	Submit(ctx context.Context, conversationID, senderID, content, clientMessageID string) (models.Message, error)
	Edit(ctx context.Context, messageID, senderID, content string) (models.Message, error)
	Delete(ctx context.Context, messageID, senderID string) (models.Message, error)
	Typing(ctx context.Context, conversationID, senderID string)
}

// StatusTracker covers the read-receipt and unread surface the gateway uses.
type StatusTracker interface {
	MarkReadUpTo(ctx context.Context, userID, conversationID string, upTo time.Time) error
	UnreadSummary(ctx context.Context, userID string) (map[string]int, error)
}

// GatewayHandler owns the websocket endpoint: handshake, session lifecycle
// and inbound frame dispatch.
type GatewayHandler struct {
	hub        *Hub
	ingestor   Ingestor
	tracker    StatusTracker
	directory  directory.Directory
	authClient TokenValidator
	audit      *telemetry.AuditEmitter
}

// NewGatewayHandler constructs a GatewayHandler.
func NewGatewayHandler(hub *Hub, ingestor Ingestor, tracker StatusTracker, dir directory.Directory, authClient TokenValidator, audit *telemetry.AuditEmitter) *GatewayHandler {
	return &GatewayHandler{hub: hub, ingestor: ingestor, tracker: tracker, directory: dir, authClient: authClient, audit: audit}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handle upgrades the connection and runs the session until it drops.
func (h *GatewayHandler) Handle(c *gin.Context) {
	ctx, span := otel.Tracer("chat-delivery/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	token := c.GetHeader("Authorization")
	if token == "" {
		token = c.Query("token")
		if token != "" {
			token = "Bearer " + token
		}
	}

	requestID := observability.RequestIDFromRequest(c.Request)
	userID, err := h.validateToken(ctx, token)
	if err != nil {
		h.audit.Emit(ctx, "warn", "websocket token rejected", requestID, nil)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	traceID := span.SpanContext().TraceID().String()
	info := ConnInfo{
		SessionID:   newSessionID(),
		UserID:      userID,
		DeviceID:    observability.DeviceIDFromRequest(c.Request),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   requestID,
		TraceID:     traceID,
		ConnectedAt: time.Now(),
	}
	session := newSession(conn, info, h.handleFrame, h.refreshDirectory)

	h.hub.Add(session)
	if err := h.directory.Register(ctx, userID, session.ID); err != nil {
		// Degraded but usable: local delivery still works, other processes
		// just will not know about this session until the next heartbeat.
		h.audit.Emit(ctx, "error", fmt.Sprintf("directory register failed: %v", err), requestID, &userID)
	}

	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
	h.publishLifecycle(ctx, session, "ws_connect", "")

	go session.writePump()
	h.pushUnreadSnapshot(ctx, session)

	session.readPump(ctx)

	// Connection is gone. Tear the session down everywhere.
	h.hub.Remove(session)
	if err := h.directory.Deregister(context.Background(), userID, session.ID); err != nil {
		h.audit.Emit(context.Background(), "error", fmt.Sprintf("directory deregister failed: %v", err), requestID, &userID)
	}
	observability.DecWSActive()
	observability.IncWSEvent("ws_disconnect")
	h.publishLifecycle(ctx, session, "ws_disconnect", "connection closed")
}

func (h *GatewayHandler) handleFrame(ctx context.Context, session *Session, frame models.InboundFrame) {
	switch frame.Type {
	case models.FrameChatMessage:
		h.handleChatMessage(ctx, session, frame)
	case models.FrameTyping:
		h.ingestor.Typing(ctx, frame.ConversationID, session.UserID)
	case models.FrameReadReceipt:
		h.handleReadReceipt(ctx, session, frame)
	case models.FramePing:
		h.refreshDirectory(session)
		session.Push(models.OutboundFrame{Type: models.FramePong, Timestamp: time.Now().UnixMilli()})
	case models.FrameEditMessage:
		h.handleEdit(ctx, session, frame)
	case models.FrameDelMessage:
		h.handleDelete(ctx, session, frame)
	default:
		session.Push(models.OutboundFrame{Type: models.FrameError, Error: fmt.Sprintf("unknown frame type %q", frame.Type)})
	}
	observability.IncWSEvent(strings.ToLower(frame.Type))
}

func (h *GatewayHandler) handleChatMessage(ctx context.Context, session *Session, frame models.InboundFrame) {
	// A retransmit after a lost ACK gets the original server id back and
	// never reaches ingestion twice from this session.
	if serverID, ok := session.dedupe.Lookup(frame.ClientMessageID); ok {
		session.Push(models.OutboundFrame{
			Type:            models.FrameAck,
			ServerMessageID: serverID,
			ClientMessageID: frame.ClientMessageID,
			ConversationID:  frame.ConversationID,
		})
		return
	}

	msg, err := h.ingestor.Submit(ctx, frame.ConversationID, session.UserID, frame.Content, frame.ClientMessageID)
	if err != nil {
		h.pushSubmitError(ctx, session, frame, err)
		return
	}

	session.dedupe.Remember(frame.ClientMessageID, msg.ID)
	session.Push(models.OutboundFrame{
		Type:            models.FrameAck,
		ServerMessageID: msg.ID,
		ClientMessageID: frame.ClientMessageID,
		ConversationID:  msg.ConversationID,
		Timestamp:       msg.CreatedAt.UnixMilli(),
	})
}

func (h *GatewayHandler) handleReadReceipt(ctx context.Context, session *Session, frame models.InboundFrame) {
	upTo := time.UnixMilli(frame.UpToTimestamp)
	if err := h.tracker.MarkReadUpTo(ctx, session.UserID, frame.ConversationID, upTo); err != nil {
		session.Push(models.OutboundFrame{Type: models.FrameError, ConversationID: frame.ConversationID, Error: "read receipt failed"})
	}
}

func (h *GatewayHandler) handleEdit(ctx context.Context, session *Session, frame models.InboundFrame) {
	if _, err := h.ingestor.Edit(ctx, frame.MessageID, session.UserID, frame.Content); err != nil {
		session.Push(models.OutboundFrame{Type: models.FrameError, ServerMessageID: frame.MessageID, Error: "edit rejected"})
	}
}

func (h *GatewayHandler) handleDelete(ctx context.Context, session *Session, frame models.InboundFrame) {
	if _, err := h.ingestor.Delete(ctx, frame.MessageID, session.UserID); err != nil {
		session.Push(models.OutboundFrame{Type: models.FrameError, ServerMessageID: frame.MessageID, Error: "delete rejected"})
	}
}

func (h *GatewayHandler) pushSubmitError(ctx context.Context, session *Session, frame models.InboundFrame, err error) {
	out := models.OutboundFrame{
		Type:            models.FrameError,
		ClientMessageID: frame.ClientMessageID,
		ConversationID:  frame.ConversationID,
	}
	switch {
	case errors.Is(err, ingest.ErrAccessDenied):
		out.Error = "access denied"
		userID := session.UserID
		h.audit.EmitConversation(ctx, "warn", "message to conversation without access", session.Info.RequestID, &userID, frame.ConversationID)
	case errors.Is(err, ingest.ErrEmptyContent):
		out.Error = "empty content"
	case errors.Is(err, ingest.ErrPersistence):
		out.Error = "message not accepted, retry"
	default:
		out.Error = "internal error"
	}
	session.Push(out)
}

// pushUnreadSnapshot sends the per-conversation unread counts right after
// connect so the client can render badges before any history fetch.
func (h *GatewayHandler) pushUnreadSnapshot(ctx context.Context, session *Session) {
	summary, err := h.tracker.UnreadSummary(ctx, session.UserID)
	if err != nil {
		return
	}
	session.Push(models.OutboundFrame{Type: models.FrameUnreadSummary, Unread: summary})
}

func (h *GatewayHandler) refreshDirectory(session *Session) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.directory.Refresh(ctx, session.UserID); err != nil {
		observability.IncWSEvent("directory_refresh_error")
	}
}

func (h *GatewayHandler) publishLifecycle(ctx context.Context, session *Session, event, reason string) {
	_ = observability.PublishEvent(ctx, "ws_events.sessions", observability.EventEnvelope{
		EventType: "ws_events",
		EventName: event,
		Payload: map[string]interface{}{
			"ws": map[string]interface{}{
				"event":       event,
				"session_id":  session.ID,
				"duration_ms": time.Since(session.Info.ConnectedAt).Milliseconds(),
				"reason":      reason,
			},
			"identity": map[string]interface{}{
				"user_id":   session.UserID,
				"device_id": session.Info.DeviceID,
				"ip":        session.Info.IP,
			},
		},
	}, observability.BuildHeaders(session.Info.RequestID, session.Info.TraceID))
}

func (h *GatewayHandler) validateToken(ctx context.Context, header string) (string, error) {
	parts := strings.Split(header, " ")
	if len(parts) == 2 {
		return h.authClient.ValidateToken(ctx, parts[1])
	}
	return "", fmt.Errorf("invalid token")
}
