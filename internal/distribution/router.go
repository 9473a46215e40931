package distribution

import (
	"context"
	"fmt"
	"log"

	"chat-delivery/internal/models"
	"chat-delivery/internal/observability"
)

// LocalPusher delivers a frame to a user's sessions on this process.
// Returns the number of sessions reached.
type LocalPusher interface {
	PushToUser(userID string, frame models.OutboundFrame) int
}

// ParticipantSource resolves conversation membership.
type ParticipantSource interface {
	Participants(ctx context.Context, conversationID string) ([]string, error)
}

// DeliveryRecorder advances delivery status once a recipient session has
// received a message.
type DeliveryRecorder interface {
	MarkDelivered(ctx context.Context, messageID, conversationID, senderID, participantID string) error
}

// Router turns distribution events into frames on locally owned sessions.
// Every process consumes the full event stream and pushes only to the
// sessions it hosts, so an event may legitimately reach zero sessions here.
type Router struct {
	pusher       LocalPusher
	participants ParticipantSource
	recorder     DeliveryRecorder
}

func NewRouter(pusher LocalPusher, participants ParticipantSource, recorder DeliveryRecorder) *Router {
	return &Router{pusher: pusher, participants: participants, recorder: recorder}
}

// Handle is the queue consumer entry point.
func (r *Router) Handle(ctx context.Context, event models.DistributionEvent) error {
	return r.Deliver(ctx, event)
}

// Deliver routes one event to local sessions. Also invoked directly by
// ingestion when the queue is unavailable.
func (r *Router) Deliver(ctx context.Context, event models.DistributionEvent) error {
	switch event.Kind {
	case models.EventMessage, models.EventEdit, models.EventDelete:
		return r.deliverMessage(ctx, event)
	case models.EventTyping:
		return r.deliverTyping(ctx, event)
	case models.EventStatus:
		r.deliverStatus(event)
		return nil
	default:
		return fmt.Errorf("unknown distribution event kind %q", event.Kind)
	}
}

func (r *Router) deliverMessage(ctx context.Context, event models.DistributionEvent) error {
	participants, err := r.participants.Participants(ctx, event.ConversationID)
	if err != nil {
		return fmt.Errorf("resolve participants for %s: %w", event.ConversationID, err)
	}

	frame := models.OutboundFrame{
		Type:            models.FrameMessage,
		ServerMessageID: event.MessageID,
		ClientMessageID: event.ClientMessageID,
		ConversationID:  event.ConversationID,
		SenderID:        event.SenderID,
		Content:         event.Content,
		Timestamp:       event.Timestamp,
		Edited:          event.Edited,
		Deleted:         event.Deleted,
	}

	for _, participantID := range participants {
		reached := r.pusher.PushToUser(participantID, frame)
		if reached == 0 {
			continue
		}
		// Only a fresh message creates a DELIVERED transition. Edits and
		// deletes ride on the already-tracked original.
		if event.Kind != models.EventMessage || participantID == event.SenderID {
			continue
		}
		if err := r.recorder.MarkDelivered(ctx, event.MessageID, event.ConversationID, event.SenderID, participantID); err != nil {
			log.Printf("mark delivered failed message=%s participant=%s: %v", event.MessageID, participantID, err)
		}
	}
	observability.IncWSEvent(event.Kind)
	return nil
}

func (r *Router) deliverTyping(ctx context.Context, event models.DistributionEvent) error {
	participants, err := r.participants.Participants(ctx, event.ConversationID)
	if err != nil {
		return fmt.Errorf("resolve participants for %s: %w", event.ConversationID, err)
	}

	frame := models.OutboundFrame{
		Type:           models.FrameTyping,
		ConversationID: event.ConversationID,
		SenderID:       event.SenderID,
		Timestamp:      event.Timestamp,
	}
	for _, participantID := range participants {
		if participantID == event.SenderID {
			continue
		}
		r.pusher.PushToUser(participantID, frame)
	}
	observability.IncWSEvent(event.Kind)
	return nil
}

func (r *Router) deliverStatus(event models.DistributionEvent) {
	r.pusher.PushToUser(event.SenderID, models.OutboundFrame{
		Type:            models.FrameStatusUpdate,
		ServerMessageID: event.MessageID,
		ConversationID:  event.ConversationID,
		ParticipantID:   event.ParticipantID,
		Status:          event.Status,
		Timestamp:       event.Timestamp,
	})
	observability.IncWSEvent(event.Kind)
}
