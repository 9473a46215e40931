package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"chat-delivery/internal/models"
	"chat-delivery/internal/observability"
	"chat-delivery/internal/queue"
	"chat-delivery/internal/rabbitmq"
	"chat-delivery/internal/repositories"
)

var (
	// ErrAccessDenied means the sender is not a participant of the conversation.
	ErrAccessDenied = errors.New("sender has no access to conversation")
	// ErrPersistence means the durable store rejected the message after retries.
	ErrPersistence = errors.New("message could not be persisted")
	// ErrEmptyContent rejects blank messages before any side effect.
	ErrEmptyContent = errors.New("message content is empty")
)

// AccessChecker resolves conversation membership for the sender gate and
// for seeding per-recipient status rows.
type AccessChecker interface {
	HasAccess(ctx context.Context, userID, conversationID string) (bool, error)
	Participants(ctx context.Context, conversationID string) ([]string, error)
}

// Deliverer is the direct local fallback used when the queue is unavailable.
type Deliverer interface {
	Deliver(ctx context.Context, event models.DistributionEvent) error
}

const (
	createAttempts   = 2
	createTimeout    = 2 * time.Second
	createBackoff    = 100 * time.Millisecond
	sweepGraceWindow = 30 * time.Second
	sweepBatchSize   = 200
)

// Service is the single entry point for messages into the system. Persist
// first, then distribute; an accepted message is durable before anyone
// hears about it.
type Service struct {
	messages repositories.MessageRepository
	statuses repositories.StatusRepository
	access   AccessChecker
	enqueuer queue.Enqueuer
	fallback Deliverer
	mirror   rabbitmq.Publisher
}

func NewService(
	messages repositories.MessageRepository,
	statuses repositories.StatusRepository,
	access AccessChecker,
	enqueuer queue.Enqueuer,
	fallback Deliverer,
	mirror rabbitmq.Publisher,
) *Service {
	return &Service{
		messages: messages,
		statuses: statuses,
		access:   access,
		enqueuer: enqueuer,
		fallback: fallback,
		mirror:   mirror,
	}
}

// Submit validates, persists and distributes one message. Success means the
// message is durable; distribution is at-least-once from here on.
func (s *Service) Submit(ctx context.Context, conversationID, senderID, content, clientMessageID string) (models.Message, error) {
	if content == "" {
		observability.IncIngest("rejected")
		return models.Message{}, ErrEmptyContent
	}

	allowed, err := s.access.HasAccess(ctx, senderID, conversationID)
	if err != nil {
		observability.IncIngest("error")
		return models.Message{}, fmt.Errorf("access check: %w", err)
	}
	if !allowed {
		observability.IncIngest("denied")
		return models.Message{}, ErrAccessDenied
	}

	msg, err := s.createWithRetry(ctx, conversationID, senderID, content, clientMessageID)
	if err != nil {
		observability.IncIngest("persist_failed")
		log.Printf("message persist failed conversation=%s sender=%s: %v", conversationID, senderID, err)
		return models.Message{}, ErrPersistence
	}

	s.seedStatuses(ctx, msg)
	s.distribute(ctx, models.MessageEvent(msg))
	observability.IncIngest("accepted")
	return msg, nil
}

// Edit replaces a message's content. Only the original sender may edit, and
// the edit is distributed like a fresh event.
func (s *Service) Edit(ctx context.Context, messageID, senderID, content string) (models.Message, error) {
	if content == "" {
		return models.Message{}, ErrEmptyContent
	}

	msg, err := s.messages.MarkEdited(ctx, messageID, senderID, content)
	if err != nil {
		return models.Message{}, err
	}

	event := models.MessageEvent(msg)
	event.Kind = models.EventEdit
	s.distribute(ctx, event)
	return msg, nil
}

// Delete tombstones a message. The content is blanked in the store and a
// delete event tells live sessions to drop it.
func (s *Service) Delete(ctx context.Context, messageID, senderID string) (models.Message, error) {
	msg, err := s.messages.MarkDeleted(ctx, messageID, senderID)
	if err != nil {
		return models.Message{}, err
	}

	event := models.MessageEvent(msg)
	event.Kind = models.EventDelete
	s.distribute(ctx, event)
	return msg, nil
}

// Typing relays an ephemeral typing notification. Nothing is persisted and
// failures are silent.
func (s *Service) Typing(ctx context.Context, conversationID, senderID string) {
	event := models.DistributionEvent{
		Kind:           models.EventTyping,
		ConversationID: conversationID,
		SenderID:       senderID,
		Timestamp:      time.Now().UnixMilli(),
	}
	if err := s.enqueuer.TryEnqueue(event); err != nil {
		// Ephemeral by contract. Dropping under pressure is correct.
		log.Printf("typing event dropped for conversation %s: %v", conversationID, err)
	}
}

// StartSweep runs the reconciliation loop until ctx is cancelled. Messages
// that never got a broker acknowledgment are re-published after the grace
// window.
func (s *Service) StartSweep(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

func (s *Service) sweep(ctx context.Context) {
	msgs, err := s.messages.Undistributed(ctx, time.Now().Add(-sweepGraceWindow), sweepBatchSize)
	if err != nil {
		log.Printf("reconciliation sweep query failed: %v", err)
		return
	}
	for _, msg := range msgs {
		if err := s.enqueuer.TryEnqueue(models.MessageEvent(msg)); err != nil {
			log.Printf("reconciliation re-enqueue failed message=%s: %v", msg.ID, err)
			return
		}
		log.Printf("reconciliation re-enqueued message=%s conversation=%s", msg.ID, msg.ConversationID)
	}
}

func (s *Service) createWithRetry(ctx context.Context, conversationID, senderID, content, clientMessageID string) (models.Message, error) {
	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return models.Message{}, ctx.Err()
			case <-time.After(createBackoff):
			}
		}

		attemptCtx, cancel := context.WithTimeout(ctx, createTimeout)
		msg, err := s.messages.Create(attemptCtx, conversationID, senderID, content, "text", clientMessageID)
		cancel()
		if err == nil {
			return msg, nil
		}
		lastErr = err
	}
	return models.Message{}, lastErr
}

func (s *Service) seedStatuses(ctx context.Context, msg models.Message) {
	participants, err := s.access.Participants(ctx, msg.ConversationID)
	if err != nil {
		log.Printf("participants lookup failed conversation=%s: %v", msg.ConversationID, err)
		return
	}
	recipients := make([]string, 0, len(participants))
	for _, participantID := range participants {
		if participantID != msg.SenderID {
			recipients = append(recipients, participantID)
		}
	}
	if err := s.statuses.SeedSent(ctx, msg.ID, recipients); err != nil {
		log.Printf("status seed failed message=%s: %v", msg.ID, err)
	}
}

func (s *Service) distribute(ctx context.Context, event models.DistributionEvent) {
	err := s.enqueuer.TryEnqueue(event)
	switch {
	case err == nil:
	case errors.Is(err, queue.ErrQueueFull):
		observability.IncQueueFallback()
		log.Printf("distribution queue saturated, local fallback message=%s", event.MessageID)
		s.deliverDirect(ctx, event)
	default:
		observability.IncQueueFallback()
		log.Printf("distribution enqueue failed, local fallback message=%s: %v", event.MessageID, err)
		s.deliverDirect(ctx, event)
	}

	if s.mirror != nil {
		routingKey := "distribution." + event.ConversationID
		if err := s.mirror.Publish(ctx, routingKey, event); err != nil {
			log.Printf("event mirror publish failed message=%s: %v", event.MessageID, err)
		}
	}
}

func (s *Service) deliverDirect(ctx context.Context, event models.DistributionEvent) {
	// Best effort: only sessions on this process are reachable. The message
	// stays unacknowledged in the store, so the sweep will retry the queue.
	if err := s.fallback.Deliver(ctx, event); err != nil {
		log.Printf("direct distribution failed message=%s: %v", event.MessageID, err)
	}
}
