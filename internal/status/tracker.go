package status

import (
	"context"
	"log"
	"sync"
	"time"

	"chat-delivery/internal/models"
	"chat-delivery/internal/observability"
	"chat-delivery/internal/queue"
	"chat-delivery/internal/repositories"
)

// Pusher delivers a frame to every local session of a user. Returns the
// number of sessions reached.
type Pusher interface {
	PushToUser(userID string, frame models.OutboundFrame) int
}

const defaultCommitDelay = 1500 * time.Millisecond

// Tracker owns delivery-status transitions. Transitions only ever move
// forward (SENT -> DELIVERED -> READ); stale updates are dropped at the
// database and never produce notifications.
type Tracker struct {
	statuses repositories.StatusRepository
	enqueuer queue.Enqueuer
	pusher   Pusher

	commitDelay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingCommit
}

type pendingCommit struct {
	timer *time.Timer
	upTo  time.Time
}

func NewTracker(statuses repositories.StatusRepository, enqueuer queue.Enqueuer, pusher Pusher) *Tracker {
	return &Tracker{
		statuses:    statuses,
		enqueuer:    enqueuer,
		pusher:      pusher,
		commitDelay: defaultCommitDelay,
		pending:     make(map[string]*pendingCommit),
	}
}

// MarkDelivered records that participantID's device has received the
// message. The sender learns about the transition through a status event
// on the distribution queue, so every process hosting a sender session
// sees it.
func (t *Tracker) MarkDelivered(ctx context.Context, messageID, conversationID, senderID, participantID string) error {
	changed, err := t.statuses.Advance(ctx, messageID, participantID, models.StateDelivered)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	observability.IncStatusTransition(models.StateDelivered.String())
	t.notifySender(messageID, conversationID, senderID, participantID, models.StateDelivered)
	return nil
}

// MarkReadUpTo flips every message in the conversation at or before upTo
// to READ for userID and notifies each affected sender. The read marker
// itself is committed after a short quiet period so a burst of receipts
// costs one write.
func (t *Tracker) MarkReadUpTo(ctx context.Context, userID, conversationID string, upTo time.Time) error {
	targets, err := t.statuses.MarkReadUpTo(ctx, userID, conversationID, upTo)
	if err != nil {
		return err
	}

	for _, target := range targets {
		observability.IncStatusTransition(models.StateRead.String())
		t.notifySender(target.MessageID, conversationID, target.SenderID, userID, models.StateRead)
	}

	t.scheduleCommit(userID, conversationID, upTo)
	return nil
}

// UnreadSummary reports per-conversation unread counts derived from the
// user's read markers.
func (t *Tracker) UnreadSummary(ctx context.Context, userID string) (map[string]int, error) {
	counts, err := t.statuses.UnreadSummary(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := make(map[string]int, len(counts))
	for _, c := range counts {
		summary[c.ConversationID] = c.Count
	}
	return summary, nil
}

// Marker returns the user's committed read marker for a conversation, or
// the zero time when the conversation has never been read.
func (t *Tracker) Marker(ctx context.Context, userID, conversationID string) (time.Time, error) {
	return t.statuses.Marker(ctx, userID, conversationID)
}

// Flush commits every pending read marker immediately. Called on shutdown.
func (t *Tracker) Flush(ctx context.Context) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[string]*pendingCommit)
	t.mu.Unlock()

	for key, p := range pending {
		p.timer.Stop()
		userID, conversationID := splitCommitKey(key)
		if err := t.statuses.CommitMarker(ctx, userID, conversationID, p.upTo); err != nil {
			log.Printf("read marker flush failed user=%s conversation=%s: %v", userID, conversationID, err)
		}
	}
}

func (t *Tracker) notifySender(messageID, conversationID, senderID, participantID string, state models.DeliveryState) {
	event := models.StatusEvent(messageID, conversationID, senderID, participantID, state)

	err := t.enqueuer.TryEnqueue(event)
	if err == nil {
		return
	}
	if err != queue.ErrQueueFull {
		log.Printf("status enqueue failed message=%s: %v", messageID, err)
	}

	// Queue saturated or down. The sender still gets notified if they have
	// a session on this process.
	observability.IncQueueFallback()
	t.pusher.PushToUser(senderID, models.OutboundFrame{
		Type:            models.FrameStatusUpdate,
		ConversationID:  conversationID,
		ServerMessageID: messageID,
		ParticipantID:   participantID,
		Status:          state.String(),
	})
}

func (t *Tracker) scheduleCommit(userID, conversationID string, upTo time.Time) {
	key := commitKey(userID, conversationID)

	t.mu.Lock()
	defer t.mu.Unlock()

	if p, ok := t.pending[key]; ok {
		if upTo.After(p.upTo) {
			p.upTo = upTo
		}
		p.timer.Stop()
		p.timer.Reset(t.commitDelay)
		return
	}

	p := &pendingCommit{upTo: upTo}
	p.timer = time.AfterFunc(t.commitDelay, func() {
		t.commit(key)
	})
	t.pending[key] = p
}

func (t *Tracker) commit(key string) {
	t.mu.Lock()
	p, ok := t.pending[key]
	if ok {
		delete(t.pending, key)
	}
	t.mu.Unlock()
	if !ok {
		return
	}

	userID, conversationID := splitCommitKey(key)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := t.statuses.CommitMarker(ctx, userID, conversationID, p.upTo); err != nil {
		log.Printf("read marker commit failed user=%s conversation=%s: %v", userID, conversationID, err)
	}
}

func commitKey(userID, conversationID string) string {
	return userID + "\x00" + conversationID
}

func splitCommitKey(key string) (string, string) {
	for i := 0; i < len(key); i++ {
		if key[i] == 0 {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}
