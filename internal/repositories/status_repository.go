package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"chat-delivery/internal/models"
)

// ReadTarget identifies a status row flipped to READ by a receipt, together
// with the sender who needs the live indicator update.
type ReadTarget struct {
	MessageID string `db:"message_id"`
	SenderID  string `db:"sender_id"`
}

// StatusRepository defines interactions with delivery-status state and
// read markers.
type StatusRepository interface {
	SeedSent(ctx context.Context, messageID string, participantIDs []string) error
	Advance(ctx context.Context, messageID, participantID string, state models.DeliveryState) (bool, error)
	MarkReadUpTo(ctx context.Context, userID, conversationID string, upTo time.Time) ([]ReadTarget, error)
	CommitMarker(ctx context.Context, userID, conversationID string, lastReadAt time.Time) error
	Marker(ctx context.Context, userID, conversationID string) (time.Time, error)
	UnreadSummary(ctx context.Context, userID string) ([]models.UnreadCount, error)
}

// StatusRepo is a sqlx-backed repository.
type StatusRepo struct {
	db *sqlx.DB
}

// NewStatusRepo constructs StatusRepo.
func NewStatusRepo(db *sqlx.DB) *StatusRepo {
	return &StatusRepo{db: db}
}

// SeedSent inserts the initial SENT row for each recipient. Replays are
// harmless: existing rows are left untouched.
func (r *StatusRepo) SeedSent(ctx context.Context, messageID string, participantIDs []string) error {
	for _, participantID := range participantIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO delivery_status (message_id, participant_id, state)
             VALUES ($1, $2, $3)
             ON CONFLICT (message_id, participant_id) DO NOTHING`,
			messageID, participantID, models.StateSent)
		if err != nil {
			return err
		}
	}
	return nil
}

// Advance moves a (message, participant) row forward. The state guard makes
// the transition monotonic: a stale or replayed update affects zero rows.
// Reaching READ backfills delivered_at so DELIVERED is never skipped in the
// stored history.
func (r *StatusRepo) Advance(ctx context.Context, messageID, participantID string, state models.DeliveryState) (bool, error) {
	now := time.Now()
	var deliveredAt, readAt *time.Time
	if state >= models.StateDelivered {
		deliveredAt = &now
	}
	if state >= models.StateRead {
		readAt = &now
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO delivery_status (message_id, participant_id, state, delivered_at, read_at)
         VALUES ($1, $2, $3, $4, $5)
         ON CONFLICT (message_id, participant_id) DO UPDATE
            SET state = EXCLUDED.state,
                delivered_at = COALESCE(delivery_status.delivered_at, EXCLUDED.delivered_at),
                read_at = COALESCE(delivery_status.read_at, EXCLUDED.read_at)
            WHERE delivery_status.state < EXCLUDED.state`,
		messageID, participantID, state, deliveredAt, readAt)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// MarkReadUpTo flips every status row the receipt covers to READ and returns
// the affected messages with their senders so indicators can update live.
func (r *StatusRepo) MarkReadUpTo(ctx context.Context, userID, conversationID string, upTo time.Time) ([]ReadTarget, error) {
	var targets []ReadTarget
	err := r.db.SelectContext(ctx, &targets,
		`UPDATE delivery_status ds
            SET state = $4,
                read_at = COALESCE(ds.read_at, NOW()),
                delivered_at = COALESCE(ds.delivered_at, NOW())
           FROM messages m
          WHERE m.id = ds.message_id
            AND ds.participant_id = $1
            AND m.conversation_id = $2
            AND m.created_at <= $3
            AND ds.state < $4
      RETURNING ds.message_id, m.sender_id`,
		userID, conversationID, upTo, models.StateRead)
	return targets, err
}

// CommitMarker persists the last-read marker. Markers only move forward.
func (r *StatusRepo) CommitMarker(ctx context.Context, userID, conversationID string, lastReadAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO read_markers (user_id, conversation_id, last_read_at)
         VALUES ($1, $2, $3)
         ON CONFLICT (user_id, conversation_id) DO UPDATE
            SET last_read_at = GREATEST(read_markers.last_read_at, EXCLUDED.last_read_at)`,
		userID, conversationID, lastReadAt)
	return err
}

// Marker returns the user's last-read marker, or the zero time when the
// conversation has never been read.
func (r *StatusRepo) Marker(ctx context.Context, userID, conversationID string) (time.Time, error) {
	var lastReadAt time.Time
	err := r.db.GetContext(ctx, &lastReadAt,
		`SELECT last_read_at FROM read_markers WHERE user_id=$1 AND conversation_id=$2`,
		userID, conversationID)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, nil
	}
	return lastReadAt, err
}

// UnreadSummary derives per-conversation unread counts: messages authored by
// someone else, newer than the user's marker. Counts are never stored.
func (r *StatusRepo) UnreadSummary(ctx context.Context, userID string) ([]models.UnreadCount, error) {
	var counts []models.UnreadCount
	err := r.db.SelectContext(ctx, &counts,
		`SELECT m.conversation_id, COUNT(*) AS count
           FROM messages m
           JOIN delivery_status ds
             ON ds.message_id = m.id AND ds.participant_id = $1
      LEFT JOIN read_markers rm
             ON rm.user_id = $1 AND rm.conversation_id = m.conversation_id
          WHERE m.sender_id <> $1
            AND m.deleted = FALSE
            AND m.created_at > COALESCE(rm.last_read_at, 'epoch'::timestamptz)
       GROUP BY m.conversation_id`,
		userID)
	return counts, err
}
