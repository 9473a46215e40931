package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"chat-delivery/internal/models"
)

var ErrMessageNotFound = errors.New("message not found")

// MessageRepository defines interactions with the durable message store.
type MessageRepository interface {
	Create(ctx context.Context, conversationID, senderID, content, msgType, clientMessageID string) (models.Message, error)
	Get(ctx context.Context, messageID string) (models.Message, error)
	MarkEdited(ctx context.Context, messageID, senderID, content string) (models.Message, error)
	MarkDeleted(ctx context.Context, messageID, senderID string) (models.Message, error)
	MarkDistributed(ctx context.Context, messageID string) error
	Undistributed(ctx context.Context, olderThan time.Time, limit int) ([]models.Message, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

const messageColumns = `id, conversation_id, sender_id, client_message_id, content, msg_type, edited, deleted, distributed_at, created_at`

// Create persists a message. The ingestion timestamp is assigned here, once.
// Resubmitting the same (conversation, sender, client_message_id) returns the
// originally stored row instead of inserting a duplicate.
func (r *MessageRepo) Create(ctx context.Context, conversationID, senderID, content, msgType, clientMessageID string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO messages (id, conversation_id, sender_id, client_message_id, content, msg_type)
         VALUES ($1, $2, $3, $4, $5, $6)
         RETURNING `+messageColumns,
		uuid.NewString(), conversationID, senderID, clientMessageID, content, msgType).
		StructScan(&msg)
	if isUniqueViolation(err) && clientMessageID != "" {
		err = r.db.GetContext(ctx, &msg,
			`SELECT `+messageColumns+` FROM messages
             WHERE conversation_id=$1 AND sender_id=$2 AND client_message_id=$3`,
			conversationID, senderID, clientMessageID)
	}
	return msg, err
}

// Get retrieves a single message.
func (r *MessageRepo) Get(ctx context.Context, messageID string) (models.Message, error) {
	var msg models.Message
	err := r.db.GetContext(ctx, &msg, `SELECT `+messageColumns+` FROM messages WHERE id=$1`, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	return msg, err
}

// MarkEdited replaces the visible content and sets the edited flag. Only the
// sender may edit; the ingestion timestamp is untouched.
func (r *MessageRepo) MarkEdited(ctx context.Context, messageID, senderID, content string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`UPDATE messages SET content=$3, edited=TRUE
         WHERE id=$1 AND sender_id=$2 AND deleted=FALSE
         RETURNING `+messageColumns,
		messageID, senderID, content).
		StructScan(&msg)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	return msg, err
}

// MarkDeleted sets the deleted marker. Rows are never hard-deleted here;
// retention cleanup is an external collaborator's job.
func (r *MessageRepo) MarkDeleted(ctx context.Context, messageID, senderID string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`UPDATE messages SET deleted=TRUE, content=''
         WHERE id=$1 AND sender_id=$2
         RETURNING `+messageColumns,
		messageID, senderID).
		StructScan(&msg)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Message{}, ErrMessageNotFound
	}
	return msg, err
}

// MarkDistributed records the distribution acknowledgment for a message.
func (r *MessageRepo) MarkDistributed(ctx context.Context, messageID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE messages SET distributed_at=NOW() WHERE id=$1 AND distributed_at IS NULL`, messageID)
	return err
}

// Undistributed returns messages still lacking a distribution acknowledgment
// after the grace window. The reconciliation sweep re-publishes them.
func (r *MessageRepo) Undistributed(ctx context.Context, olderThan time.Time, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT `+messageColumns+` FROM messages
         WHERE distributed_at IS NULL AND created_at < $1
         ORDER BY created_at ASC
         LIMIT $2`,
		olderThan, limit)
	return msgs, err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
