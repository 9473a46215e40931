package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"chat-delivery/internal/models"
	"chat-delivery/internal/repositories"
)

type MessageRepositoryMock struct {
	mock.Mock
}

func (m *MessageRepositoryMock) Create(ctx context.Context, conversationID, senderID, content, msgType, clientMessageID string) (models.Message, error) {
	args := m.Called(ctx, conversationID, senderID, content, msgType, clientMessageID)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) Get(ctx context.Context, messageID string) (models.Message, error) {
	args := m.Called(ctx, messageID)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) MarkEdited(ctx context.Context, messageID, senderID, content string) (models.Message, error) {
	args := m.Called(ctx, messageID, senderID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) MarkDeleted(ctx context.Context, messageID, senderID string) (models.Message, error) {
	args := m.Called(ctx, messageID, senderID)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *MessageRepositoryMock) MarkDistributed(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

func (m *MessageRepositoryMock) Undistributed(ctx context.Context, olderThan time.Time, limit int) ([]models.Message, error) {
	args := m.Called(ctx, olderThan, limit)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

type StatusRepositoryMock struct {
	mock.Mock
}

func (m *StatusRepositoryMock) SeedSent(ctx context.Context, messageID string, participantIDs []string) error {
	args := m.Called(ctx, messageID, participantIDs)
	return args.Error(0)
}

func (m *StatusRepositoryMock) Advance(ctx context.Context, messageID, participantID string, state models.DeliveryState) (bool, error) {
	args := m.Called(ctx, messageID, participantID, state)
	return args.Bool(0), args.Error(1)
}

func (m *StatusRepositoryMock) MarkReadUpTo(ctx context.Context, userID, conversationID string, upTo time.Time) ([]repositories.ReadTarget, error) {
	args := m.Called(ctx, userID, conversationID, upTo)
	var targets []repositories.ReadTarget
	if val := args.Get(0); val != nil {
		targets = val.([]repositories.ReadTarget)
	}
	return targets, args.Error(1)
}

func (m *StatusRepositoryMock) CommitMarker(ctx context.Context, userID, conversationID string, lastReadAt time.Time) error {
	args := m.Called(ctx, userID, conversationID, lastReadAt)
	return args.Error(0)
}

func (m *StatusRepositoryMock) Marker(ctx context.Context, userID, conversationID string) (time.Time, error) {
	args := m.Called(ctx, userID, conversationID)
	var at time.Time
	if val := args.Get(0); val != nil {
		at = val.(time.Time)
	}
	return at, args.Error(1)
}

func (m *StatusRepositoryMock) UnreadSummary(ctx context.Context, userID string) ([]models.UnreadCount, error) {
	args := m.Called(ctx, userID)
	var counts []models.UnreadCount
	if val := args.Get(0); val != nil {
		counts = val.([]models.UnreadCount)
	}
	return counts, args.Error(1)
}

type DirectoryMock struct {
	mock.Mock
}

func (m *DirectoryMock) Register(ctx context.Context, userID, sessionID string) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

func (m *DirectoryMock) Deregister(ctx context.Context, userID, sessionID string) error {
	args := m.Called(ctx, userID, sessionID)
	return args.Error(0)
}

func (m *DirectoryMock) Refresh(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *DirectoryMock) Lookup(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	var processes []string
	if val := args.Get(0); val != nil {
		processes = val.([]string)
	}
	return processes, args.Error(1)
}

func (m *DirectoryMock) ProcessSessions(ctx context.Context, processID string) ([]string, error) {
	args := m.Called(ctx, processID)
	var members []string
	if val := args.Get(0); val != nil {
		members = val.([]string)
	}
	return members, args.Error(1)
}

type EnqueuerMock struct {
	mock.Mock
}

func (m *EnqueuerMock) TryEnqueue(event models.DistributionEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

type PusherMock struct {
	mock.Mock
}

func (m *PusherMock) PushToUser(userID string, frame models.OutboundFrame) int {
	args := m.Called(userID, frame)
	return args.Int(0)
}

type AccessCheckerMock struct {
	mock.Mock
}

func (m *AccessCheckerMock) HasAccess(ctx context.Context, userID, conversationID string) (bool, error) {
	args := m.Called(ctx, userID, conversationID)
	return args.Bool(0), args.Error(1)
}

func (m *AccessCheckerMock) Participants(ctx context.Context, conversationID string) ([]string, error) {
	args := m.Called(ctx, conversationID)
	var ids []string
	if val := args.Get(0); val != nil {
		ids = val.([]string)
	}
	return ids, args.Error(1)
}
