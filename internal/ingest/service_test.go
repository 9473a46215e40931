package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chat-delivery/internal/mocks"
	"chat-delivery/internal/models"
	"chat-delivery/internal/queue"
)

type delivererMock struct {
	mock.Mock
}

func (m *delivererMock) Deliver(ctx context.Context, event models.DistributionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type fixture struct {
	messages  *mocks.MessageRepositoryMock
	statuses  *mocks.StatusRepositoryMock
	access    *mocks.AccessCheckerMock
	enqueuer  *mocks.EnqueuerMock
	deliverer *delivererMock
	mirror    *mocks.PublisherMock
	service   *Service
}

func newFixture() *fixture {
	f := &fixture{
		messages:  new(mocks.MessageRepositoryMock),
		statuses:  new(mocks.StatusRepositoryMock),
		access:    new(mocks.AccessCheckerMock),
		enqueuer:  new(mocks.EnqueuerMock),
		deliverer: new(delivererMock),
		mirror:    new(mocks.PublisherMock),
	}
	f.service = NewService(f.messages, f.statuses, f.access, f.enqueuer, f.deliverer, f.mirror)
	return f
}

func storedMessage() models.Message {
	return models.Message{
		ID:              "m1",
		ConversationID:  "c1",
		SenderID:        "u1",
		ClientMessageID: "client-1",
		Content:         "hello",
		Type:            "text",
		CreatedAt:       time.Now().UTC(),
	}
}

func TestSubmitPersistsSeedsAndEnqueues(t *testing.T) {
	f := newFixture()

	f.access.On("HasAccess", mock.Anything, "u1", "c1").Return(true, nil)
	f.messages.On("Create", mock.Anything, "c1", "u1", "hello", "text", "client-1").Return(storedMessage(), nil)
	f.access.On("Participants", mock.Anything, "c1").Return([]string{"u1", "u2", "u3"}, nil)
	f.statuses.On("SeedSent", mock.Anything, "m1", []string{"u2", "u3"}).Return(nil)
	f.enqueuer.On("TryEnqueue", mock.MatchedBy(func(event models.DistributionEvent) bool {
		return event.Kind == models.EventMessage &&
			event.MessageID == "m1" &&
			event.ConversationID == "c1" &&
			event.ClientMessageID == "client-1"
	})).Return(nil)
	f.mirror.On("Publish", mock.Anything, "distribution.c1", mock.Anything).Return(nil)

	msg, err := f.service.Submit(context.Background(), "c1", "u1", "hello", "client-1")
	require.NoError(t, err)
	require.Equal(t, "m1", msg.ID)

	f.messages.AssertExpectations(t)
	f.statuses.AssertExpectations(t)
	f.enqueuer.AssertExpectations(t)
	f.mirror.AssertExpectations(t)
	f.deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestSubmitDeniedPersistsNothing(t *testing.T) {
	f := newFixture()

	f.access.On("HasAccess", mock.Anything, "u9", "c1").Return(false, nil)

	_, err := f.service.Submit(context.Background(), "c1", "u9", "hello", "")
	require.ErrorIs(t, err, ErrAccessDenied)

	f.messages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.enqueuer.AssertNotCalled(t, "TryEnqueue", mock.Anything)
}

func TestSubmitEmptyContentRejected(t *testing.T) {
	f := newFixture()

	_, err := f.service.Submit(context.Background(), "c1", "u1", "", "")
	require.ErrorIs(t, err, ErrEmptyContent)

	f.access.AssertNotCalled(t, "HasAccess", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitRetriesStoreThenFails(t *testing.T) {
	f := newFixture()

	f.access.On("HasAccess", mock.Anything, "u1", "c1").Return(true, nil)
	f.messages.On("Create", mock.Anything, "c1", "u1", "hello", "text", "").
		Return(models.Message{}, errors.New("connection refused")).Times(2)

	_, err := f.service.Submit(context.Background(), "c1", "u1", "hello", "")
	require.ErrorIs(t, err, ErrPersistence)

	f.messages.AssertNumberOfCalls(t, "Create", 2)
	f.enqueuer.AssertNotCalled(t, "TryEnqueue", mock.Anything)
}

func TestSubmitFallsBackWhenQueueSaturated(t *testing.T) {
	f := newFixture()

	f.access.On("HasAccess", mock.Anything, "u1", "c1").Return(true, nil)
	f.messages.On("Create", mock.Anything, "c1", "u1", "hello", "text", "client-1").Return(storedMessage(), nil)
	f.access.On("Participants", mock.Anything, "c1").Return([]string{"u1", "u2"}, nil)
	f.statuses.On("SeedSent", mock.Anything, "m1", []string{"u2"}).Return(nil)
	f.enqueuer.On("TryEnqueue", mock.Anything).Return(queue.ErrQueueFull)
	f.deliverer.On("Deliver", mock.Anything, mock.MatchedBy(func(event models.DistributionEvent) bool {
		return event.Kind == models.EventMessage && event.MessageID == "m1"
	})).Return(nil)
	f.mirror.On("Publish", mock.Anything, "distribution.c1", mock.Anything).Return(nil)

	msg, err := f.service.Submit(context.Background(), "c1", "u1", "hello", "client-1")
	require.NoError(t, err)
	require.Equal(t, "m1", msg.ID)

	f.deliverer.AssertExpectations(t)
}

func TestEditDistributesUpdateEvent(t *testing.T) {
	f := newFixture()

	edited := storedMessage()
	edited.Content = "fixed"
	edited.Edited = true
	f.messages.On("MarkEdited", mock.Anything, "m1", "u1", "fixed").Return(edited, nil)
	f.enqueuer.On("TryEnqueue", mock.MatchedBy(func(event models.DistributionEvent) bool {
		return event.Kind == models.EventEdit && event.Content == "fixed" && event.Edited
	})).Return(nil)
	f.mirror.On("Publish", mock.Anything, "distribution.c1", mock.Anything).Return(nil)

	msg, err := f.service.Edit(context.Background(), "m1", "u1", "fixed")
	require.NoError(t, err)
	require.True(t, msg.Edited)

	f.enqueuer.AssertExpectations(t)
}

func TestDeleteDistributesTombstone(t *testing.T) {
	f := newFixture()

	deleted := storedMessage()
	deleted.Content = ""
	deleted.Deleted = true
	f.messages.On("MarkDeleted", mock.Anything, "m1", "u1").Return(deleted, nil)
	f.enqueuer.On("TryEnqueue", mock.MatchedBy(func(event models.DistributionEvent) bool {
		return event.Kind == models.EventDelete && event.Deleted && event.Content == ""
	})).Return(nil)
	f.mirror.On("Publish", mock.Anything, "distribution.c1", mock.Anything).Return(nil)

	msg, err := f.service.Delete(context.Background(), "m1", "u1")
	require.NoError(t, err)
	require.True(t, msg.Deleted)

	f.enqueuer.AssertExpectations(t)
}

func TestTypingEnqueued(t *testing.T) {
	f := newFixture()

	f.enqueuer.On("TryEnqueue", mock.MatchedBy(func(event models.DistributionEvent) bool {
		return event.Kind == models.EventTyping && event.ConversationID == "c1" && event.SenderID == "u1"
	})).Return(nil)

	f.service.Typing(context.Background(), "c1", "u1")

	f.enqueuer.AssertExpectations(t)
}

func TestTypingDroppedUnderPressure(t *testing.T) {
	f := newFixture()

	f.enqueuer.On("TryEnqueue", mock.Anything).Return(queue.ErrQueueFull)

	f.service.Typing(context.Background(), "c1", "u1")

	f.deliverer.AssertNotCalled(t, "Deliver", mock.Anything, mock.Anything)
}

func TestSweepRepublishesUnacknowledged(t *testing.T) {
	f := newFixture()

	stale := storedMessage()
	f.messages.On("Undistributed", mock.Anything, mock.Anything, sweepBatchSize).Return([]models.Message{stale}, nil)
	f.enqueuer.On("TryEnqueue", mock.MatchedBy(func(event models.DistributionEvent) bool {
		return event.Kind == models.EventMessage && event.MessageID == "m1"
	})).Return(nil)

	f.service.sweep(context.Background())

	f.enqueuer.AssertExpectations(t)
}
