package status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chat-delivery/internal/mocks"
	"chat-delivery/internal/models"
	"chat-delivery/internal/queue"
	"chat-delivery/internal/repositories"
)

func newTestTracker(statuses *mocks.StatusRepositoryMock, enqueuer *mocks.EnqueuerMock, pusher *mocks.PusherMock) *Tracker {
	tracker := NewTracker(statuses, enqueuer, pusher)
	tracker.commitDelay = 20 * time.Millisecond
	return tracker
}

func TestMarkDeliveredEnqueuesStatusEvent(t *testing.T) {
	statuses := new(mocks.StatusRepositoryMock)
	enqueuer := new(mocks.EnqueuerMock)
	pusher := new(mocks.PusherMock)
	tracker := newTestTracker(statuses, enqueuer, pusher)

	statuses.On("Advance", mock.Anything, "m1", "u2", models.StateDelivered).Return(true, nil)
	enqueuer.On("TryEnqueue", mock.MatchedBy(func(event models.DistributionEvent) bool {
		return event.Kind == models.EventStatus &&
			event.MessageID == "m1" &&
			event.ConversationID == "c1" &&
			event.SenderID == "u1" &&
			event.ParticipantID == "u2" &&
			event.Status == "DELIVERED"
	})).Return(nil)

	err := tracker.MarkDelivered(context.Background(), "m1", "c1", "u1", "u2")
	require.NoError(t, err)

	statuses.AssertExpectations(t)
	enqueuer.AssertExpectations(t)
	pusher.AssertNotCalled(t, "PushToUser", mock.Anything, mock.Anything)
}

func TestMarkDeliveredStaleTransitionIsSilent(t *testing.T) {
	statuses := new(mocks.StatusRepositoryMock)
	enqueuer := new(mocks.EnqueuerMock)
	pusher := new(mocks.PusherMock)
	tracker := newTestTracker(statuses, enqueuer, pusher)

	statuses.On("Advance", mock.Anything, "m1", "u2", models.StateDelivered).Return(false, nil)

	err := tracker.MarkDelivered(context.Background(), "m1", "c1", "u1", "u2")
	require.NoError(t, err)

	enqueuer.AssertNotCalled(t, "TryEnqueue", mock.Anything)
	pusher.AssertNotCalled(t, "PushToUser", mock.Anything, mock.Anything)
}

func TestMarkDeliveredFallsBackToLocalPushWhenQueueFull(t *testing.T) {
	statuses := new(mocks.StatusRepositoryMock)
	enqueuer := new(mocks.EnqueuerMock)
	pusher := new(mocks.PusherMock)
	tracker := newTestTracker(statuses, enqueuer, pusher)

	statuses.On("Advance", mock.Anything, "m1", "u2", models.StateDelivered).Return(true, nil)
	enqueuer.On("TryEnqueue", mock.Anything).Return(queue.ErrQueueFull)
	pusher.On("PushToUser", "u1", mock.MatchedBy(func(frame models.OutboundFrame) bool {
		return frame.Type == models.FrameStatusUpdate &&
			frame.ServerMessageID == "m1" &&
			frame.ParticipantID == "u2" &&
			frame.Status == "DELIVERED"
	})).Return(1)

	err := tracker.MarkDelivered(context.Background(), "m1", "c1", "u1", "u2")
	require.NoError(t, err)

	pusher.AssertExpectations(t)
}

func TestMarkReadUpToNotifiesEachSender(t *testing.T) {
	statuses := new(mocks.StatusRepositoryMock)
	enqueuer := new(mocks.EnqueuerMock)
	pusher := new(mocks.PusherMock)
	tracker := newTestTracker(statuses, enqueuer, pusher)

	upTo := time.Now().UTC()
	statuses.On("MarkReadUpTo", mock.Anything, "u2", "c1", upTo).Return([]repositories.ReadTarget{
		{MessageID: "m1", SenderID: "u1"},
		{MessageID: "m2", SenderID: "u3"},
	}, nil)
	statuses.On("CommitMarker", mock.Anything, "u2", "c1", upTo).Return(nil)
	enqueuer.On("TryEnqueue", mock.MatchedBy(func(event models.DistributionEvent) bool {
		return event.Kind == models.EventStatus && event.Status == "READ"
	})).Return(nil).Times(2)

	err := tracker.MarkReadUpTo(context.Background(), "u2", "c1", upTo)
	require.NoError(t, err)

	enqueuer.AssertExpectations(t)

	require.Eventually(t, func() bool {
		tracker.mu.Lock()
		defer tracker.mu.Unlock()
		return len(tracker.pending) == 0
	}, time.Second, 5*time.Millisecond)
	statuses.AssertExpectations(t)
}

func TestReadMarkerCommitIsDebounced(t *testing.T) {
	statuses := new(mocks.StatusRepositoryMock)
	enqueuer := new(mocks.EnqueuerMock)
	pusher := new(mocks.PusherMock)
	tracker := newTestTracker(statuses, enqueuer, pusher)

	first := time.Now().UTC()
	second := first.Add(time.Second)
	statuses.On("MarkReadUpTo", mock.Anything, "u2", "c1", mock.Anything).Return(nil, nil)
	statuses.On("CommitMarker", mock.Anything, "u2", "c1", second).Return(nil).Once()

	require.NoError(t, tracker.MarkReadUpTo(context.Background(), "u2", "c1", first))
	require.NoError(t, tracker.MarkReadUpTo(context.Background(), "u2", "c1", second))

	require.Eventually(t, func() bool {
		tracker.mu.Lock()
		defer tracker.mu.Unlock()
		return len(tracker.pending) == 0
	}, time.Second, 5*time.Millisecond)

	statuses.AssertExpectations(t)
	statuses.AssertNumberOfCalls(t, "CommitMarker", 1)
}

func TestFlushCommitsPendingMarkers(t *testing.T) {
	statuses := new(mocks.StatusRepositoryMock)
	enqueuer := new(mocks.EnqueuerMock)
	pusher := new(mocks.PusherMock)
	tracker := NewTracker(statuses, enqueuer, pusher)

	upTo := time.Now().UTC()
	statuses.On("MarkReadUpTo", mock.Anything, "u2", "c1", upTo).Return(nil, nil)
	statuses.On("CommitMarker", mock.Anything, "u2", "c1", upTo).Return(nil).Once()

	require.NoError(t, tracker.MarkReadUpTo(context.Background(), "u2", "c1", upTo))
	tracker.Flush(context.Background())

	statuses.AssertExpectations(t)
}

func TestUnreadSummaryKeyedByConversation(t *testing.T) {
	statuses := new(mocks.StatusRepositoryMock)
	tracker := newTestTracker(statuses, new(mocks.EnqueuerMock), new(mocks.PusherMock))

	statuses.On("UnreadSummary", mock.Anything, "u2").Return([]models.UnreadCount{
		{ConversationID: "c1", Count: 3},
		{ConversationID: "c2", Count: 1},
	}, nil)

	summary, err := tracker.UnreadSummary(context.Background(), "u2")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"c1": 3, "c2": 1}, summary)
}
