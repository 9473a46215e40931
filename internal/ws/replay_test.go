package ws

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chat-delivery/internal/distribution"
	"chat-delivery/internal/mocks"
	"chat-delivery/internal/models"
)

type deliveryRecorderStub struct {
	calls int
}

func (r *deliveryRecorderStub) MarkDelivered(ctx context.Context, messageID, conversationID, senderID, participantID string) error {
	r.calls++
	return nil
}

func drainFrames(session *Session) []models.OutboundFrame {
	frames := make([]models.OutboundFrame, 0, len(session.send))
	for {
		select {
		case frame := <-session.send:
			frames = append(frames, frame)
		default:
			return frames
		}
	}
}

func TestReplayedDistributionEventDisplaysOnce(t *testing.T) {
	hub := NewHub()
	session := testSession("u2")
	hub.Add(session)

	participants := new(mocks.AccessCheckerMock)
	participants.On("Participants", mock.Anything, "c1").Return([]string{"u1", "u2"}, nil)
	recorder := new(deliveryRecorderStub)
	router := distribution.NewRouter(hub, participants, recorder)

	event := models.DistributionEvent{
		Kind:            models.EventMessage,
		MessageID:       "m1",
		ConversationID:  "c1",
		SenderID:        "u1",
		ClientMessageID: "client-1",
		Content:         "hi",
	}

	// A consumer rebalance or a sweep re-publish delivers the same event again.
	require.NoError(t, router.Handle(context.Background(), event))
	require.NoError(t, router.Handle(context.Background(), event))

	frames := drainFrames(session)
	require.Len(t, frames, 1)
	require.Equal(t, models.FrameMessage, frames[0].Type)
	require.Equal(t, "m1", frames[0].ServerMessageID)
}

func TestReplayStillCountsAsReachedForStatus(t *testing.T) {
	hub := NewHub()
	session := testSession("u2")
	hub.Add(session)

	participants := new(mocks.AccessCheckerMock)
	participants.On("Participants", mock.Anything, "c1").Return([]string{"u1", "u2"}, nil)
	recorder := new(deliveryRecorderStub)
	router := distribution.NewRouter(hub, participants, recorder)

	event := models.DistributionEvent{
		Kind:           models.EventMessage,
		MessageID:      "m1",
		ConversationID: "c1",
		SenderID:       "u1",
	}

	require.NoError(t, router.Handle(context.Background(), event))
	require.NoError(t, router.Handle(context.Background(), event))

	// The swallowed replay still reports the session as reached; the
	// DELIVERED advance is monotonic server-side, so repeating it is safe.
	require.Equal(t, 2, recorder.calls)
}

func TestEditOfDisplayedMessageIsNotSwallowed(t *testing.T) {
	session := testSession("u2")

	original := models.OutboundFrame{
		Type:            models.FrameMessage,
		ServerMessageID: "m1",
		ConversationID:  "c1",
		Content:         "hi",
	}
	require.True(t, session.Push(original))

	edit := original
	edit.Content = "hi, fixed"
	edit.Edited = true
	require.True(t, session.Push(edit))

	frames := drainFrames(session)
	require.Len(t, frames, 2)
	require.True(t, frames[1].Edited)
}

func TestDeleteOfDisplayedMessageIsNotSwallowed(t *testing.T) {
	session := testSession("u2")

	require.True(t, session.Push(models.OutboundFrame{
		Type:            models.FrameMessage,
		ServerMessageID: "m1",
		Content:         "hi",
	}))
	require.True(t, session.Push(models.OutboundFrame{
		Type:            models.FrameMessage,
		ServerMessageID: "m1",
		Deleted:         true,
	}))

	require.Len(t, drainFrames(session), 2)
}
