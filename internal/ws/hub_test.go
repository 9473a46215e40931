package ws

import (
	"testing"

	"chat-delivery/internal/models"
)

func testSession(userID string) *Session {
	info := ConnInfo{SessionID: newSessionID(), UserID: userID}
	return newSession(nil, info, nil, nil)
}

func TestHubAddAndRemoveSession(t *testing.T) {
	hub := NewHub()
	session := testSession("u1")

	hub.Add(session)
	if hub.SessionCount("u1") != 1 {
		t.Fatalf("expected one session for u1")
	}

	hub.Remove(session)
	if hub.SessionCount("u1") != 0 {
		t.Fatalf("expected session to be removed")
	}
	if len(hub.sessions) != 0 {
		t.Fatalf("expected empty user entry to be dropped")
	}
}

func TestPushToUserCountsReachedSessions(t *testing.T) {
	hub := NewHub()
	first := testSession("u1")
	second := testSession("u1")
	other := testSession("u2")
	hub.Add(first)
	hub.Add(second)
	hub.Add(other)

	reached := hub.PushToUser("u1", models.OutboundFrame{Type: models.FrameMessage})
	if reached != 2 {
		t.Fatalf("expected 2 sessions reached, got %d", reached)
	}
	if len(other.send) != 0 {
		t.Fatalf("expected u2 session to receive nothing")
	}
}

func TestPushToUserWithoutSessions(t *testing.T) {
	hub := NewHub()
	if reached := hub.PushToUser("ghost", models.OutboundFrame{Type: models.FrameMessage}); reached != 0 {
		t.Fatalf("expected 0 sessions reached, got %d", reached)
	}
}

func TestPushDropsWhenBufferFull(t *testing.T) {
	session := testSession("u1")
	for i := 0; i < outboundBuffer; i++ {
		if !session.Push(models.OutboundFrame{Type: models.FrameMessage}) {
			t.Fatalf("push %d should fit in the buffer", i)
		}
	}
	if session.Push(models.OutboundFrame{Type: models.FrameMessage}) {
		t.Fatalf("expected push to a full buffer to be dropped")
	}
}

func TestSlowSessionClosedOnFullBuffer(t *testing.T) {
	hub := NewHub()
	session := testSession("u1")
	hub.Add(session)

	for i := 0; i < outboundBuffer; i++ {
		session.Push(models.OutboundFrame{Type: models.FrameMessage})
	}

	if reached := hub.PushToUser("u1", models.OutboundFrame{Type: models.FrameMessage}); reached != 0 {
		t.Fatalf("expected overflow push to reach 0 sessions, got %d", reached)
	}
	select {
	case <-session.done:
	default:
		t.Fatalf("expected slow session to be closed")
	}
}

func TestDedupeRingRemembersAndEvicts(t *testing.T) {
	ring := newDedupeRing(2)

	ring.Remember("c1", "s1")
	ring.Remember("c2", "s2")

	if serverID, ok := ring.Lookup("c1"); !ok || serverID != "s1" {
		t.Fatalf("expected c1 -> s1, got %q ok=%v", serverID, ok)
	}

	ring.Remember("c3", "s3")
	if _, ok := ring.Lookup("c1"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
	if serverID, ok := ring.Lookup("c3"); !ok || serverID != "s3" {
		t.Fatalf("expected c3 -> s3 to be present")
	}
}

func TestDedupeRingIgnoresEmptyIDs(t *testing.T) {
	ring := newDedupeRing(2)
	ring.Remember("", "s1")
	if _, ok := ring.Lookup(""); ok {
		t.Fatalf("empty client ids must not be tracked")
	}
}
