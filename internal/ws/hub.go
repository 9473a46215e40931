package ws

import (
	"log"
	"sync"

	"chat-delivery/internal/models"
)

// Hub tracks the sessions this process owns, keyed by user. It is the local
// half of the session directory: the directory answers "which process",
// the hub answers "which connections here".
type Hub struct {
	sessions map[string]map[*Session]bool
	mu       sync.RWMutex
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{sessions: make(map[string]map[*Session]bool)}
}

// Add registers a session under its user.
func (h *Hub) Add(session *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.sessions[session.UserID]; !ok {
		h.sessions[session.UserID] = make(map[*Session]bool)
	}
	h.sessions[session.UserID][session] = true
}

// Remove unregisters a session.
func (h *Hub) Remove(session *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if sessions, ok := h.sessions[session.UserID]; ok {
		delete(sessions, session)
		if len(sessions) == 0 {
			delete(h.sessions, session.UserID)
		}
	}
}

// PushToUser queues a frame on every session the user has on this process
// and reports how many sessions accepted it. A full outbound buffer means
// the client cannot keep up; the session is closed and the client recovers
// from the durable store on reconnect.
func (h *Hub) PushToUser(userID string, frame models.OutboundFrame) int {
	h.mu.RLock()
	sessions := make([]*Session, 0, len(h.sessions[userID]))
	for session := range h.sessions[userID] {
		sessions = append(sessions, session)
	}
	h.mu.RUnlock()

	reached := 0
	for _, session := range sessions {
		if session.Push(frame) {
			reached++
		} else {
			log.Printf("session outbound buffer full user=%s session=%s, closing slow session", userID, session.ID)
			session.close()
		}
	}
	return reached
}

// SessionCount reports the number of local sessions for a user.
func (h *Hub) SessionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[userID])
}

// Users lists the users with at least one local session.
func (h *Hub) Users() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	users := make([]string, 0, len(h.sessions))
	for userID := range h.sessions {
		users = append(users, userID)
	}
	return users
}
