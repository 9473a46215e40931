package ws

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chat-delivery/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameSize   = 64 * 1024
	outboundBuffer = 64
	dedupeCapacity = 128
)

// Session is one websocket connection for one authenticated user. Writes go
// through a buffered channel so a slow reader never blocks distribution.
type Session struct {
	ID     string
	UserID string
	Info   ConnInfo

	conn    *websocket.Conn
	send    chan models.OutboundFrame
	handle  func(ctx context.Context, s *Session, frame models.InboundFrame)
	onPong  func(s *Session)
	closing sync.Once
	done    chan struct{}

	dedupe    *dedupeRing
	displayed *dedupeRing
}

func newSession(conn *websocket.Conn, info ConnInfo,
	handle func(ctx context.Context, s *Session, frame models.InboundFrame),
	onPong func(s *Session)) *Session {
	return &Session{
		ID:     info.SessionID,
		UserID: info.UserID,
		Info:   info,
		conn:   conn,
		send:   make(chan models.OutboundFrame, outboundBuffer),
		handle: handle,
		onPong: onPong,
		done:      make(chan struct{}),
		dedupe:    newDedupeRing(dedupeCapacity),
		displayed: newDedupeRing(dedupeCapacity),
	}
}

// Push queues a frame for delivery. Returns false when the session's buffer
// is full or the session is closing. A MESSAGE frame whose server id was
// already displayed on this session is swallowed but reported as accepted:
// distribution events are at-least-once (consumer rebalance, sweep
// re-publish) and a replay must never render twice.
func (s *Session) Push(frame models.OutboundFrame) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	fresh := frame.Type == models.FrameMessage && !frame.Edited && !frame.Deleted && frame.ServerMessageID != ""
	if fresh {
		if _, seen := s.displayed.Lookup(frame.ServerMessageID); seen {
			return true
		}
	}

	select {
	case s.send <- frame:
		if fresh {
			s.displayed.Remember(frame.ServerMessageID, frame.ClientMessageID)
		}
		return true
	default:
		return false
	}
}

func (s *Session) close() {
	s.closing.Do(func() {
		close(s.done)
		if s.conn != nil {
			s.conn.Close()
		}
	})
}

// readPump reads frames until the connection drops. Runs on the handshake
// goroutine; returning triggers cleanup in the handler.
func (s *Session) readPump(ctx context.Context) {
	defer s.close()

	s.conn.SetReadLimit(maxFrameSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
		if s.onPong != nil {
			s.onPong(s)
		}
		return nil
	})

	for {
		var frame models.InboundFrame
		if err := s.conn.ReadJSON(&frame); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("websocket read error user=%s session=%s: %v", s.UserID, s.ID, err)
			}
			return
		}
		s.handle(ctx, s, frame)
	}
}

// writePump owns the connection's write side: queued frames and heartbeat
// pings. Exactly one writer per connection.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.close()
	}()

	for {
		select {
		case frame := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(frame); err != nil {
				log.Printf("websocket write error user=%s session=%s: %v", s.UserID, s.ID, err)
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

// dedupeRing remembers recently seen client message ids and the server id
// each resolved to, so a retransmitted frame gets the original ACK back.
type dedupeRing struct {
	mu    sync.Mutex
	seen  map[string]string
	order []string
	next  int
}

func newDedupeRing(capacity int) *dedupeRing {
	return &dedupeRing{
		seen:  make(map[string]string, capacity),
		order: make([]string, capacity),
	}
}

// Lookup returns the server message id a client id previously resolved to.
func (r *dedupeRing) Lookup(clientMessageID string) (string, bool) {
	if clientMessageID == "" {
		return "", false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	serverID, ok := r.seen[clientMessageID]
	return serverID, ok
}

// Remember records a resolved client id, evicting the oldest entry once
// the ring is full.
func (r *dedupeRing) Remember(clientMessageID, serverMessageID string) {
	if clientMessageID == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if evicted := r.order[r.next]; evicted != "" {
		delete(r.seen, evicted)
	}
	r.order[r.next] = clientMessageID
	r.next = (r.next + 1) % len(r.order)
	r.seen[clientMessageID] = serverMessageID
}
