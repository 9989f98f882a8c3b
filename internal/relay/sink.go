package relay

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wsSink adapts a websocket connection to the registry's Sink. The mutex
// serializes writes from whichever controller goroutine is currently
// broadcasting; the deadline bounds how long one dead listener can stall
// a fan-out pass.
type wsSink struct {
	conn    *websocket.Conn
	mu      sync.Mutex
	timeout time.Duration
}

func newWSSink(conn *websocket.Conn, timeout time.Duration) *wsSink {
	return &wsSink{conn: conn, timeout: timeout}
}

func (s *wsSink) WriteBinary(frame []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.conn.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
		return err
	}
	return s.conn.WriteMessage(websocket.BinaryMessage, frame)
}

func (s *wsSink) Close() error {
	return s.conn.Close()
}
