package relay

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/spjorts/relay/internal/observability"
	"github.com/spjorts/relay/internal/registry"
)

// Config holds session transport defaults.
type Config struct {
	WriteTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		WriteTimeout: 10 * time.Second,
	}
}

func (c Config) WithDefaults() Config {
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = DefaultConfig().WriteTimeout
	}
	return c
}

// Session drives one accepted websocket until it closes. Closing the
// underlying socket is the only cancellation path.
type Session struct {
	id         string
	conn       *websocket.Conn
	sink       registry.Sink
	classifier *Classifier
	log        zerolog.Logger
}

func NewSession(conn *websocket.Conn, reg *registry.Registry, cfg Config, log zerolog.Logger) *Session {
	cfg = cfg.WithDefaults()
	id := uuid.NewString()
	return &Session{
		id:         id,
		conn:       conn,
		sink:       newWSSink(conn, cfg.WriteTimeout),
		classifier: NewClassifier(reg),
		log:        log.With().Str("conn_id", id).Logger(),
	}
}

// Run reads frames until the socket closes or a frame is fatal. It owns
// the connection and closes it on exit.
func (s *Session) Run() {
	defer s.conn.Close()
	s.log.Debug().Str("remote", s.conn.RemoteAddr().String()).Msg("session opened")

	for {
		msgType, frame, err := s.conn.ReadMessage()
		if err != nil {
			s.log.Debug().Err(err).Str("role", s.classifier.Role().String()).Msg("session closed")
			return
		}
		if msgType != websocket.BinaryMessage {
			continue
		}

		before := s.classifier.Role()
		if err := s.classifier.HandleFrame(frame, s.sink); err != nil {
			s.log.Warn().Err(err).
				Str("role", s.classifier.Role().String()).
				Msg("fatal frame, closing connection")
			return
		}
		if before == RoleUnresolved {
			s.logResolved()
		}
	}
}

func (s *Session) logResolved() {
	role := s.classifier.Role()
	observability.RecordConnection(role.String())
	ev := s.log.Info().
		Str("role", role.String()).
		Uint64("controller_id", uint64(s.classifier.ControllerID()))
	if role == RoleListener && !s.classifier.Attached() {
		// Benign race with device churn: the listener stays connected
		// but will never receive broadcasts.
		ev.Bool("attached", false)
	}
	ev.Msg("connection resolved")
}
