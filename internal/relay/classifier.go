package relay

import (
	"errors"
	"time"

	"github.com/spjorts/relay/internal/observability"
	"github.com/spjorts/relay/internal/protocol"
	"github.com/spjorts/relay/internal/registry"
)

// Role is a connection's resolved identity.
type Role int

const (
	RoleUnresolved Role = iota
	RoleController
	RoleListener
)

func (r Role) String() string {
	switch r {
	case RoleController:
		return "controller"
	case RoleListener:
		return "listener"
	default:
		return "unresolved"
	}
}

var ErrListenerSentFrame = errors.New("relay: listener connections must not send frames")

// Classifier is the per-connection state machine. The first frame on a
// connection is read from the handshake table and fixes the role; every
// later frame is read from the event table. Any decode failure, and any
// frame at all from a listener, is fatal for the connection.
type Classifier struct {
	reg *registry.Registry

	role     Role
	id       protocol.ControllerID
	attached bool
}

func NewClassifier(reg *registry.Registry) *Classifier {
	return &Classifier{reg: reg}
}

func (c *Classifier) Role() Role { return c.role }

// ControllerID is the id this connection resolved to. Zero until the
// handshake has been processed.
func (c *Classifier) ControllerID() protocol.ControllerID { return c.id }

// Attached reports whether a listener handshake found its controller
// live. A false result is benign: the connection stays open and simply
// never receives broadcasts.
func (c *Classifier) Attached() bool { return c.attached }

// HandleFrame advances the state machine by one binary frame. sink is the
// connection's write capability, subscribed to the target controller when
// the frame resolves this connection as a listener. A returned error is
// always fatal for the connection.
func (c *Classifier) HandleFrame(frame []byte, sink registry.Sink) error {
	switch c.role {
	case RoleUnresolved:
		return c.handleHandshake(frame, sink)
	case RoleController:
		return c.handleEvent(frame)
	default:
		return ErrListenerSentFrame
	}
}

func (c *Classifier) handleHandshake(frame []byte, sink registry.Sink) error {
	hs, err := protocol.DecodeHandshake(frame)
	if err != nil {
		return err
	}
	c.id = hs.ID
	switch hs.Tag {
	case protocol.TagController:
		c.role = RoleController
		c.reg.RegisterController(hs.ID)
	default:
		c.role = RoleListener
		c.attached = c.reg.AttachListener(hs.ID, sink)
	}
	return nil
}

func (c *Classifier) handleEvent(frame []byte) error {
	ev, err := protocol.DecodeEvent(frame)
	if err != nil {
		return err
	}
	switch ev.Tag {
	case protocol.TagPairingIntent:
		c.reg.SetPairingIntent(c.id)
		return nil
	case protocol.TagHeartbeat:
		c.reg.Touch(c.id)
	}
	// Raw frame bytes are relayed as-is; if the controller was evicted
	// between frames the broadcast silently finds nobody.
	start := time.Now()
	_, dropped := c.reg.Broadcast(c.id, frame)
	observability.RecordRelayedFrame(ev.Tag, dropped, time.Since(start))
	return nil
}
