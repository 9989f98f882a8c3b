package registry

import (
	"sync"

	"github.com/spjorts/relay/internal/protocol"
)

// Sink is one listener's write capability. Implementations must be safe
// for use from the owning controller's broadcast path; a failed write
// marks the sink dead and it is never retried.
type Sink interface {
	WriteBinary(frame []byte) error
	Close() error
}

// Controller is one connected physical controller and the ordered set of
// listener sinks subscribed to it.
type Controller struct {
	id protocol.ControllerID

	mu        sync.Mutex
	listeners []Sink
}

func NewController(id protocol.ControllerID) *Controller {
	return &Controller{id: id}
}

func (c *Controller) ID() protocol.ControllerID {
	return c.id
}

// AttachListener appends sink in arrival order. No dedup, no cap.
func (c *Controller) AttachListener(sink Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, sink)
}

func (c *Controller) ListenerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.listeners)
}

// Broadcast writes frame to every attached sink in attach order. A failed
// sink never blocks delivery to its siblings; all failed sinks are pruned
// after the pass. Returns how many sinks were dropped.
func (c *Controller) Broadcast(frame []byte) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.listeners[:0]
	dropped := 0
	for _, sink := range c.listeners {
		if err := sink.WriteBinary(frame); err != nil {
			dropped++
			continue
		}
		kept = append(kept, sink)
	}
	for i := len(kept); i < len(c.listeners); i++ {
		c.listeners[i] = nil
	}
	c.listeners = kept
	return dropped
}

// detachAll hands back the current sinks and empties the list. Used when
// the entity is replaced by a re-registration and its listeners must be
// closed out.
func (c *Controller) detachAll() []Sink {
	c.mu.Lock()
	defer c.mu.Unlock()
	sinks := c.listeners
	c.listeners = nil
	return sinks
}
