package registry

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/spjorts/relay/internal/protocol"
)

// DefaultEvictAfter is how many sweeper ticks of silence a controller
// survives before eviction.
const DefaultEvictAfter = 50

// Registry is the single shared map of live controllers. One mutex guards
// the controller map, the heartbeat ages, and the pairing set; it is held
// only for map operations, never across sink writes.
type Registry struct {
	mu          sync.Mutex
	controllers map[protocol.ControllerID]*Controller
	ages        map[protocol.ControllerID]int
	pairing     map[protocol.ControllerID]struct{}

	evictAfter int
	log        zerolog.Logger
}

func New(evictAfter int, log zerolog.Logger) *Registry {
	if evictAfter <= 0 {
		evictAfter = DefaultEvictAfter
	}
	return &Registry{
		controllers: make(map[protocol.ControllerID]*Controller),
		ages:        make(map[protocol.ControllerID]int),
		pairing:     make(map[protocol.ControllerID]struct{}),
		evictAfter:  evictAfter,
		log:         log,
	}
}

// RegisterController publishes a fresh entity for id and zeroes its
// heartbeat age. A concurrent re-registration under the same id replaces
// the previous entity last-writer-wins; listeners attached to the old
// entity are not migrated, their sinks are closed so the client observes
// the cut instead of silently going deaf.
func (r *Registry) RegisterController(id protocol.ControllerID) *Controller {
	entity := NewController(id)

	r.mu.Lock()
	old := r.controllers[id]
	r.controllers[id] = entity
	r.ages[id] = 0
	r.mu.Unlock()

	if old != nil {
		orphans := old.detachAll()
		for _, sink := range orphans {
			_ = sink.Close()
		}
		r.log.Info().
			Uint64("controller_id", uint64(id)).
			Int("orphaned_listeners", len(orphans)).
			Msg("controller re-registered")
	}
	return entity
}

// Lookup returns the live entity for id, if any.
func (r *Registry) Lookup(id protocol.ControllerID) (*Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entity, ok := r.controllers[id]
	return entity, ok
}

// AttachListener subscribes sink to id. Returns false when id is not
// live; that is a benign race with device churn, not an error.
func (r *Registry) AttachListener(id protocol.ControllerID, sink Sink) bool {
	entity, ok := r.Lookup(id)
	if !ok {
		return false
	}
	entity.AttachListener(sink)
	return true
}

// Broadcast relays frame to every listener of id. Returns whether the
// controller was live and how many dead sinks were pruned. The registry
// lock is released before any sink write happens.
func (r *Registry) Broadcast(id protocol.ControllerID, frame []byte) (ok bool, dropped int) {
	entity, ok := r.Lookup(id)
	if !ok {
		return false, 0
	}
	return true, entity.Broadcast(frame)
}

// Touch resets id's heartbeat age. Returns false when id is not live.
func (r *Registry) Touch(id protocol.ControllerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.controllers[id]; !ok {
		return false
	}
	r.ages[id] = 0
	return true
}

// SetPairingIntent marks id as waiting to be claimed. Idempotent.
func (r *Registry) SetPairingIntent(id protocol.ControllerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pairing[id] = struct{}{}
}

// ListPairingIDs snapshots the pending set. Ids whose controller died
// after announcing stay listed until a claim attempt fails against the
// controller map; claim-time lookup is the source of truth.
func (r *Registry) ListPairingIDs() []protocol.ControllerID {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]protocol.ControllerID, 0, len(r.pairing))
	for id := range r.pairing {
		ids = append(ids, id)
	}
	return ids
}

// ClaimPairing removes id from the pending set, reporting whether the
// claim won. Exactly one claim succeeds per intent.
func (r *Registry) ClaimPairing(id protocol.ControllerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.pairing[id]; !ok {
		return false
	}
	delete(r.pairing, id)
	return true
}

// ControllerCount reports how many controllers are currently live.
func (r *Registry) ControllerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// TickHeartbeats ages every controller by one tick and evicts those that
// reach the limit, removing them from both maps together. Eviction is
// silent toward attached listeners; their sockets simply stop receiving.
func (r *Registry) TickHeartbeats() []protocol.ControllerID {
	r.mu.Lock()
	defer r.mu.Unlock()

	var evicted []protocol.ControllerID
	for id := range r.ages {
		r.ages[id]++
		if r.ages[id] >= r.evictAfter {
			delete(r.ages, id)
			delete(r.controllers, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}
