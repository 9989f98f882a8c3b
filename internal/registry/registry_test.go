package registry

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/spjorts/relay/internal/protocol"
)

type fakeSink struct {
	frames [][]byte
	fail   bool
	closed bool
}

func (s *fakeSink) WriteBinary(frame []byte) error {
	if s.fail {
		return errors.New("sink gone")
	}
	cp := make([]byte, len(frame))
	copy(cp, frame)
	s.frames = append(s.frames, cp)
	return nil
}

func (s *fakeSink) Close() error {
	s.closed = true
	return nil
}

func newTestRegistry(evictAfter int) *Registry {
	return New(evictAfter, zerolog.Nop())
}

func TestBroadcastDeliversToAllListeners(t *testing.T) {
	entity := NewController(1)
	a, b := &fakeSink{}, &fakeSink{}
	entity.AttachListener(a)
	entity.AttachListener(b)

	frame := []byte{protocol.TagButtonA}
	if dropped := entity.Broadcast(frame); dropped != 0 {
		t.Fatalf("dropped=%d, want 0", dropped)
	}
	for i, sink := range []*fakeSink{a, b} {
		if len(sink.frames) != 1 || !bytes.Equal(sink.frames[0], frame) {
			t.Fatalf("listener %d frames=%x", i, sink.frames)
		}
	}
}

func TestBroadcastPrunesFailedSinksOnly(t *testing.T) {
	entity := NewController(1)
	ok1, bad, ok2 := &fakeSink{}, &fakeSink{fail: true}, &fakeSink{}
	entity.AttachListener(ok1)
	entity.AttachListener(bad)
	entity.AttachListener(ok2)

	if dropped := entity.Broadcast([]byte{protocol.TagButtonB}); dropped != 1 {
		t.Fatalf("dropped=%d, want 1", dropped)
	}
	if entity.ListenerCount() != 2 {
		t.Fatalf("listeners=%d, want 2", entity.ListenerCount())
	}
	// Siblings of the failed sink still got the frame.
	if len(ok1.frames) != 1 || len(ok2.frames) != 1 {
		t.Fatalf("sibling delivery: %d/%d", len(ok1.frames), len(ok2.frames))
	}

	// The pruned sink stays gone on the next pass.
	if dropped := entity.Broadcast([]byte{protocol.TagButtonA}); dropped != 0 {
		t.Fatalf("second pass dropped=%d, want 0", dropped)
	}
	if len(ok1.frames) != 2 || len(ok2.frames) != 2 {
		t.Fatalf("second delivery: %d/%d", len(ok1.frames), len(ok2.frames))
	}
}

func TestAttachListenerUnknownControllerIsBenign(t *testing.T) {
	reg := newTestRegistry(0)
	if reg.AttachListener(99, &fakeSink{}) {
		t.Fatal("attach to unregistered id reported success")
	}
	if ok, _ := reg.Broadcast(99, []byte{protocol.TagButtonA}); ok {
		t.Fatal("broadcast to unregistered id reported success")
	}
}

func TestReRegistrationOrphansAndClosesOldListeners(t *testing.T) {
	reg := newTestRegistry(0)
	reg.RegisterController(7)

	old := &fakeSink{}
	if !reg.AttachListener(7, old) {
		t.Fatal("attach failed")
	}

	fresh := reg.RegisterController(7)
	if !old.closed {
		t.Fatal("orphaned sink was not closed")
	}
	if fresh.ListenerCount() != 0 {
		t.Fatalf("listeners migrated: %d", fresh.ListenerCount())
	}

	// The new entity serves broadcasts; the old sink never sees them.
	replacement := &fakeSink{}
	reg.AttachListener(7, replacement)
	reg.Broadcast(7, []byte{protocol.TagButtonA})
	if len(old.frames) != 0 {
		t.Fatalf("old sink received %d frames after replacement", len(old.frames))
	}
	if len(replacement.frames) != 1 {
		t.Fatalf("replacement frames=%d, want 1", len(replacement.frames))
	}
}

func TestTickHeartbeatsEvictsAtLimit(t *testing.T) {
	reg := newTestRegistry(3)
	reg.RegisterController(5)

	for i := 0; i < 2; i++ {
		if evicted := reg.TickHeartbeats(); len(evicted) != 0 {
			t.Fatalf("tick %d evicted %v", i, evicted)
		}
	}
	evicted := reg.TickHeartbeats()
	if len(evicted) != 1 || evicted[0] != 5 {
		t.Fatalf("evicted=%v, want [5]", evicted)
	}
	if _, ok := reg.Lookup(5); ok {
		t.Fatal("controller still live after eviction")
	}
	if reg.ControllerCount() != 0 {
		t.Fatalf("count=%d after eviction", reg.ControllerCount())
	}
	// Both maps emptied together: further ticks find nothing to age.
	if evicted := reg.TickHeartbeats(); len(evicted) != 0 {
		t.Fatalf("post-eviction tick evicted %v", evicted)
	}
}

func TestReRegistrationResetsHeartbeatAge(t *testing.T) {
	reg := newTestRegistry(3)
	reg.RegisterController(5)
	reg.TickHeartbeats()
	reg.TickHeartbeats()
	reg.RegisterController(5)

	for i := 0; i < 2; i++ {
		if evicted := reg.TickHeartbeats(); len(evicted) != 0 {
			t.Fatalf("tick %d after re-registration evicted %v", i, evicted)
		}
	}
	if evicted := reg.TickHeartbeats(); len(evicted) != 1 {
		t.Fatalf("evicted=%v, want one id", evicted)
	}
}

func TestTouchResetsHeartbeatAge(t *testing.T) {
	reg := newTestRegistry(2)
	reg.RegisterController(8)
	reg.TickHeartbeats()

	if !reg.Touch(8) {
		t.Fatal("touch on live controller failed")
	}
	if evicted := reg.TickHeartbeats(); len(evicted) != 0 {
		t.Fatalf("evicted %v one tick after touch", evicted)
	}
	if evicted := reg.TickHeartbeats(); len(evicted) != 1 {
		t.Fatalf("evicted=%v, want one id", evicted)
	}

	if reg.Touch(8) {
		t.Fatal("touch on evicted controller reported success")
	}
}

func TestPairingIntentListAndClaimOnce(t *testing.T) {
	reg := newTestRegistry(0)
	reg.RegisterController(11)
	reg.SetPairingIntent(11)
	reg.SetPairingIntent(11) // idempotent

	ids := reg.ListPairingIDs()
	if len(ids) != 1 || ids[0] != 11 {
		t.Fatalf("pairing ids=%v, want [11]", ids)
	}

	if !reg.ClaimPairing(11) {
		t.Fatal("first claim failed")
	}
	if reg.ClaimPairing(11) {
		t.Fatal("second claim succeeded without a new intent")
	}
	if ids := reg.ListPairingIDs(); len(ids) != 0 {
		t.Fatalf("pairing ids after claim=%v", ids)
	}
}

func TestClaimPairingUnknownID(t *testing.T) {
	reg := newTestRegistry(0)
	if reg.ClaimPairing(404) {
		t.Fatal("claim on never-pending id succeeded")
	}
}
