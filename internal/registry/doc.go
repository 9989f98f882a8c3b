// Package registry tracks live controllers and the listeners subscribed
// to each of them.
//
// Ownership boundary:
// - the controller-id -> entity map and its heartbeat ages
// - the pairing-intent set
// - listener fan-out with drop-on-failure pruning
//
// The registry mutex and each entity's own mutex are never held at the
// same time; per-sink writes happen outside both map operations so one
// slow listener cannot stall unrelated controllers.
package registry
