// Package protocol owns the binary wire contract between controller
// devices, the relay, and browser listeners.
//
// Ownership boundary:
// - handshake frame primitives (role resolution)
// - event frame primitives (button/orientation/pairing traffic)
// - tag tables for both frame families
//
// Handshake tags and event tags share numeric space; which table applies
// is decided by connection role, never by the bytes themselves.
package protocol
