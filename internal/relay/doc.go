// Package relay owns the per-connection session: the role state machine
// that classifies a socket as controller or listener from its first
// frame, and the read loop that feeds it.
//
// All session state is exclusively owned by the connection's goroutine;
// the registry is the only shared resource it touches.
package relay
