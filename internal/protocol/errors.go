package protocol

import "errors"

var (
	ErrEmptyFrame          = errors.New("protocol: empty frame")
	ErrUnknownHandshakeTag = errors.New("protocol: unknown handshake tag")
	ErrUnknownEventTag     = errors.New("protocol: unknown event tag")
	ErrBadFrameLength      = errors.New("protocol: bad frame length")
)
