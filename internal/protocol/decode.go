package protocol

import (
	"encoding/binary"
	"math"
)

// DecodeHandshake parses a role-resolution frame: a tag byte followed by a
// little-endian u64 controller id, 9 bytes total.
func DecodeHandshake(buf []byte) (Handshake, error) {
	if len(buf) == 0 {
		return Handshake{}, ErrEmptyFrame
	}
	switch buf[0] {
	case TagEstablish, TagController:
	default:
		return Handshake{}, ErrUnknownHandshakeTag
	}
	if len(buf) != HandshakeLen {
		return Handshake{}, ErrBadFrameLength
	}
	return Handshake{
		Tag: buf[0],
		ID:  ControllerID(binary.LittleEndian.Uint64(buf[1:9])),
	}, nil
}

// DecodeEvent parses a controller event frame. Every variant is a single
// tag byte; AngleInfo carries three little-endian f32 angles after it.
func DecodeEvent(buf []byte) (Event, error) {
	if len(buf) == 0 {
		return Event{}, ErrEmptyFrame
	}
	switch buf[0] {
	case TagHeartbeat, TagButtonA, TagButtonB, TagPairingIntent:
		if len(buf) != 1 {
			return Event{}, ErrBadFrameLength
		}
		return Event{Tag: buf[0]}, nil
	case TagAngleInfo:
		if len(buf) != 1+anglePayloadLen {
			return Event{}, ErrBadFrameLength
		}
		return Event{
			Tag:   TagAngleInfo,
			Pitch: math.Float32frombits(binary.LittleEndian.Uint32(buf[1:5])),
			Yaw:   math.Float32frombits(binary.LittleEndian.Uint32(buf[5:9])),
			Roll:  math.Float32frombits(binary.LittleEndian.Uint32(buf[9:13])),
		}, nil
	default:
		return Event{}, ErrUnknownEventTag
	}
}
