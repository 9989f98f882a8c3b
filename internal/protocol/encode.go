package protocol

import (
	"encoding/binary"
	"math"
)

// EncodeHandshake produces the 9-byte wire form of h. It is the exact
// inverse of DecodeHandshake for both variants.
func EncodeHandshake(h Handshake) []byte {
	buf := make([]byte, HandshakeLen)
	buf[0] = h.Tag
	binary.LittleEndian.PutUint64(buf[1:9], uint64(h.ID))
	return buf
}

// EncodeEvent produces the wire form of e. It is the exact inverse of
// DecodeEvent for every variant.
func EncodeEvent(e Event) []byte {
	if e.Tag != TagAngleInfo {
		return []byte{e.Tag}
	}
	buf := make([]byte, 1+anglePayloadLen)
	buf[0] = TagAngleInfo
	binary.LittleEndian.PutUint32(buf[1:5], math.Float32bits(e.Pitch))
	binary.LittleEndian.PutUint32(buf[5:9], math.Float32bits(e.Yaw))
	binary.LittleEndian.PutUint32(buf[9:13], math.Float32bits(e.Roll))
	return buf
}
