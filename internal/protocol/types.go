package protocol

// ControllerID identifies one physical controller. It is chosen by the
// device, not the server; the registry resolves collisions last-writer-wins.
type ControllerID uint64

// Handshake frame tags. Valid only as the first frame on a connection.
const (
	TagEstablish  byte = 0x01
	TagController byte = 0x02
)

// Event frame tags. Valid only from a resolved controller connection.
const (
	TagHeartbeat     byte = 0x01
	TagButtonA       byte = 0x02
	TagButtonB       byte = 0x03
	TagAngleInfo     byte = 0x04
	TagPairingIntent byte = 0x05
)

const (
	// HandshakeLen is the exact length of both handshake variants:
	// one tag byte plus a u64 controller id.
	HandshakeLen = 9

	anglePayloadLen = 12
)

// Handshake is the decoded form of a role-resolution frame.
type Handshake struct {
	Tag byte
	ID  ControllerID
}

// Event is the decoded form of a controller event frame. Pitch/Yaw/Roll
// are meaningful only when Tag is TagAngleInfo.
type Event struct {
	Tag   byte
	Pitch float32
	Yaw   float32
	Roll  float32
}
