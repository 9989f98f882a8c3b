// padwatch binds as a listener on a controller id and prints every
// decoded broadcast, standing in for a browser game session.
package main

import (
	"flag"

	"github.com/gorilla/websocket"

	"github.com/spjorts/relay/internal/observability"
	"github.com/spjorts/relay/internal/protocol"
)

func main() {
	url := flag.String("url", "ws://localhost:7878/ws", "relay websocket url")
	id := flag.Uint64("id", 1, "controller id to listen on")
	flag.Parse()

	logger := observability.InitLogger("padwatch")

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatal().Err(err).Str("url", *url).Msg("dial failed")
	}
	defer conn.Close()

	hs := protocol.EncodeHandshake(protocol.Handshake{
		Tag: protocol.TagEstablish,
		ID:  protocol.ControllerID(*id),
	})
	if err := conn.WriteMessage(websocket.BinaryMessage, hs); err != nil {
		logger.Fatal().Err(err).Msg("handshake failed")
	}
	logger.Info().Uint64("controller_id", *id).Msg("listening")

	for {
		msgType, frame, err := conn.ReadMessage()
		if err != nil {
			logger.Fatal().Err(err).Msg("read failed")
		}
		if msgType != websocket.BinaryMessage {
			logger.Warn().Int("type", msgType).Msg("non-binary message ignored")
			continue
		}
		ev, err := protocol.DecodeEvent(frame)
		if err != nil {
			logger.Error().Err(err).Hex("frame", frame).Msg("undecodable broadcast")
			continue
		}
		switch ev.Tag {
		case protocol.TagAngleInfo:
			logger.Info().
				Float32("pitch", ev.Pitch).
				Float32("yaw", ev.Yaw).
				Float32("roll", ev.Roll).
				Msg("angle")
		case protocol.TagButtonA:
			logger.Info().Msg("button A")
		case protocol.TagButtonB:
			logger.Info().Msg("button B")
		case protocol.TagHeartbeat:
			logger.Debug().Msg("heartbeat")
		default:
			logger.Info().Uint8("tag", ev.Tag).Msg("event")
		}
	}
}
