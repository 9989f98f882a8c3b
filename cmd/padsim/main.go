// padsim connects as a controller and streams random orientation noise,
// standing in for a physical device during development.
package main

import (
	"flag"
	"math"
	"math/rand"
	"time"

	"github.com/gorilla/websocket"

	"github.com/spjorts/relay/internal/observability"
	"github.com/spjorts/relay/internal/protocol"
)

func main() {
	url := flag.String("url", "ws://localhost:7878/ws", "relay websocket url")
	id := flag.Uint64("id", 1, "controller id to register as")
	interval := flag.Duration("interval", 500*time.Millisecond, "delay between angle frames")
	pair := flag.Bool("pair", false, "announce pairing intent after registering")
	flag.Parse()

	logger := observability.InitLogger("padsim")

	conn, _, err := websocket.DefaultDialer.Dial(*url, nil)
	if err != nil {
		logger.Fatal().Err(err).Str("url", *url).Msg("dial failed")
	}
	defer conn.Close()

	hs := protocol.EncodeHandshake(protocol.Handshake{
		Tag: protocol.TagController,
		ID:  protocol.ControllerID(*id),
	})
	if err := conn.WriteMessage(websocket.BinaryMessage, hs); err != nil {
		logger.Fatal().Err(err).Msg("handshake failed")
	}
	logger.Info().Uint64("controller_id", *id).Msg("registered")

	if *pair {
		intent := protocol.EncodeEvent(protocol.Event{Tag: protocol.TagPairingIntent})
		if err := conn.WriteMessage(websocket.BinaryMessage, intent); err != nil {
			logger.Fatal().Err(err).Msg("pairing intent failed")
		}
		logger.Info().Msg("pairing intent announced")
	}

	for {
		frame := protocol.EncodeEvent(protocol.Event{
			Tag:   protocol.TagAngleInfo,
			Pitch: rand.Float32() * 2 * math.Pi,
			Yaw:   rand.Float32() * 2 * math.Pi,
			Roll:  rand.Float32() * 2 * math.Pi,
		})
		if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			logger.Fatal().Err(err).Msg("write failed")
		}
		time.Sleep(*interval)
	}
}
