package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spjorts/relay/internal/protocol"
	"github.com/spjorts/relay/internal/relay"
)

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/ws", s.handleWS)

	r.GET("/controllers", s.handleControllers)
	r.GET("/connect", s.handleConnect)

	r.GET("/games", s.handleGames)
	r.GET("/sports/:name", s.handleSports)

	r.GET("/", s.servePage("index.html"))
	r.GET("/game", s.servePage("game.html"))
	r.GET("/favicon.ico", s.servePage("favicon.ico"))
	r.Static("/frontend", s.cfg.FrontendDir)
	r.Static("/wasm", s.cfg.WASMDir)

	r.GET("/health", s.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// handleWS upgrades the request and runs the connection session to
// completion on the handler goroutine; gorilla hands the hijacked socket
// to us and the handler must not return early.
func (s *Server) handleWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Warn().Err(err).Str("remote", c.Request.RemoteAddr).Msg("websocket upgrade failed")
		return
	}
	relay.NewSession(conn, s.reg, relay.Config{WriteTimeout: s.cfg.WriteTimeout()}, s.log).Run()
}

// handleControllers renders the pairable controller list as HTML
// fragments for the picker UI.
func (s *Server) handleControllers(c *gin.Context) {
	var b strings.Builder
	for _, id := range s.reg.ListPairingIDs() {
		fmt.Fprintf(&b,
			`<div class="controller-box" hx-get="/connect?id=%d" hx-target="this">%d</div>`,
			uint64(id), uint64(id))
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}

// handleConnect claims a pairing id for the requesting listener. The body
// is literal JSON true/false; absence of the id is an expected outcome,
// never an error status.
func (s *Server) handleConnect(c *gin.Context) {
	claimed := false
	if raw := c.Query("id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			claimed = s.reg.ClaimPairing(protocol.ControllerID(id))
		}
	}
	c.Data(http.StatusOK, "application/json", []byte(strconv.FormatBool(claimed)))
}

func (s *Server) handleGames(c *gin.Context) {
	html, err := s.catalog.PickerHTML()
	if err != nil {
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleSports(c *gin.Context) {
	game, ok := s.catalog.Find(c.Param("name"))
	if !ok {
		c.String(http.StatusNotFound, "Not Found")
		return
	}
	page, err := game.ScenePage()
	if err != nil {
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (s *Server) servePage(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.File(filepath.Join(s.cfg.FrontendDir, name))
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"uptime":      s.uptime().String(),
		"service":     "relayd",
		"version":     "0.1.0",
		"controllers": s.reg.ControllerCount(),
	})
}
