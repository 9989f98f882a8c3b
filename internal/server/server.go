// Package server exposes the HTTP surface: the websocket upgrade that
// feeds connection sessions, the pairing endpoints, the game catalog
// pages, and static frontend/WASM assets.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/spjorts/relay/internal/config"
	"github.com/spjorts/relay/internal/games"
	"github.com/spjorts/relay/internal/observability"
	"github.com/spjorts/relay/internal/registry"
)

type Server struct {
	cfg       config.Config
	reg       *registry.Registry
	catalog   *games.Catalog
	log       zerolog.Logger
	upgrader  websocket.Upgrader
	startedAt time.Time
}

func New(cfg config.Config, reg *registry.Registry, catalog *games.Catalog, log zerolog.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		reg:       reg,
		catalog:   catalog,
		log:       log,
		startedAt: time.Now(),
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: s.originAllowed,
	}
	return s
}

// originAllowed gates browser upgrades. Controller devices send no Origin
// header and always pass; browsers are held to the configured CORS list
// when one exists.
func (s *Server) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.cfg.CorsOrigins) == 0 {
		return true
	}
	for _, allowed := range s.cfg.CorsOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// Router assembles the gin engine with logging, metrics and CORS
// middleware in front of the routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(s.log))
	r.Use(observability.RequestMetricsMiddleware())
	if len(s.cfg.CorsOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins: s.cfg.CorsOrigins,
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}
	s.registerRoutes(r)
	return r
}

func (s *Server) uptime() time.Duration {
	return time.Since(s.startedAt).Round(time.Second)
}
