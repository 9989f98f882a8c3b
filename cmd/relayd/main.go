package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spjorts/relay/internal/config"
	"github.com/spjorts/relay/internal/games"
	"github.com/spjorts/relay/internal/observability"
	"github.com/spjorts/relay/internal/registry"
	"github.com/spjorts/relay/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to relayd TOML config")
	flag.Parse()

	logger := observability.InitLogger("relayd")

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("config load failed")
		}
		cfg = loaded
	}

	catalog := games.NewCatalog(gamesFromConfig(cfg))
	reg := registry.New(cfg.Heartbeat.EvictAfterTicks, logger)
	srv := server.New(cfg, reg, catalog, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := registry.NewSweeper(reg, cfg.SweepPeriod(), logger)
	go sweeper.Run(ctx)

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", cfg.Addr).Msg("listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown incomplete")
		os.Exit(1)
	}
}

func gamesFromConfig(cfg config.Config) []games.Game {
	out := make([]games.Game, 0, len(cfg.Games))
	for _, g := range cfg.Games {
		out = append(out, games.Game{WASMPath: g.WASMPath, Image: g.Image, Name: g.Name})
	}
	return out
}
