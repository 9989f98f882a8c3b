// Package config loads relayd's TOML configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Addr        string       `toml:"addr"`
	CorsOrigins []string     `toml:"cors_origins"`
	FrontendDir string       `toml:"frontend_dir"`
	WASMDir     string       `toml:"wasm_dir"`
	Heartbeat   Heartbeat    `toml:"heartbeat"`
	Session     Session      `toml:"session"`
	Games       []GameConfig `toml:"games"`
}

type Heartbeat struct {
	PeriodSeconds   int `toml:"period_seconds"`
	EvictAfterTicks int `toml:"evict_after_ticks"`
}

type Session struct {
	WriteTimeoutSeconds int `toml:"write_timeout_seconds"`
}

type GameConfig struct {
	WASMPath string `toml:"wasm_path"`
	Image    string `toml:"image"`
	Name     string `toml:"name"`
}

func Default() Config {
	return Config{
		Addr:        ":7878",
		FrontendDir: "frontend",
		WASMDir:     "wasm",
		Heartbeat: Heartbeat{
			PeriodSeconds:   30,
			EvictAfterTicks: 50,
		},
		Session: Session{
			WriteTimeoutSeconds: 10,
		},
	}
}

// Load reads path and fills unset fields with defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	cfg = withDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func withDefaults(cfg Config) Config {
	def := Default()
	if cfg.Addr == "" {
		cfg.Addr = def.Addr
	}
	if cfg.FrontendDir == "" {
		cfg.FrontendDir = def.FrontendDir
	}
	if cfg.WASMDir == "" {
		cfg.WASMDir = def.WASMDir
	}
	if cfg.Heartbeat.PeriodSeconds == 0 {
		cfg.Heartbeat.PeriodSeconds = def.Heartbeat.PeriodSeconds
	}
	if cfg.Heartbeat.EvictAfterTicks == 0 {
		cfg.Heartbeat.EvictAfterTicks = def.Heartbeat.EvictAfterTicks
	}
	if cfg.Session.WriteTimeoutSeconds == 0 {
		cfg.Session.WriteTimeoutSeconds = def.Session.WriteTimeoutSeconds
	}
	return cfg
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("config missing addr")
	}
	if cfg.Heartbeat.PeriodSeconds < 0 || cfg.Heartbeat.EvictAfterTicks < 0 {
		return fmt.Errorf("config heartbeat values must not be negative")
	}
	for i, g := range cfg.Games {
		if strings.TrimSpace(g.Name) == "" || strings.TrimSpace(g.WASMPath) == "" {
			return fmt.Errorf("games[%d] missing name or wasm_path", i)
		}
	}
	return nil
}

func (c Config) SweepPeriod() time.Duration {
	return time.Duration(c.Heartbeat.PeriodSeconds) * time.Second
}

func (c Config) WriteTimeout() time.Duration {
	return time.Duration(c.Session.WriteTimeoutSeconds) * time.Second
}
