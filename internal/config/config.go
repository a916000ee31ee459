package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server  ServerConfig
	GRPC    GRPCConfig
	Worker  WorkerConfig
	Sources SourcesConfig
	DB      DatabaseConfig
	Logging LoggingConfig
	Alerts  AlertsConfig
}

type GRPCConfig struct {
	Port int `env:"GRPC_PORT" envDefault:"50051"`
}

type ServerConfig struct {
	Host         string   `env:"SERVER_HOST" envDefault:"localhost"`
	Port         int      `env:"SERVER_PORT" envDefault:"8080"`
	RateLimitRPS int      `env:"RATE_LIMIT_RPS" envDefault:"20"`
	AllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"*"`
}

type WorkerConfig struct {
	Count      int `env:"WORKER_COUNT" envDefault:"2"`
	BufferSize int `env:"WORKER_BUFFER_SIZE" envDefault:"20"`
}

// SourcesConfig controls the optional external feeds that raise alerts.
// Both are off unless enabled.
type SourcesConfig struct {
	USGSEnabled       bool          `env:"USGS_ENABLED" envDefault:"false"`
	USGSURL           string        `env:"USGS_URL" envDefault:"https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/significant_hour.geojson"`
	USGSPollInterval  time.Duration `env:"USGS_POLL_INTERVAL" envDefault:"5m"`
	USGSMinMagnitude  float64       `env:"USGS_MIN_MAGNITUDE" envDefault:"4.5"`
	GDACSEnabled      bool          `env:"GDACS_ENABLED" envDefault:"false"`
	GDACSURL          string        `env:"GDACS_URL" envDefault:"https://www.gdacs.org/xml/rss.xml"`
	GDACSPollInterval time.Duration `env:"GDACS_POLL_INTERVAL" envDefault:"10m"`
}

type DatabaseConfig struct {
	// ":memory:" keeps state for the process lifetime only
	Path string `env:"DB_PATH" envDefault:":memory:"`
}

type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	File  string `env:"LOG_FILE"`
}

type AlertsConfig struct {
	RecentLimit    int `env:"RECENT_ALERT_LIMIT" envDefault:"5"`
	DashboardLimit int `env:"DASHBOARD_ALERT_LIMIT" envDefault:"3"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.GRPC.Port < 1 || c.GRPC.Port > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPC.Port)
	}
	if c.Server.RateLimitRPS < 1 {
		return fmt.Errorf("rate limit must be at least 1 req/s")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}
	if c.Worker.BufferSize < 0 {
		return fmt.Errorf("worker buffer size must not be negative")
	}

	if c.Sources.USGSPollInterval < time.Minute {
		return fmt.Errorf("USGS poll interval must be at least 1 minute")
	}
	if c.Sources.GDACSPollInterval < time.Minute {
		return fmt.Errorf("GDACS poll interval must be at least 1 minute")
	}

	if c.Alerts.RecentLimit < 0 || c.Alerts.DashboardLimit < 0 {
		return fmt.Errorf("alert limits must not be negative")
	}

	return nil
}
