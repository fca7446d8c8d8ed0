// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures everything the server needs at startup. Defaults are tuned
// for the sequential sweep policy: the lookup delay is the only back-pressure
// toward the family-relations registry, and the batch cap bounds wall-clock
// time under strictly sequential batch processing.
type Config struct {
	Addr     string `env:"FILTRO_ADDR" envDefault:":8080"`
	LogLevel string `env:"FILTRO_LOG_LEVEL" envDefault:"info"`

	// RequestTimeout bounds the whole pipeline of a single request.
	RequestTimeout time.Duration `env:"FILTRO_REQUEST_TIMEOUT" envDefault:"120s"`

	// LookupDelay is the fixed pause between consecutive relationship lookups.
	LookupDelay time.Duration `env:"FILTRO_LOOKUP_DELAY" envDefault:"600ms"`

	// MaxBatchSize caps organizations per batch request.
	MaxBatchSize int `env:"FILTRO_MAX_BATCH" envDefault:"10"`

	// SourceTimeout bounds each outbound registry call.
	SourceTimeout time.Duration `env:"FILTRO_SOURCE_TIMEOUT" envDefault:"30s"`

	SunatBaseURL     string `env:"FILTRO_SUNAT_URL" envDefault:"http://localhost:9001"`
	OsceBaseURL      string `env:"FILTRO_OSCE_URL" envDefault:"http://localhost:9002"`
	RelativesBaseURL string `env:"FILTRO_RELATIVES_URL" envDefault:"http://localhost:9003"`
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxBatchSize < 1 {
		return Config{}, fmt.Errorf("FILTRO_MAX_BATCH must be at least 1, got %d", cfg.MaxBatchSize)
	}
	if cfg.LookupDelay < 0 {
		return Config{}, fmt.Errorf("FILTRO_LOOKUP_DELAY must not be negative")
	}
	return cfg, nil
}
