package main

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Config holds search tuning and runtime parameters. Every field can be
// overridden from the environment with the VOYAGE_ prefix.
type Config struct {
	// MaxPasses caps the swap-refinement passes per run.
	MaxPasses int `env:"MAX_PASSES" validate:"gt=0"`
	// Workers bounds concurrent runs in a skill-pair sweep; 0 means GOMAXPROCS.
	Workers int `env:"WORKERS" validate:"gte=0"`
	// DefaultStart is the starting antimatter used when a request omits it.
	DefaultStart float64 `env:"DEFAULT_START" validate:"gt=0"`
	// OracleMaxHours caps the default estimator's answer.
	OracleMaxHours float64 `env:"ORACLE_MAX_HOURS" validate:"gt=0"`
	// ListenAddr is the address used by -serve.
	ListenAddr string `env:"LISTEN_ADDR" validate:"required"`
}

// DefaultConfig returns the default parameters.
func DefaultConfig() Config {
	return Config{
		MaxPasses:      500,
		Workers:        0,
		DefaultStart:   2500,
		OracleMaxHours: 200,
		ListenAddr:     ":8080",
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadConfig applies VOYAGE_* environment overrides on top of DefaultConfig.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "VOYAGE_"}); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// first error only, the rest are usually consequences
			return cfg, aggErr.Errors[0]
		}
		return cfg, err
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the console logger used by the CLI; verbose enables the
// per-pass and per-swap trace.
func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zc.DisableStacktrace = true
	return zc.Build()
}
