package config

import (
	"time"

	"github.com/boardsmith/boardsmith/internal/rng"
)

// EngineConfig is the environment-sourced configuration a host process
// reads before constructing sessions: whether to register tracing, the
// default disconnect grace window for lobbies that don't override it, and
// the roll mode a caller gets when it makes no explicit rng.Request.
type EngineConfig struct {
	OTelEnabled     bool          `env:"BOARDSMITH_OTEL_ENABLED" envDefault:"true"`
	DisconnectGrace time.Duration `env:"BOARDSMITH_DISCONNECT_GRACE" envDefault:"5m"`
	DefaultRollMode rng.RollMode  `env:"BOARDSMITH_DEFAULT_ROLL_MODE" envDefault:"live"`
}

// LoadEngineConfig parses EngineConfig from the environment.
func LoadEngineConfig() (EngineConfig, error) {
	var cfg EngineConfig
	if err := ParseEnv(&cfg); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}
