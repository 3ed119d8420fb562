package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/boardsmith/boardsmith/internal/rng"
)

// ParseEnv loads configuration from environment variables. Beyond the
// primitive types env.Parse understands natively, it knows how to decode a
// rng.RollMode from "live"/"rehearsal" so a host's config struct can
// declare a field like:
//
//	DefaultRollMode rng.RollMode `env:"BOARDSMITH_DEFAULT_ROLL_MODE" envDefault:"live"`
func ParseEnv(target any) error {
	opts := env.Options{
		FuncMap: map[reflect.Type]env.ParserFunc{
			reflect.TypeOf(rng.RollMode(0)): parseRollMode,
		},
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func parseRollMode(value string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "live", "":
		return rng.RollModeLive, nil
	case "rehearsal":
		return rng.RollModeRehearsal, nil
	default:
		return nil, fmt.Errorf("unknown roll mode %q (want %q or %q)", value, "live", "rehearsal")
	}
}
