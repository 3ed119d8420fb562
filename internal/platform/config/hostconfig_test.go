package config

import (
	"testing"
	"time"

	"github.com/boardsmith/boardsmith/internal/rng"
)

func TestLoadEngineConfigDefaults(t *testing.T) {
	cfg, err := LoadEngineConfig()
	if err != nil {
		t.Fatalf("LoadEngineConfig: %v", err)
	}
	if !cfg.OTelEnabled {
		t.Fatal("expected tracing enabled by default")
	}
	if cfg.DisconnectGrace != 5*time.Minute {
		t.Fatalf("expected a 5 minute default grace, got %v", cfg.DisconnectGrace)
	}
	if cfg.DefaultRollMode != rng.RollModeLive {
		t.Fatalf("expected live as the default roll mode, got %v", cfg.DefaultRollMode)
	}
}

func TestLoadEngineConfigRollModeOverride(t *testing.T) {
	t.Setenv("BOARDSMITH_DEFAULT_ROLL_MODE", "rehearsal")

	cfg, err := LoadEngineConfig()
	if err != nil {
		t.Fatalf("LoadEngineConfig: %v", err)
	}
	if cfg.DefaultRollMode != rng.RollModeRehearsal {
		t.Fatalf("expected rehearsal roll mode override, got %v", cfg.DefaultRollMode)
	}
}

func TestLoadEngineConfigInvalidRollMode(t *testing.T) {
	t.Setenv("BOARDSMITH_DEFAULT_ROLL_MODE", "nonsense")

	if _, err := LoadEngineConfig(); err == nil {
		t.Fatal("expected an error for an unrecognized roll mode")
	}
}

func TestLoadEngineConfigOverrides(t *testing.T) {
	t.Setenv("BOARDSMITH_OTEL_ENABLED", "false")
	t.Setenv("BOARDSMITH_DISCONNECT_GRACE", "30s")

	cfg, err := LoadEngineConfig()
	if err != nil {
		t.Fatalf("LoadEngineConfig: %v", err)
	}
	if cfg.OTelEnabled {
		t.Fatal("expected tracing disabled by override")
	}
	if cfg.DisconnectGrace != 30*time.Second {
		t.Fatalf("expected a 30s grace, got %v", cfg.DisconnectGrace)
	}
}
