package requestctx

import (
	"context"
	"testing"
)

func TestPlayerIDFromContextRoundTrip(t *testing.T) {
	ctx := WithPlayerID(context.Background(), "player-42")
	got := PlayerIDFromContext(ctx)
	if got != "player-42" {
		t.Fatalf("PlayerIDFromContext = %q, want %q", got, "player-42")
	}
}

func TestPlayerIDFromContextEmpty(t *testing.T) {
	got := PlayerIDFromContext(context.Background())
	if got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestPlayerIDFromContextNil(t *testing.T) {
	got := PlayerIDFromContext(nil)
	if got != "" {
		t.Fatalf("expected empty string for nil context, got %q", got)
	}
}

func TestWithPlayerIDNilContext(t *testing.T) {
	ctx := WithPlayerID(nil, "player-99")
	if ctx == nil {
		t.Fatalf("expected non-nil context")
	}
	if got := PlayerIDFromContext(ctx); got != "player-99" {
		t.Fatalf("PlayerIDFromContext = %q, want %q", got, "player-99")
	}
}
