package boarderr_test

import (
	"errors"
	"testing"

	"google.golang.org/grpc/codes"

	"github.com/boardsmith/boardsmith/internal/boarderr"
)

func TestNew(t *testing.T) {
	err := boarderr.New(boarderr.MissingSelection, "gem is required")

	if err.Code != boarderr.MissingSelection {
		t.Errorf("Code = %v, want %v", err.Code, boarderr.MissingSelection)
	}
	if err.Error() != "gem is required" {
		t.Errorf("Error() = %v, want %v", err.Error(), "gem is required")
	}
}

func TestWithMetadata(t *testing.T) {
	metadata := map[string]string{"player": "Alice"}
	err := boarderr.WithMetadata(boarderr.ColorAlreadyTaken, "color taken by Alice", metadata)

	if len(err.Metadata) != 1 || err.Metadata["player"] != "Alice" {
		t.Errorf("Metadata = %v, want player=Alice", err.Metadata)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := boarderr.Wrap(boarderr.ExecuteThrew, "action panicked", cause)

	if !errors.Is(err, err) {
		t.Error("Is should match itself")
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	a := boarderr.New(boarderr.NotYourTurn, "nope")
	b := boarderr.New(boarderr.NotYourTurn, "different message")
	c := boarderr.New(boarderr.ActionUnavailable, "nope")

	if !a.Is(b) {
		t.Error("expected same-code errors to match")
	}
	if a.Is(c) {
		t.Error("expected different-code errors not to match")
	}
}

func TestGRPCCodeMapping(t *testing.T) {
	cases := map[boarderr.Code]codes.Code{
		boarderr.MissingSelection:  codes.InvalidArgument,
		boarderr.NotYourTurn:       codes.FailedPrecondition,
		boarderr.GameNotFound:      codes.NotFound,
		boarderr.ExecuteThrew:      codes.Internal,
		boarderr.InternalError:     codes.Internal,
		boarderr.ColorAlreadyTaken: codes.InvalidArgument,
	}
	for code, want := range cases {
		if got := code.GRPCCode(); got != want {
			t.Errorf("%s.GRPCCode() = %v, want %v", code, got, want)
		}
	}
}

func TestStatusAttachesErrorInfo(t *testing.T) {
	err := boarderr.WithMetadata(boarderr.ColorAlreadyTaken, "color taken", map[string]string{"player": "Alice"})
	statusErr := err.Status("en-US", "That color is already taken by Alice.")
	if statusErr == nil {
		t.Fatal("expected a non-nil status error")
	}
}
