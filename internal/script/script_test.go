package script_test

import (
	"testing"

	"github.com/boardsmith/boardsmith/internal/action"
	"github.com/boardsmith/boardsmith/internal/element"
	"github.com/boardsmith/boardsmith/internal/script"
)

func newTestGame(t *testing.T) *element.Game {
	t.Helper()
	g, err := element.New(2, nil, element.Settings{})
	if err != nil {
		t.Fatalf("element.New: %v", err)
	}
	return g
}

func TestPredicate_ConditionTrueFalse(t *testing.T) {
	g := newTestGame(t)

	holds, err := script.Compile(script.Source{Name: "seat-one-only", Body: "return ctx.seat == 1"})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ctx := &action.Context{Game: g, Player: g.PlayerBySeat(1), Args: map[string]any{}}
	if !holds.Condition(ctx) {
		t.Fatal("expected condition to hold for seat 1")
	}

	ctx2 := &action.Context{Game: g, Player: g.PlayerBySeat(2), Args: map[string]any{}}
	if holds.Condition(ctx2) {
		t.Fatal("expected condition to fail for seat 2")
	}
}

func TestPredicate_ConditionReadsArgs(t *testing.T) {
	g := newTestGame(t)
	pred, err := script.Compile(script.Source{Name: "wants-gold", Body: `return ctx.args.amount ~= nil and ctx.args.amount > 10`})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ctx := &action.Context{Game: g, Player: g.PlayerBySeat(1), Args: map[string]any{"amount": 5}}
	if pred.Condition(ctx) {
		t.Fatal("expected condition to fail for amount=5")
	}

	ctx.Args = map[string]any{"amount": 15}
	if !pred.Condition(ctx) {
		t.Fatal("expected condition to hold for amount=15")
	}
}

func TestPredicate_DisabledReturnsReason(t *testing.T) {
	g := newTestGame(t)
	pred, err := script.Compile(script.Source{
		Name: "only-even",
		Body: `if ctx.item % 2 == 0 then return nil end return "SELECTION_DISABLED: must be even"`,
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ctx := &action.Context{Game: g, Player: g.PlayerBySeat(1), Args: map[string]any{}}
	if reason := pred.Disabled(2, ctx); reason != "" {
		t.Fatalf("expected 2 to be enabled, got reason %q", reason)
	}
	if reason := pred.Disabled(3, ctx); reason == "" {
		t.Fatal("expected 3 to be disabled")
	}
}

func TestPredicate_FilterInspectsElementAttr(t *testing.T) {
	g := newTestGame(t)
	space := g.Create("Space", "board", nil)
	a := space.Create("Piece", "a", map[string]any{"color": "red"})
	b := space.Create("Piece", "b", map[string]any{"color": "blue"})

	pred, err := script.Compile(script.Source{
		Name: "red-only",
		Body: `return Game.attr(ctx.item, "color") == "red"`,
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	ctx := &action.Context{Game: g, Player: g.PlayerBySeat(1), Args: map[string]any{}}
	if !pred.Filter(a, ctx) {
		t.Fatal("expected red piece to pass the filter")
	}
	if pred.Filter(b, ctx) {
		t.Fatal("expected blue piece to fail the filter")
	}
}

func TestCompile_SyntaxErrorSurfacesAtCompile(t *testing.T) {
	if _, err := script.Compile(script.Source{Name: "broken", Body: "return (("}); err == nil {
		t.Fatal("expected a compile error for invalid Lua")
	}
}

func TestPredicate_RuntimeErrorFailsClosed(t *testing.T) {
	g := newTestGame(t)
	pred, err := script.Compile(script.Source{Name: "boom", Body: `return ctx.nonexistent.field`})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	ctx := &action.Context{Game: g, Player: g.PlayerBySeat(1), Args: map[string]any{}}
	if pred.Condition(ctx) {
		t.Fatal("expected a runtime error to fail the condition closed")
	}
}
