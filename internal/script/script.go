// Package script lets a game author express a condition, a disabled
// reason, or an element filter as embedded Lua instead of a Go closure
// (spec §11, "data-driven rules"). Each predicate runs in its own fresh
// lua.State seeded with a small, read-only view of the acting context —
// nothing durable lives in the interpreter between calls.
package script

import (
	"fmt"

	"github.com/Shopify/go-lua"

	"github.com/boardsmith/boardsmith/internal/action"
	"github.com/boardsmith/boardsmith/internal/element"
)

// Source is one author-supplied Lua chunk plus the human-readable name used
// in error messages.
type Source struct {
	Name string
	Body string
}

// Compile parses src once so a syntax error surfaces at registration time
// rather than the first time the predicate runs.
func Compile(src Source) (*Predicate, error) {
	state := lua.NewState()
	lua.OpenLibraries(state)
	if err := lua.LoadString(state, src.Body); err != nil {
		return nil, fmt.Errorf("script %q: compile: %w", src.Name, err)
	}
	state.Pop(1)
	return &Predicate{src: src}, nil
}

// Predicate is a compiled Lua chunk, re-run fresh against the context
// passed to Condition/Disabled/Filter; go-lua states are not safe to share
// across goroutines, so each call gets its own.
type Predicate struct {
	src Source
}

// run loads the chunk fresh, pushes ctx as the global "ctx" table, calls the
// chunk, and returns its single return value as a lua.State stack slot.
func (p *Predicate) run(state *lua.State, push func(*lua.State)) error {
	if err := lua.LoadString(state, p.src.Body); err != nil {
		return fmt.Errorf("script %q: load: %w", p.src.Name, err)
	}
	push(state)
	state.SetGlobal("ctx")
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return fmt.Errorf("script %q: run: %w", p.src.Name, err)
	}
	return nil
}

// Condition adapts p into an action.Condition predicate: the chunk must
// return a boolean. Any error (compile, runtime, or a non-boolean return)
// is treated as the condition not holding, never as a panic (spec §7
// "author errors").
func (p *Predicate) Condition(ctx *action.Context) bool {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerHelpers(state, ctx.Game)

	if err := p.run(state, func(s *lua.State) { pushContext(s, ctx, nil) }); err != nil {
		return false
	}
	defer state.Pop(1)
	result, ok := state.ToBoolean(-1), state.TypeOf(-1) == lua.TypeBoolean
	return ok && result
}

// Disabled adapts p into an action.DisabledFunc: the chunk must return nil
// (or nothing/false) for "enabled" or a non-empty string for the disable
// reason. A script error renders as disabled with that error as the reason,
// so a broken script fails closed instead of silently granting access.
func (p *Predicate) Disabled(item any, ctx *action.Context) string {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerHelpers(state, ctx.Game)

	if err := p.run(state, func(s *lua.State) { pushContext(s, ctx, item) }); err != nil {
		return err.Error()
	}
	defer state.Pop(1)
	switch state.TypeOf(-1) {
	case lua.TypeString:
		reason, _ := state.ToString(-1)
		return reason
	default:
		return ""
	}
}

// Filter adapts p into an action.FilterFunc for an element/elements
// selection: the chunk receives ctx.item bound to the candidate and must
// return a boolean. A script error excludes the candidate.
func (p *Predicate) Filter(e *element.GameElement, ctx *action.Context) bool {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerHelpers(state, ctx.Game)

	if err := p.run(state, func(s *lua.State) { pushContext(s, ctx, e) }); err != nil {
		return false
	}
	defer state.Pop(1)
	return state.TypeOf(-1) == lua.TypeBoolean && state.ToBoolean(-1)
}
