// Package action implements the action executor: resolving a named
// action's parameter picks, validating them against annotated,
// disabled-aware choices, and invoking the author's execute function
// (spec §4.2).
package action

import "github.com/boardsmith/boardsmith/internal/element"

// Kind discriminates the tagged Selection variants (spec §3).
type Kind string

const (
	KindChoice   Kind = "choice"
	KindElement  Kind = "element"
	KindElements Kind = "elements"
	KindNumber   Kind = "number"
	KindText     Kind = "text"
)

// DisabledFunc reports why an item should render disabled; an empty string
// means the item is enabled. Unlike TypeScript's `string | false`, Go has no
// natural sum type for this, so the empty string carries "not disabled" —
// authors should never use "" as a real disabled reason (spec glossary:
// disabled "carries a reason string, never a bare boolean").
type DisabledFunc func(item any, ctx *Context) string

// FilterFunc scopes which elements are even visible for an element/elements
// selection, distinct from DisabledFunc which controls selectability (spec
// glossary: "filter vs disabled").
type FilterFunc func(e *element.GameElement, ctx *Context) bool

// ChoicesFunc produces the raw candidate values for a choice selection.
type ChoicesFunc func(ctx *Context) []any

// Selection is one named pick attached to an Action. Only the fields
// relevant to Kind are consulted; the rest are ignored.
type Selection struct {
	Name     string
	Prompt   string
	Optional bool
	SkipText string
	Kind     Kind

	Disabled DisabledFunc

	// choice
	Choices  ChoicesFunc
	FilterBy func(item any, ctx *Context) bool

	// element / elements
	From         func(ctx *Context) *element.GameElement
	ElementClass string
	Filter       FilterFunc
	CountMin     int // elements only; 0 means "at least 0"
	CountMax     int // elements only; 0 means "no explicit max"

	// number
	NumberMin *float64
	NumberMax *float64

	// text
	TextMinLen *int
	TextMaxLen *int
}

// StaticChoices wraps a fixed list of values as a ChoicesFunc, the common
// case where `choices` is a static array rather than a function of ctx.
func StaticChoices(values ...any) ChoicesFunc {
	return func(*Context) []any { return values }
}

// Context is threaded through every Selection callback and Action.Execute.
// It carries the acting player, the in-progress argument set, and the
// scratch state for repeating picks (spec §4.2, §9).
type Context struct {
	Game   *element.Game
	Player *element.Player
	Args   map[string]any
	State  *ActionStateSnapshot
}

// ActionStateSnapshot is scoped to one in-flight action invocation and
// discarded when the action completes. RepeatingState holds per-selection
// scratch for a selection that may be re-picked until the player opts out;
// FetchedSelections tracks which selections a UI-side watcher has already
// refreshed this invocation, replacing a module-global coordination flag
// (spec §4.2, §9).
type ActionStateSnapshot struct {
	RepeatingState    map[string]any
	FetchedSelections map[string]struct{}
}

// NewActionStateSnapshot returns an empty, ready-to-use snapshot. Each
// repetition of a repeating pick starts from a fresh snapshot (spec §9 open
// question (c)).
func NewActionStateSnapshot() *ActionStateSnapshot {
	return &ActionStateSnapshot{
		RepeatingState:    map[string]any{},
		FetchedSelections: map[string]struct{}{},
	}
}

// MarkFetched records that selectionName's choices have been refreshed for
// this invocation.
func (s *ActionStateSnapshot) MarkFetched(selectionName string) {
	if s.FetchedSelections == nil {
		s.FetchedSelections = map[string]struct{}{}
	}
	s.FetchedSelections[selectionName] = struct{}{}
}

// WasFetched reports whether selectionName was already refreshed this
// invocation.
func (s *ActionStateSnapshot) WasFetched(selectionName string) bool {
	_, ok := s.FetchedSelections[selectionName]
	return ok
}
