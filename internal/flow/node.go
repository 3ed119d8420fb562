// Package flow interprets the flow tree that sequences a game's actionSteps
// across players and loops. The flow is interpreted, not compiled: it walks
// the same node tree on every advance, maintaining a cursor path from the
// root down to the currently paused leaf (spec §4.3).
package flow

import (
	"github.com/boardsmith/boardsmith/internal/element"
)

// Context is threaded through every flow predicate and filter.
type Context struct {
	Game *element.Game
}

// Kind discriminates the flow node variants.
type Kind string

const (
	KindLoop       Kind = "loop"
	KindEachPlayer Kind = "eachPlayer"
	KindActionStep Kind = "actionStep"
	KindParallel   Kind = "parallel"
)

// Node is one tagged flow node. Only the fields relevant to Kind are
// consulted.
type Node struct {
	Kind Kind
	Name string // optional, for diagnostics and replay readability

	// loop
	While        func(ctx *Context) bool
	MaxIterations int // 0 means "use DefaultMaxIterations"

	// eachPlayer
	PlayerFilter func(p *element.Player, ctx *Context) bool

	// actionStep
	Actions []string
	SkipIf  func(ctx *Context) bool

	// loop / eachPlayer: sequential children
	Do []Node

	// parallel: independent branches, each a sequential node list
	Branches [][]Node
}

// DefaultMaxIterations is the safety-valve iteration cap for a loop node
// that does not declare its own (spec §4.3: "a safety valve, not a feature").
const DefaultMaxIterations = 100000

// ActionStepChoice pairs a paused actionStep node with the player it is
// currently paused for.
type ActionStepChoice struct {
	Actions []string
	Player  *element.Player
}
