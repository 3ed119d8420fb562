package flow

import "github.com/boardsmith/boardsmith/internal/element"

type frameKind int

const (
	frameSeq frameKind = iota
	frameLoop
	frameEachPlayer
	frameParallel
)

// frame is one live entry on the cursor stack: either the implicit root
// sequence, or the runtime state of an in-progress loop/eachPlayer/parallel
// node. Compound nodes push a frame onto the stack and pop it once their
// children have all run.
type frame struct {
	kind frameKind
	seq  []Node
	idx  int

	// loop
	whileFn       func(ctx *Context) bool
	maxIterations int
	iterations    int

	// eachPlayer
	players   []*element.Player
	playerIdx int

	// parallel: branches are scheduled sequentially by index. The spec
	// leaves inter-branch ordering unspecified as long as it's deterministic
	// given the seed, so running branch 0 to completion before branch 1
	// satisfies the contract without a true interleaved scheduler.
	branches  [][]Node
	branchIdx int
}

// Runner interprets a flow tree, exposing the currently paused actionStep
// (if any) and advancing the cursor once the session reports a successful
// performAction (spec §4.3).
type Runner struct {
	isComplete func(ctx *Context) bool
	stack      []*frame
	paused     *frame // the frame whose idx names the last-returned actionStep
	finished   bool
}

// NewRunner builds a Runner positioned at the start of root. isComplete, if
// non-nil, is checked on every Pump and short-circuits the flow to finished
// regardless of cursor position.
func NewRunner(root []Node, isComplete func(ctx *Context) bool) *Runner {
	return &Runner{
		isComplete: isComplete,
		stack:      []*frame{{kind: frameSeq, seq: root}},
	}
}

// Finished reports whether the cursor has exited the root or isComplete has
// held true.
func (r *Runner) Finished() bool { return r.finished }

// Pump advances past any structurally-skipped nodes (skipIf, empty
// eachPlayer filters, loops whose guard never holds) and returns the next
// paused actionStep, or nil if the flow has finished. Calling Pump again
// with an unchanged ctx before Advance is idempotent.
func (r *Runner) Pump(ctx *Context) *ActionStepChoice {
	if r.finished {
		return nil
	}
	if r.isComplete != nil && r.isComplete(ctx) {
		r.finished = true
		return nil
	}

	for {
		if len(r.stack) == 0 {
			r.finished = true
			return nil
		}
		top := r.stack[len(r.stack)-1]

		if top.idx >= len(top.seq) {
			if advanced := r.closeFrame(top, ctx); advanced {
				continue
			}
			if r.finished {
				return nil
			}
			continue
		}

		child := top.seq[top.idx]
		switch child.Kind {
		case KindActionStep:
			if child.SkipIf != nil && child.SkipIf(ctx) {
				top.idx++
				continue
			}
			r.paused = top
			return &ActionStepChoice{Actions: child.Actions, Player: r.currentPlayer(ctx)}

		case KindLoop:
			effectiveMax := child.MaxIterations
			if effectiveMax <= 0 {
				effectiveMax = DefaultMaxIterations
			}
			if !loopWouldEnter(child.While, ctx, 0, effectiveMax) {
				top.idx++
				continue
			}
			r.stack = append(r.stack, &frame{
				kind:          frameLoop,
				seq:           child.Do,
				whileFn:       child.While,
				maxIterations: effectiveMax,
				iterations:    1,
			})

		case KindEachPlayer:
			players := filterPlayers(child, ctx)
			if len(players) == 0 {
				top.idx++
				continue
			}
			r.stack = append(r.stack, &frame{
				kind:    frameEachPlayer,
				seq:     child.Do,
				players: players,
			})

		case KindParallel:
			if len(child.Branches) == 0 {
				top.idx++
				continue
			}
			r.stack = append(r.stack, &frame{
				kind:     frameParallel,
				seq:      child.Branches[0],
				branches: child.Branches,
			})

		default:
			top.idx++
		}
	}
}

// Advance marks the last-returned actionStep complete and pumps to the next
// pause point (spec §4.3: "the executor notifies the flow engine, which
// advances the cursor").
func (r *Runner) Advance(ctx *Context) *ActionStepChoice {
	if r.paused != nil {
		r.paused.idx++
		r.paused = nil
	}
	return r.Pump(ctx)
}

// closeFrame handles a frame whose seq is exhausted: loop/eachPlayer frames
// either restart for another iteration/player or pop; plain and parallel
// frames pop (advancing to the next branch first, for parallel). Reports
// whether the stack changed in a way that warrants another loop iteration
// in Pump.
func (r *Runner) closeFrame(top *frame, ctx *Context) bool {
	switch top.kind {
	case frameLoop:
		if loopWouldEnter(top.whileFn, ctx, top.iterations, top.maxIterations) {
			top.iterations++
			top.idx = 0
			return true
		}
		return r.popFrame()

	case frameEachPlayer:
		top.playerIdx++
		if top.playerIdx < len(top.players) {
			top.idx = 0
			return true
		}
		return r.popFrame()

	case frameParallel:
		top.branchIdx++
		if top.branchIdx < len(top.branches) {
			top.seq = top.branches[top.branchIdx]
			top.idx = 0
			return true
		}
		return r.popFrame()

	default: // frameSeq: only ever the root
		if len(r.stack) == 1 {
			r.stack = nil
			r.finished = true
			return false
		}
		return r.popFrame()
	}
}

// popFrame removes the top frame and advances the index of its parent, whose
// child (the now-complete loop/eachPlayer/parallel node) has finished.
func (r *Runner) popFrame() bool {
	r.stack = r.stack[:len(r.stack)-1]
	if len(r.stack) == 0 {
		r.finished = true
		return false
	}
	r.stack[len(r.stack)-1].idx++
	return true
}

// currentPlayer returns the player bound by the nearest enclosing
// eachPlayer frame, or the game's current player if the paused actionStep
// sits outside any eachPlayer node.
func (r *Runner) currentPlayer(ctx *Context) *element.Player {
	for i := len(r.stack) - 1; i >= 0; i-- {
		if f := r.stack[i]; f.kind == frameEachPlayer {
			return f.players[f.playerIdx]
		}
	}
	if ctx.Game != nil {
		return ctx.Game.CurrentPlayer()
	}
	return nil
}

// loopWouldEnter reports whether the iteration numbered completed+1 should
// run: completed must be under max, and while (if set) must hold.
func loopWouldEnter(while func(ctx *Context) bool, ctx *Context, completed, max int) bool {
	if completed+1 > max {
		return false
	}
	if while != nil && !while(ctx) {
		return false
	}
	return true
}

// filterPlayers computes the player list an eachPlayer node iterates,
// captured once at entry (spec §4.3, §9 open question (a)).
func filterPlayers(node Node, ctx *Context) []*element.Player {
	if ctx.Game == nil {
		return nil
	}
	if node.PlayerFilter == nil {
		out := make([]*element.Player, len(ctx.Game.Players))
		copy(out, ctx.Game.Players)
		return out
	}
	var out []*element.Player
	for _, p := range ctx.Game.Players {
		if node.PlayerFilter(p, ctx) {
			out = append(out, p)
		}
	}
	return out
}
