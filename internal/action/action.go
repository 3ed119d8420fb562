package action

import (
	"fmt"

	"github.com/boardsmith/boardsmith/internal/boarderr"
	"github.com/boardsmith/boardsmith/internal/element"
)

// FollowUp schedules a different (or the same) player to be prompted next,
// ahead of the flow's natural cursor position (spec §9 "Follow-up actions").
type FollowUp struct {
	Player     int
	ActionName string
	Args       map[string]any
}

// ExecuteResult is what an author's Execute function returns on success.
type ExecuteResult struct {
	Message  string
	FollowUp *FollowUp
}

// ExecuteFunc performs an action's side effects. It may mutate the tree and
// emit animation events; if it returns an error, the executor reports
// EXECUTE_THREW without committing a command-log entry.
type ExecuteFunc func(args map[string]any, ctx *Context) (ExecuteResult, error)

// Action is one named, player-invocable action (spec §3).
type Action struct {
	Name       string
	Prompt     string
	Selections []Selection
	// Condition maps a human-readable key to a predicate; all must hold for
	// the action to be offered (spec §3, §4.2).
	Condition map[string]func(ctx *Context) bool
	Execute   ExecuteFunc
}

// Result is the outcome of a successful PerformAction.
type Result struct {
	Message  string
	FollowUp *FollowUp
}

// Executor resolves picks and runs actions against one game. It holds no
// state of its own beyond what's passed in — all durable state lives on the
// element tree and the flow/session layers.
type Executor struct{}

// NewExecutor returns a ready-to-use Executor.
func NewExecutor() *Executor { return &Executor{} }

// AvailableActions filters candidateNames (normally the flow's current
// actionStep.Actions) down to those whose Condition holds and whose
// selection path is satisfiable (spec §4.2 getAvailableActions a/b/c, minus
// the flow-membership check (a), which the caller already applied by
// choosing candidateNames).
func (x *Executor) AvailableActions(actions []Action, candidateNames []string, player *element.Player, game *element.Game) []string {
	byName := make(map[string]Action, len(actions))
	for _, a := range actions {
		byName[a.Name] = a
	}

	var out []string
	for _, name := range candidateNames {
		def, ok := byName[name]
		if !ok {
			continue
		}
		ctx := &Context{Game: game, Player: player, Args: map[string]any{}}
		if !conditionsHold(def.Condition, ctx) {
			continue
		}
		if HasValidSelectionPath(def.Selections, player, game, map[string]any{}, 0) {
			out = append(out, name)
		}
	}
	return out
}

func conditionsHold(conditions map[string]func(ctx *Context) bool, ctx *Context) bool {
	for _, pred := range conditions {
		if pred == nil || !pred(ctx) {
			return false
		}
	}
	return true
}

// failingCondition returns the key of the first condition predicate that
// does not hold, for CONDITION_FAILED reporting.
func failingCondition(conditions map[string]func(ctx *Context) bool, ctx *Context) string {
	for key, pred := range conditions {
		if pred == nil || !pred(ctx) {
			return key
		}
	}
	return ""
}

// PerformAction resolves def's selections against args, checks conditions,
// and invokes Execute. The tree is snapshotted immediately before Execute
// and restored if it returns an error (including a recovered panic), so a
// def.Execute that mutates the tree partway through and then fails leaves
// no trace (spec §9 "snapshot-and-restore the tree around execute"; I2:
// "fully applied and logged, or have no observable effect other than an
// error return"). It does not know about NOT_YOUR_TURN/ACTION_UNAVAILABLE
// (the flow's allowance check) or the command log and flow advance that
// follow a successful execute — those are the session layer's job (spec §2
// data flow; §5 "performAction is treated as atomic").
func (x *Executor) PerformAction(def Action, player *element.Player, game *element.Game, args map[string]any, state *ActionStateSnapshot) (result *Result, actionErr *boarderr.Error) {
	resolved := make(map[string]any, len(args))
	for k, v := range args {
		resolved[k] = v
	}

	for _, sel := range def.Selections {
		value, present := resolved[sel.Name]
		if !present {
			if sel.Optional {
				continue
			}
			return nil, boarderr.WithMetadata(boarderr.MissingSelection,
				fmt.Sprintf("missing required selection %q", sel.Name),
				map[string]string{"selection": sel.Name})
		}
		v := ValidateSelection(sel, value, player, game, resolved)
		if !v.Valid {
			code := boarderr.InvalidSelection
			msg := sel.Name + ": "
			if len(v.Errors) > 0 {
				msg += v.Errors[0]
				if isDisabledError(v.Errors[0]) {
					code = boarderr.SelectionDisabled
				}
			}
			return nil, boarderr.WithMetadata(code, msg, map[string]string{"selection": sel.Name})
		}
	}

	ctx := &Context{Game: game, Player: player, Args: resolved, State: state}
	if failed := failingCondition(def.Condition, ctx); failed != "" {
		return nil, boarderr.WithMetadata(boarderr.ConditionFailed,
			fmt.Sprintf("condition failed: %s", failed),
			map[string]string{"condition": failed})
	}

	snapshot := game.SnapshotState()
	execResult, err := x.safeExecute(def, resolved, ctx)
	if err != nil {
		game.RestoreState(snapshot)
		return nil, boarderr.Wrap(boarderr.ExecuteThrew, err.Error(), err)
	}

	return &Result{Message: execResult.Message, FollowUp: execResult.FollowUp}, nil
}

// safeExecute recovers a panic from an author's Execute function so one
// broken game definition cannot take down the host process (spec §7
// "Author errors").
func (x *Executor) safeExecute(def Action, args map[string]any, ctx *Context) (res ExecuteResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("action %q panicked: %v", def.Name, r)
		}
	}()
	if def.Execute == nil {
		return ExecuteResult{}, nil
	}
	return def.Execute(args, ctx)
}

func isDisabledError(msg string) bool {
	return len(msg) >= len("SELECTION_DISABLED") && msg[:len("SELECTION_DISABLED")] == "SELECTION_DISABLED"
}
