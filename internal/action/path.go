package action

import "github.com/boardsmith/boardsmith/internal/element"

// HasValidSelectionPath reports whether, starting from selections[index],
// there exists some assignment of enabled choices (and, for optional
// selections, skipping) that reaches the end of the list. This drives which
// actions are offered (spec §4.2).
func HasValidSelectionPath(selections []Selection, player *element.Player, game *element.Game, args map[string]any, index int) bool {
	if index >= len(selections) {
		return true
	}
	sel := selections[index]

	switch sel.Kind {
	case KindNumber, KindText:
		// Unenumerable domains: a numeric/text pick, required or optional,
		// is assumed satisfiable (the author's condition, not the pick
		// itself, gates availability); the remaining selections still need
		// a path.
		return HasValidSelectionPath(selections, player, game, args, index+1)
	case KindElements:
		choices := GetChoices(sel, player, game, args)
		enabled := enabledValues(choices)
		if sel.Optional || len(enabled) >= sel.CountMin {
			return HasValidSelectionPath(selections, player, game, args, index+1)
		}
		return false
	default: // choice, element
		choices := GetChoices(sel, player, game, args)
		enabled := enabledValues(choices)

		if sel.Optional {
			if HasValidSelectionPath(selections, player, game, args, index+1) {
				return true
			}
		} else if len(enabled) == 0 {
			return false
		}

		for _, v := range enabled {
			nextArgs := withArg(args, sel.Name, v)
			if HasValidSelectionPath(selections, player, game, nextArgs, index+1) {
				return true
			}
		}
		return false
	}
}

func enabledValues(choices []AnnotatedChoice) []any {
	out := make([]any, 0, len(choices))
	for _, c := range choices {
		if c.IsEnabled() {
			out = append(out, c.Value)
		}
	}
	return out
}

func withArg(args map[string]any, name string, value any) map[string]any {
	next := make(map[string]any, len(args)+1)
	for k, v := range args {
		next[k] = v
	}
	next[name] = value
	return next
}
