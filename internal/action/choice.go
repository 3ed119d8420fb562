package action

import "github.com/boardsmith/boardsmith/internal/element"

// AnnotatedChoice is the sole type returned by GetChoices. Disabled items
// remain in the list — they are shown but not selectable (spec §3).
type AnnotatedChoice struct {
	Value    any
	Disabled string // "" means enabled; non-empty carries the disable reason
}

// IsEnabled reports whether the choice can be selected.
func (c AnnotatedChoice) IsEnabled() bool { return c.Disabled == "" }

// GetChoices evaluates sel against player/args and returns the full
// annotated list, disabled items included (spec §4.2).
func GetChoices(sel Selection, player *element.Player, game *element.Game, args map[string]any) []AnnotatedChoice {
	ctx := &Context{Game: game, Player: player, Args: args}
	switch sel.Kind {
	case KindChoice:
		return choiceChoices(sel, ctx)
	case KindElement, KindElements:
		return elementChoices(sel, ctx)
	default:
		// number / text: spec §4.2 says these return an empty annotated
		// list; range/pattern rules are enforced in ValidateSelection.
		return nil
	}
}

func choiceChoices(sel Selection, ctx *Context) []AnnotatedChoice {
	if sel.Choices == nil {
		return nil
	}
	raw := sel.Choices(ctx)
	if sel.FilterBy != nil {
		filtered := raw[:0:0]
		for _, v := range raw {
			if sel.FilterBy(v, ctx) {
				filtered = append(filtered, v)
			}
		}
		raw = filtered
	}
	out := make([]AnnotatedChoice, 0, len(raw))
	for _, v := range raw {
		out = append(out, AnnotatedChoice{Value: v, Disabled: disabledReason(sel, v, ctx)})
	}
	return out
}

func elementChoices(sel Selection, ctx *Context) []AnnotatedChoice {
	var root *element.GameElement
	if sel.From != nil {
		root = sel.From(ctx)
	} else {
		root = &ctx.Game.GameElement
	}
	if root == nil {
		return nil
	}

	var finder element.Finder
	if sel.Filter != nil {
		finder = func(e *element.GameElement) bool { return sel.Filter(e, ctx) }
	}

	// An empty ElementClass matches any class; All treats "" as a wildcard.
	candidates := root.All(sel.ElementClass, finder)

	out := make([]AnnotatedChoice, 0, len(candidates))
	for _, e := range candidates {
		out = append(out, AnnotatedChoice{Value: e, Disabled: disabledReason(sel, e, ctx)})
	}
	return out
}

func disabledReason(sel Selection, item any, ctx *Context) string {
	if sel.Disabled == nil {
		return ""
	}
	return sel.Disabled(item, ctx)
}
