// Package pick resolves a single selection into wire-shaped choices,
// independently of the action executor's internal AnnotatedChoice
// representation, so transport formatting never couples to the executor's
// internal shape (spec §4.7).
package pick

import (
	"github.com/boardsmith/boardsmith/internal/action"
	"github.com/boardsmith/boardsmith/internal/element"
)

// ChoiceWithRefs is the wire shape for a choice-kind selection's items.
// Disabled is sparse: present only when the item is disabled.
type ChoiceWithRefs struct {
	Value     any    `json:"value"`
	Display   string `json:"display"`
	SourceRef string `json:"sourceRef,omitempty"`
	TargetRef string `json:"targetRef,omitempty"`
	Disabled  string `json:"disabled,omitempty"`
}

// ValidElement is the wire shape for an element/elements-kind selection's
// items.
type ValidElement struct {
	ID       int    `json:"id"`
	Display  string `json:"display,omitempty"`
	Ref      string `json:"ref,omitempty"`
	Disabled string `json:"disabled,omitempty"`
}

// DisplayFunc renders a human-readable label for a raw choice value or
// element, supplied by the game definition (there is no generic way to
// stringify an arbitrary choice or element).
type DisplayFunc func(item any) string

// Resolve looks up actionName/selectionName within defs and returns its
// wire-shaped choices for player given the in-progress args. It returns
// (nil, nil, false) if the action or selection does not exist.
func Resolve(defs []action.Action, actionName, selectionName string, player *element.Player, game *element.Game, args map[string]any, display DisplayFunc) ([]ChoiceWithRefs, []ValidElement, bool) {
	var sel *action.Selection
	for i := range defs {
		if defs[i].Name != actionName {
			continue
		}
		for j := range defs[i].Selections {
			if defs[i].Selections[j].Name == selectionName {
				sel = &defs[i].Selections[j]
			}
		}
	}
	if sel == nil {
		return nil, nil, false
	}

	choices := action.GetChoices(*sel, player, game, args)

	switch sel.Kind {
	case action.KindChoice:
		return buildChoices(choices, display), nil, true
	case action.KindElement, action.KindElements:
		return nil, buildValidElements(choices, display), true
	default:
		return nil, nil, true
	}
}

func buildChoices(choices []action.AnnotatedChoice, display DisplayFunc) []ChoiceWithRefs {
	out := make([]ChoiceWithRefs, 0, len(choices))
	for _, c := range choices {
		out = append(out, ChoiceWithRefs{
			Value:    c.Value,
			Display:  renderDisplay(display, c.Value),
			Disabled: c.Disabled,
		})
	}
	return out
}

// buildValidElements is shared by both the element and elements cases, per
// spec §4.7 ("both variants route through one buildValidElements helper").
func buildValidElements(choices []action.AnnotatedChoice, display DisplayFunc) []ValidElement {
	out := make([]ValidElement, 0, len(choices))
	for _, c := range choices {
		e, ok := c.Value.(*element.GameElement)
		if !ok {
			continue
		}
		out = append(out, ValidElement{
			ID:       e.ID,
			Display:  renderDisplay(display, e),
			Disabled: c.Disabled,
		})
	}
	return out
}

func renderDisplay(display DisplayFunc, item any) string {
	if display == nil {
		return ""
	}
	return display(item)
}
