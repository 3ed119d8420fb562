package action

import (
	"fmt"

	"github.com/boardsmith/boardsmith/internal/element"
)

// ValidationResult reports whether a submitted value satisfies sel.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

func invalid(format string, args ...any) ValidationResult {
	return ValidationResult{Valid: false, Errors: []string{fmt.Sprintf(format, args...)}}
}

// ValidateSelection checks value against sel's rules. For choice/element/
// elements, value is compared against GetChoices's annotated list: a value
// matching a disabled item is rejected with SELECTION_DISABLED, a value
// matching nothing is rejected with INVALID_SELECTION (spec §4.2).
func ValidateSelection(sel Selection, value any, player *element.Player, game *element.Game, args map[string]any) ValidationResult {
	switch sel.Kind {
	case KindChoice, KindElement:
		return validateAgainstChoices(sel, value, player, game, args)
	case KindElements:
		return validateElements(sel, value, player, game, args)
	case KindNumber:
		return validateNumber(sel, value)
	case KindText:
		return validateText(sel, value)
	default:
		return invalid("unknown selection kind %q", sel.Kind)
	}
}

func validateAgainstChoices(sel Selection, value any, player *element.Player, game *element.Game, args map[string]any) ValidationResult {
	choices := GetChoices(sel, player, game, args)
	for _, c := range choices {
		if !matchValue(c.Value, value) {
			continue
		}
		if !c.IsEnabled() {
			return invalid("SELECTION_DISABLED: %s", c.Disabled)
		}
		return ValidationResult{Valid: true}
	}
	return invalid("INVALID_SELECTION: %v is not an offered choice for %s", value, sel.Name)
}

func validateElements(sel Selection, value any, player *element.Player, game *element.Game, args map[string]any) ValidationResult {
	values, ok := value.([]any)
	if !ok {
		return invalid("INVALID_SELECTION: %s expects a list of values", sel.Name)
	}
	if sel.CountMin > 0 && len(values) < sel.CountMin {
		return invalid("INVALID_SELECTION: %s requires at least %d selections", sel.Name, sel.CountMin)
	}
	if sel.CountMax > 0 && len(values) > sel.CountMax {
		return invalid("INVALID_SELECTION: %s allows at most %d selections", sel.Name, sel.CountMax)
	}
	choices := GetChoices(sel, player, game, args)
	for _, v := range values {
		matched := false
		for _, c := range choices {
			if !matchValue(c.Value, v) {
				continue
			}
			if !c.IsEnabled() {
				return invalid("SELECTION_DISABLED: %s", c.Disabled)
			}
			matched = true
			break
		}
		if !matched {
			return invalid("INVALID_SELECTION: %v is not an offered choice for %s", v, sel.Name)
		}
	}
	return ValidationResult{Valid: true}
}

func validateNumber(sel Selection, value any) ValidationResult {
	n, ok := toFloat(value)
	if !ok {
		return invalid("INVALID_SELECTION: %s must be a number", sel.Name)
	}
	if sel.NumberMin != nil && n < *sel.NumberMin {
		return invalid("INVALID_SELECTION: %s must be >= %v", sel.Name, *sel.NumberMin)
	}
	if sel.NumberMax != nil && n > *sel.NumberMax {
		return invalid("INVALID_SELECTION: %s must be <= %v", sel.Name, *sel.NumberMax)
	}
	return ValidationResult{Valid: true}
}

func validateText(sel Selection, value any) ValidationResult {
	s, ok := value.(string)
	if !ok {
		return invalid("INVALID_SELECTION: %s must be text", sel.Name)
	}
	if sel.TextMinLen != nil && len(s) < *sel.TextMinLen {
		return invalid("INVALID_SELECTION: %s must be at least %d characters", sel.Name, *sel.TextMinLen)
	}
	if sel.TextMaxLen != nil && len(s) > *sel.TextMaxLen {
		return invalid("INVALID_SELECTION: %s must be at most %d characters", sel.Name, *sel.TextMaxLen)
	}
	return ValidationResult{Valid: true}
}

// matchValue compares an annotated choice's Value against a submitted wire
// value. Element choices smart-resolve against the element's ID, since the
// wire submits an element id (int/float64/string) rather than a pointer
// (spec §4.2: "Resolution may smart-resolve element IDs against the
// annotated list's .value collection").
func matchValue(choiceValue, submitted any) bool {
	if e, ok := choiceValue.(*element.GameElement); ok {
		id, ok := toInt(submitted)
		return ok && e.ID == id
	}
	if f1, ok1 := toFloat(choiceValue); ok1 {
		if f2, ok2 := toFloat(submitted); ok2 {
			return f1 == f2
		}
	}
	return fmt.Sprint(choiceValue) == fmt.Sprint(submitted)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
