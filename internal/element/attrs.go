package element

import "encoding/json"

// decodeAttrs parses an element's raw attribute bag into a plain map for
// inclusion in a View. Decode errors collapse to an empty map rather than
// propagating — a malformed attribute bag is an internal invariant
// violation, not something a player-facing view should surface.
func decodeAttrs(raw string) map[string]any {
	if raw == "" || raw == "{}" {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
