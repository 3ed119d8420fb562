// Package naming normalizes a game author's free-form GameType string into
// the canonical namespace used to group snapshots, replays, and command
// logs from the same game family regardless of how the author spelled it.
package naming

import "strings"

// MaxNamespaceLength caps a normalized namespace so an author's verbose
// GameType ("boardsmith:my-experimental-fork-of-daggerheart-v2") can't grow
// the namespace index column without bound.
const MaxNamespaceLength = 64

// NormalizeSystemNamespace converts a raw GameType (e.g. "Daggerheart",
// "boardsmith:tic-tac-toe", "my game v2") into the canonical lowercase
// underscore-separated namespace used to group persisted games by family
// ("daggerheart", "tic_tac_toe", "my_game_v2"), truncated to
// MaxNamespaceLength runes.
func NormalizeSystemNamespace(gameType string) string {
	trimmed := strings.TrimSpace(gameType)
	if trimmed == "" {
		return ""
	}
	const uriPrefix = "boardsmith:"
	if len(trimmed) > len(uriPrefix) && strings.EqualFold(trimmed[:len(uriPrefix)], uriPrefix) {
		trimmed = trimmed[len(uriPrefix):]
	}
	normalized := strings.ToLower(trimmed)
	var b strings.Builder
	b.Grow(len(normalized))
	lastUnderscore := false
	for _, r := range normalized {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	result := strings.Trim(b.String(), "_")
	if len(result) > MaxNamespaceLength {
		result = strings.TrimRight(result[:MaxNamespaceLength], "_")
	}
	return result
}
