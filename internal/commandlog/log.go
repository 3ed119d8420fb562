// Package commandlog is the append-only record of every successful action
// performed against a game, and the mechanism for reconstructing state from
// it: snapshot/restore and index-addressed time travel (spec §4.4).
package commandlog

import (
	"fmt"
	"time"

	"github.com/boardsmith/boardsmith/internal/services/game/core/encoding"
)

// AnimationEventRef is the minimal shape of an animation event as recorded
// in a log entry: enough to replay pendingAnimationEvents without pulling
// the anim package's buffer type into this one.
type AnimationEventRef struct {
	ID    int
	Type  string
	Data  map[string]any
	Group string
}

// Entry is one successful performAction, recorded in full so the log alone
// (plus the original seed and configs) is sufficient to reconstruct state
// (spec §4.4).
type Entry struct {
	Index                 int
	Player                int
	ActionName            string
	Args                  map[string]any
	Timestamp             time.Time
	ResultingFlowPosition string
	AnimationEvents       []AnimationEventRef

	// Hash and PrevHash are populated only when the log runs with its
	// optional integrity chain enabled (spec §12 supplemented feature).
	Hash     string
	PrevHash string
}

// Log is the append-only, in-memory command history for one game.
type Log struct {
	entries        []Entry
	integrityChain bool
}

// New returns an empty Log.
func New() *Log {
	return &Log{}
}

// WithIntegrityChain enables or disables per-entry content hashing. When
// enabled, each appended entry's Hash chains from the previous entry's Hash,
// the same content-addressing discipline as an event-sourced store's hash
// chain (spec §12). It is a supplemental integrity check, not load-bearing
// for replay: replay is driven by (seed, configs, entries), never by hash.
func (l *Log) WithIntegrityChain(enabled bool) *Log {
	l.integrityChain = enabled
	return l
}

// Append records a new entry, assigning its Index and, if the chain is
// enabled, its Hash/PrevHash.
func (l *Log) Append(entry Entry) (Entry, error) {
	entry.Index = len(l.entries)
	if l.integrityChain {
		prev := ""
		if len(l.entries) > 0 {
			prev = l.entries[len(l.entries)-1].Hash
		}
		hash, err := entryHash(entry, prev)
		if err != nil {
			return Entry{}, fmt.Errorf("commandlog: hash entry %d: %w", entry.Index, err)
		}
		entry.PrevHash = prev
		entry.Hash = hash
	}
	l.entries = append(l.entries, entry)
	return entry, nil
}

// Entries returns the full log in append order. Callers must not mutate the
// returned slice's elements' Args maps.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int { return len(l.entries) }

// At returns the entries up to but not including index K, for time-travel
// reconstruction (spec §4.4: "reconstruct from seed, replay entries 0..K-1").
func (l *Log) At(k int) []Entry {
	if k > len(l.entries) {
		k = len(l.entries)
	}
	if k < 0 {
		k = 0
	}
	out := make([]Entry, k)
	copy(out, l.entries[:k])
	return out
}

// VerifyChain recomputes every entry's hash and reports the first mismatch,
// or true if the chain (when enabled) is intact. It is a diagnostic, not
// something replay depends on.
func (l *Log) VerifyChain() (ok bool, badIndex int) {
	if !l.integrityChain {
		return true, -1
	}
	prev := ""
	for i, e := range l.entries {
		want, err := entryHash(Entry{
			Index: e.Index, Player: e.Player, ActionName: e.ActionName,
			Args: e.Args, Timestamp: e.Timestamp,
			ResultingFlowPosition: e.ResultingFlowPosition, AnimationEvents: e.AnimationEvents,
		}, prev)
		if err != nil || want != e.Hash || e.PrevHash != prev {
			return false, i
		}
		prev = e.Hash
	}
	return true, -1
}

// entryEnvelope is the canonical field map hashed for an entry, mirroring
// the event-sourcing convention of a single source of truth for which
// fields participate in the content hash.
func entryEnvelope(e Entry, prevHash string) map[string]any {
	return map[string]any{
		"index":       e.Index,
		"player":      e.Player,
		"action_name": e.ActionName,
		"args":        e.Args,
		"timestamp":   e.Timestamp.UTC().Format(time.RFC3339Nano),
		"prev_hash":   prevHash,
	}
}

// entryHash uses the untruncated hash: the chain is meant to span a whole
// game's worth of entries, so it favors collision resistance over the
// shorter ContentHash that sqlitemigrate uses for migration checksums.
func entryHash(e Entry, prevHash string) (string, error) {
	return encoding.ContentHashFull(entryEnvelope(e, prevHash))
}
