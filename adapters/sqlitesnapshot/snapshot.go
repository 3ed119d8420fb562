// Package sqlitesnapshot is a reference, non-core adapter demonstrating the
// persisted-snapshot contract end to end: `{gameType, seed, playerConfigs[],
// lobbySlots[]?, lobbyState, colorSelectionEnabled, colors[],
// actionHistory[]}` (spec.md §6). It is not part of the engine core — an
// author may persist snapshots any way they like; this package exists so
// the contract has at least one working implementation.
package sqlitesnapshot

import (
	"github.com/boardsmith/boardsmith/internal/commandlog"
	"github.com/boardsmith/boardsmith/internal/element"
	"github.com/boardsmith/boardsmith/internal/session"
)

// Snapshot is the full persisted representation of one game, sufficient to
// reconstruct it via session.Reconstruct plus a freshly rebuilt Lobby.
type Snapshot struct {
	GameID                string
	GameType              string
	Seed                  int64
	PlayerConfigs         []element.PlayerConfig
	LobbySlots            []session.Slot // nil once the lobby has been discarded post-start
	LobbyState            session.LobbyState
	ColorSelectionEnabled bool
	Colors                []string
	ActionHistory         []commandlog.Entry
}
