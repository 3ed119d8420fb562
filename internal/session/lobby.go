// Package session implements the lobby state machine and the live-game
// orchestration that ties the action executor, flow runner, command log,
// animation buffer, and broadcast adapter together into one performAction
// call (spec §4.6, §2 "happy path").
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/boardsmith/boardsmith/internal/boarderr"
)

// LobbyState is the lobby's coarse phase (spec §4.6).
type LobbyState string

const (
	LobbyWaiting    LobbyState = "waiting"
	LobbyStarting   LobbyState = "starting"
	LobbyInProgress LobbyState = "in-progress"
	LobbyFinished   LobbyState = "finished"
)

// PlayerOptions is the mutable, player-controlled portion of a slot.
type PlayerOptions struct {
	Color string
	Extra map[string]any
}

// Slot is one seat's claim, connection state, and options while the game
// has not yet started (spec §4.6). AI holds slots with no PlayerID.
type Slot struct {
	Seat      int
	PlayerID  string
	Name      string
	Connected bool
	Options   PlayerOptions
	AI        bool
}

// DefaultDisconnectGrace is how long a disconnected slot is preserved
// before eviction, absent an explicit override (spec §9 open question (b)).
const DefaultDisconnectGrace = 5 * time.Minute

// Lobby holds slots for one not-yet-started (or now-finished) game.
type Lobby struct {
	State                 LobbyState
	Slots                 []*Slot
	ColorSelectionEnabled bool
	Colors                []string
	DisconnectGrace       time.Duration

	evictions map[int]context.CancelFunc
}

// NewLobby creates an empty lobby with seatCount unclaimed slots.
func NewLobby(seatCount int, colorSelectionEnabled bool, colors []string) *Lobby {
	l := &Lobby{
		State:                 LobbyWaiting,
		ColorSelectionEnabled: colorSelectionEnabled,
		Colors:                colors,
		DisconnectGrace:       DefaultDisconnectGrace,
		evictions:             make(map[int]context.CancelFunc),
	}
	for seat := 1; seat <= seatCount; seat++ {
		l.Slots = append(l.Slots, &Slot{Seat: seat})
	}
	return l
}

func (l *Lobby) slotBySeat(seat int) *Slot {
	for _, s := range l.Slots {
		if s.Seat == seat {
			return s
		}
	}
	return nil
}

func (l *Lobby) slotByPlayer(playerID string) *Slot {
	for _, s := range l.Slots {
		if s.PlayerID == playerID {
			return s
		}
	}
	return nil
}

// colorConflict reports the name of another slot already holding color, if
// any, excluding the slot at seat itself (spec §4.6 "Color validation").
func (l *Lobby) colorConflict(seat int, color string) (conflictName string, conflict bool) {
	if color == "" {
		return "", false
	}
	for _, s := range l.Slots {
		if s.Seat == seat {
			continue
		}
		if s.Options.Color == color {
			return s.Name, true
		}
	}
	return "", false
}

// UpdatePlayerOptions lets a claimed player update their own options.
func (l *Lobby) UpdatePlayerOptions(playerID string, opts PlayerOptions) *boarderr.Error {
	slot := l.slotByPlayer(playerID)
	if slot == nil {
		return boarderr.New(boarderr.PlayerNotInLobby, "player holds no lobby slot")
	}
	return l.applyOptions(slot, opts)
}

// UpdateSlotPlayerOptions is the host-privileged equivalent, addressed by
// seat so it also covers AI slots.
func (l *Lobby) UpdateSlotPlayerOptions(seat int, opts PlayerOptions) *boarderr.Error {
	slot := l.slotBySeat(seat)
	if slot == nil {
		return boarderr.New(boarderr.PlayerNotInLobby, fmt.Sprintf("no slot at seat %d", seat))
	}
	return l.applyOptions(slot, opts)
}

func (l *Lobby) applyOptions(slot *Slot, opts PlayerOptions) *boarderr.Error {
	if opts.Color != "" && opts.Color != slot.Options.Color {
		if name, conflict := l.colorConflict(slot.Seat, opts.Color); conflict {
			return boarderr.WithMetadata(boarderr.ColorAlreadyTaken,
				fmt.Sprintf("color already taken by %s", name),
				map[string]string{"player": name, "color": opts.Color})
		}
	}
	slot.Options = opts
	return nil
}

// SetPlayerConnected updates playerID's connection flag, preserving options.
// When transitioning to disconnected, onGraceExpired (if non-nil) fires once
// DisconnectGrace elapses without a reconnect, so the session can evict the
// slot (spec §4.6: "disconnection beyond a grace period triggers slot
// eviction if configured"). Reconnecting before the grace window cancels
// the pending eviction.
func (l *Lobby) SetPlayerConnected(playerID string, connected bool, onGraceExpired func(seat int)) *boarderr.Error {
	slot := l.slotByPlayer(playerID)
	if slot == nil {
		return boarderr.New(boarderr.PlayerNotInLobby, "player holds no lobby slot")
	}
	slot.Connected = connected

	if cancel, ok := l.evictions[slot.Seat]; ok {
		cancel()
		delete(l.evictions, slot.Seat)
	}

	if !connected && onGraceExpired != nil && l.DisconnectGrace > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		l.evictions[slot.Seat] = cancel
		seat := slot.Seat
		go func() {
			waitGrace(ctx, l.DisconnectGrace)
			if ctx.Err() == nil {
				onGraceExpired(seat)
			}
		}()
	}
	return nil
}

// waitGrace blocks until grace elapses or ctx is cancelled, polling via a
// constant backoff so a reconnect can short-circuit the wait promptly
// without a bespoke timer/cancellation type.
func waitGrace(ctx context.Context, grace time.Duration) {
	const pollInterval = 2 * time.Second
	_, _ = backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, fmt.Errorf("grace window not yet elapsed")
	}, backoff.WithBackOff(backoff.NewConstantBackOff(pollInterval)), backoff.WithMaxElapsedTime(grace))
}

// StartGame snapshots slots into player configs and transitions the lobby
// to in-progress. The caller is responsible for constructing the Game from
// the returned configs (spec §4.6).
func (l *Lobby) StartGame() ([]*Slot, *boarderr.Error) {
	if l.State != LobbyWaiting {
		return nil, boarderr.New(boarderr.LobbyNotWaiting, "lobby is not waiting")
	}
	l.State = LobbyStarting
	snapshot := make([]*Slot, len(l.Slots))
	for i, s := range l.Slots {
		cp := *s
		snapshot[i] = &cp
	}
	l.State = LobbyInProgress
	return snapshot, nil
}

// Info is the broadcastable summary of lobby configuration (spec §4.6
// "LobbyInfo broadcast shape").
type Info struct {
	State                 LobbyState
	Slots                 []Slot
	ColorSelectionEnabled bool
	Colors                []string
}

// Snapshot returns the broadcastable lobby info.
func (l *Lobby) Snapshot() Info {
	slots := make([]Slot, len(l.Slots))
	for i, s := range l.Slots {
		slots[i] = *s
	}
	return Info{
		State:                 l.State,
		Slots:                 slots,
		ColorSelectionEnabled: l.ColorSelectionEnabled,
		Colors:                l.Colors,
	}
}
