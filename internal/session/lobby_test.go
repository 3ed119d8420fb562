package session_test

import (
	"testing"
	"time"

	"github.com/boardsmith/boardsmith/internal/session"
)

// S3: color conflict.
func TestLobby_ColorConflict(t *testing.T) {
	l := session.NewLobby(2, true, []string{"#e74c3c", "#3498db"})
	l.Slots[0].Name = "Alice"
	l.Slots[1].Name = "Bob"

	if err := l.UpdateSlotPlayerOptions(1, session.PlayerOptions{Color: "#e74c3c"}); err != nil {
		t.Fatalf("unexpected error setting Alice's color: %v", err)
	}

	err := l.UpdateSlotPlayerOptions(2, session.PlayerOptions{Color: "#e74c3c"})
	if err == nil {
		t.Fatal("expected a color conflict error")
	}
	if err.Code != "COLOR_ALREADY_TAKEN" {
		t.Fatalf("expected COLOR_ALREADY_TAKEN, got %s", err.Code)
	}

	if err := l.UpdateSlotPlayerOptions(2, session.PlayerOptions{Color: "#3498db"}); err != nil {
		t.Fatalf("expected the non-conflicting color to succeed, got %v", err)
	}
}

func TestLobby_OwnColorIsNotAConflict(t *testing.T) {
	l := session.NewLobby(1, true, []string{"#e74c3c"})
	if err := l.UpdateSlotPlayerOptions(1, session.PlayerOptions{Color: "#e74c3c"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := l.UpdateSlotPlayerOptions(1, session.PlayerOptions{Color: "#e74c3c"}); err != nil {
		t.Fatalf("re-asserting one's own color should not conflict: %v", err)
	}
}

// S6: reconnection preserves color, and a competing claim during the
// disconnect gap still fails.
func TestLobby_ReconnectionPreservesColorAndBlocksConflict(t *testing.T) {
	l := session.NewLobby(2, true, []string{"#e74c3c", "#3498db"})
	l.DisconnectGrace = 50 * time.Millisecond
	l.Slots[0].PlayerID = "alice"
	l.Slots[1].PlayerID = "bob"

	if err := l.UpdatePlayerOptions("alice", session.PlayerOptions{Color: "#e74c3c"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	evicted := false
	if err := l.SetPlayerConnected("alice", false, func(seat int) { evicted = true }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := l.UpdatePlayerOptions("bob", session.PlayerOptions{Color: "#e74c3c"}); err == nil {
		t.Fatal("expected bob's claim during the gap to fail")
	}

	if err := l.SetPlayerConnected("alice", true, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Slots[0].Options.Color != "#e74c3c" {
		t.Fatalf("expected alice's color to survive reconnection, got %q", l.Slots[0].Options.Color)
	}

	time.Sleep(100 * time.Millisecond)
	if evicted {
		t.Fatal("reconnecting before the grace window elapsed should cancel the pending eviction")
	}
}

func TestLobby_StartGameRequiresWaiting(t *testing.T) {
	l := session.NewLobby(2, false, nil)
	if _, err := l.StartGame(); err != nil {
		t.Fatalf("unexpected error starting a waiting lobby: %v", err)
	}
	if _, err := l.StartGame(); err == nil || err.Code != "LOBBY_NOT_WAITING" {
		t.Fatalf("expected LOBBY_NOT_WAITING on a second start, got %v", err)
	}
}
