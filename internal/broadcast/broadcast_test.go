package broadcast_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/boardsmith/boardsmith/internal/broadcast"
)

func TestInProcess_BroadcastFansOutToEverySession(t *testing.T) {
	var mu sync.Mutex
	received := map[string]any{}

	a := broadcast.NewInProcess(func(ctx context.Context, sessionID string, info broadcast.SessionInfo, message any) error {
		mu.Lock()
		defer mu.Unlock()
		received[sessionID] = message
		return nil
	})
	a.AddSession("s1", broadcast.SessionInfo{Seat: 1})
	a.AddSession("s2", broadcast.SessionInfo{Seat: 2})
	a.AddSession("spectator", broadcast.SessionInfo{})

	if err := a.Broadcast(context.Background(), "state changed"); err != nil {
		t.Fatalf("Broadcast: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 3 {
		t.Fatalf("expected all 3 sessions to receive the broadcast, got %d", len(received))
	}
	for id, msg := range received {
		if msg != "state changed" {
			t.Fatalf("session %s received %v, want %q", id, msg, "state changed")
		}
	}
}

func TestInProcess_BroadcastReturnsFirstError(t *testing.T) {
	wantErr := errors.New("send failed")
	a := broadcast.NewInProcess(func(ctx context.Context, sessionID string, info broadcast.SessionInfo, message any) error {
		if sessionID == "bad" {
			return wantErr
		}
		return nil
	})
	a.AddSession("good", broadcast.SessionInfo{})
	a.AddSession("bad", broadcast.SessionInfo{})

	err := a.Broadcast(context.Background(), "ping")
	if err == nil {
		t.Fatal("expected an error from the failing session's send")
	}
}

func TestInProcess_RemoveSessionExcludesFromBroadcast(t *testing.T) {
	var mu sync.Mutex
	var hit []string

	a := broadcast.NewInProcess(func(ctx context.Context, sessionID string, info broadcast.SessionInfo, message any) error {
		mu.Lock()
		defer mu.Unlock()
		hit = append(hit, sessionID)
		return nil
	})
	a.AddSession("s1", broadcast.SessionInfo{})
	a.AddSession("s2", broadcast.SessionInfo{})
	a.RemoveSession("s1")

	if err := a.Broadcast(context.Background(), "msg"); err != nil {
		t.Fatalf("Broadcast: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	sort.Strings(hit)
	if len(hit) != 1 || hit[0] != "s2" {
		t.Fatalf("expected only s2 to be hit, got %v", hit)
	}
}

func TestInProcess_SendTargetsOneSession(t *testing.T) {
	var mu sync.Mutex
	var hit []string

	a := broadcast.NewInProcess(func(ctx context.Context, sessionID string, info broadcast.SessionInfo, message any) error {
		mu.Lock()
		defer mu.Unlock()
		hit = append(hit, sessionID)
		return nil
	})
	a.AddSession("s1", broadcast.SessionInfo{Seat: 1})
	a.AddSession("s2", broadcast.SessionInfo{Seat: 2})

	if err := a.Send(context.Background(), "s1", "directed"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(hit) != 1 || hit[0] != "s1" {
		t.Fatalf("expected only s1 to be hit, got %v", hit)
	}
}

func TestInProcess_SendToUnknownSessionIsANoop(t *testing.T) {
	called := false
	a := broadcast.NewInProcess(func(ctx context.Context, sessionID string, info broadcast.SessionInfo, message any) error {
		called = true
		return nil
	})
	if err := a.Send(context.Background(), "nobody", "msg"); err != nil {
		t.Fatalf("Send to an unknown session should not error: %v", err)
	}
	if called {
		t.Fatal("sendFunc should not be invoked for an unknown session")
	}
}

func TestInProcess_GetSessionsListsEveryAddedID(t *testing.T) {
	a := broadcast.NewInProcess(func(context.Context, string, broadcast.SessionInfo, any) error { return nil })
	a.AddSession("s1", broadcast.SessionInfo{})
	a.AddSession("s2", broadcast.SessionInfo{})

	ids := a.GetSessions()
	sort.Strings(ids)
	if len(ids) != 2 || ids[0] != "s1" || ids[1] != "s2" {
		t.Fatalf("unexpected sessions %v", ids)
	}
}
