package sqlitesnapshot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/boardsmith/boardsmith/internal/commandlog"
	"github.com/boardsmith/boardsmith/internal/element"
	"github.com/boardsmith/boardsmith/internal/session"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected an error for an empty path")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	snap := Snapshot{
		GameID:                "game-1",
		GameType:              "GAME_SYSTEM_COUNTER",
		Seed:                  42,
		PlayerConfigs:         []element.PlayerConfig{{Name: "Ada"}, {Name: "Grace"}},
		LobbyState:            session.LobbyInProgress,
		ColorSelectionEnabled: true,
		Colors:                []string{"#e74c3c", "#3498db"},
		ActionHistory: []commandlog.Entry{
			{Index: 0, Player: 1, ActionName: "increment"},
			{Index: 1, Player: 2, ActionName: "increment"},
		},
	}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, "game-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.GameType != snap.GameType || got.Seed != snap.Seed || got.LobbyState != snap.LobbyState {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.PlayerConfigs) != 2 || got.PlayerConfigs[0].Name != "Ada" {
		t.Fatalf("player configs did not survive round trip: %+v", got.PlayerConfigs)
	}
	if len(got.ActionHistory) != 2 || got.ActionHistory[1].ActionName != "increment" {
		t.Fatalf("action history did not survive round trip: %+v", got.ActionHistory)
	}
}

func TestSaveUpsertsExistingGame(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	base := Snapshot{GameID: "game-1", GameType: "counter", Seed: 1, LobbyState: session.LobbyWaiting, Colors: []string{}}
	if err := store.Save(ctx, base); err != nil {
		t.Fatalf("save: %v", err)
	}
	base.Seed = 2
	base.LobbyState = session.LobbyInProgress
	if err := store.Save(ctx, base); err != nil {
		t.Fatalf("re-save: %v", err)
	}

	got, err := store.Load(ctx, "game-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Seed != 2 || got.LobbyState != session.LobbyInProgress {
		t.Fatalf("expected upsert to overwrite, got %+v", got)
	}
}

func TestLoadMissingReturnsErrNotFound(t *testing.T) {
	store := openTempStore(t)
	if _, err := store.Load(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByGameTypeNormalizesNamespace(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		if err := store.Save(ctx, Snapshot{GameID: id, GameType: "boardsmith:Counter", Colors: []string{}}); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	if err := store.Save(ctx, Snapshot{GameID: "c", GameType: "other", Colors: []string{}}); err != nil {
		t.Fatalf("save c: %v", err)
	}

	ids, err := store.ListByGameType(ctx, "counter")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 counter snapshots, got %v", ids)
	}
}
