package sqlitesnapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/boardsmith/boardsmith/adapters/sqlitesnapshot/migrations"
	"github.com/boardsmith/boardsmith/internal/platform/storage/sqlitemigrate"
	"github.com/boardsmith/boardsmith/internal/services/game/core/naming"
	"github.com/boardsmith/boardsmith/internal/session"
)

// ErrNotFound indicates no snapshot exists for the requested game id.
var ErrNotFound = errors.New("sqlitesnapshot: not found")

// Store persists Snapshots in SQLite, one row per game.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if necessary) a SQLite snapshot store at path and
// applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlitesnapshot: storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlitesnapshot: open: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlitesnapshot: ping: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlitesnapshot: migrate: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts or replaces the snapshot for snap.GameID. The namespace
// column is derived from GameType via naming.NormalizeSystemNamespace so
// snapshots can be listed per game family regardless of how an author
// spelled the type ("Daggerheart", "boardsmith:daggerheart", ...).
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("sqlitesnapshot: store is not configured")
	}
	if strings.TrimSpace(snap.GameID) == "" {
		return fmt.Errorf("sqlitesnapshot: game id is required")
	}

	playerConfigs, err := json.Marshal(snap.PlayerConfigs)
	if err != nil {
		return fmt.Errorf("sqlitesnapshot: marshal player configs: %w", err)
	}
	var lobbySlots []byte
	if snap.LobbySlots != nil {
		lobbySlots, err = json.Marshal(snap.LobbySlots)
		if err != nil {
			return fmt.Errorf("sqlitesnapshot: marshal lobby slots: %w", err)
		}
	}
	colors, err := json.Marshal(snap.Colors)
	if err != nil {
		return fmt.Errorf("sqlitesnapshot: marshal colors: %w", err)
	}
	history, err := json.Marshal(snap.ActionHistory)
	if err != nil {
		return fmt.Errorf("sqlitesnapshot: marshal action history: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO snapshots (game_id, game_type, namespace, seed, player_configs, lobby_slots, lobby_state, color_selection_enabled, colors, action_history, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (game_id) DO UPDATE SET
    game_type=excluded.game_type,
    namespace=excluded.namespace,
    seed=excluded.seed,
    player_configs=excluded.player_configs,
    lobby_slots=excluded.lobby_slots,
    lobby_state=excluded.lobby_state,
    color_selection_enabled=excluded.color_selection_enabled,
    colors=excluded.colors,
    action_history=excluded.action_history,
    updated_at=excluded.updated_at
`,
		snap.GameID,
		snap.GameType,
		naming.NormalizeSystemNamespace(snap.GameType),
		snap.Seed,
		string(playerConfigs),
		nullableText(lobbySlots),
		string(snap.LobbyState),
		boolToInt(snap.ColorSelectionEnabled),
		string(colors),
		string(history),
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("sqlitesnapshot: save %q: %w", snap.GameID, err)
	}
	return nil
}

// Load reconstructs a Snapshot by game id.
func (s *Store) Load(ctx context.Context, gameID string) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	if s == nil || s.sqlDB == nil {
		return Snapshot{}, fmt.Errorf("sqlitesnapshot: store is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
SELECT game_id, game_type, seed, player_configs, lobby_slots, lobby_state, color_selection_enabled, colors, action_history
FROM snapshots WHERE game_id = ?`, gameID)

	var (
		snap               Snapshot
		playerConfigsJSON  string
		lobbySlotsJSON     sql.NullString
		colorsJSON         string
		actionHistoryJSON  string
		colorSelectionFlag int
		lobbyState         string
	)
	if err := row.Scan(&snap.GameID, &snap.GameType, &snap.Seed, &playerConfigsJSON, &lobbySlotsJSON,
		&lobbyState, &colorSelectionFlag, &colorsJSON, &actionHistoryJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, fmt.Errorf("sqlitesnapshot: load %q: %w", gameID, err)
	}

	snap.LobbyState = session.LobbyState(lobbyState)
	snap.ColorSelectionEnabled = colorSelectionFlag != 0

	if err := json.Unmarshal([]byte(playerConfigsJSON), &snap.PlayerConfigs); err != nil {
		return Snapshot{}, fmt.Errorf("sqlitesnapshot: unmarshal player configs: %w", err)
	}
	if lobbySlotsJSON.Valid {
		if err := json.Unmarshal([]byte(lobbySlotsJSON.String), &snap.LobbySlots); err != nil {
			return Snapshot{}, fmt.Errorf("sqlitesnapshot: unmarshal lobby slots: %w", err)
		}
	}
	if err := json.Unmarshal([]byte(colorsJSON), &snap.Colors); err != nil {
		return Snapshot{}, fmt.Errorf("sqlitesnapshot: unmarshal colors: %w", err)
	}
	if err := json.Unmarshal([]byte(actionHistoryJSON), &snap.ActionHistory); err != nil {
		return Snapshot{}, fmt.Errorf("sqlitesnapshot: unmarshal action history: %w", err)
	}
	return snap, nil
}

// ListByGameType returns every stored game id whose namespace matches
// gameType (after normalization), most recently updated first.
func (s *Store) ListByGameType(ctx context.Context, gameType string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT game_id FROM snapshots WHERE namespace = ? ORDER BY updated_at DESC`,
		naming.NormalizeSystemNamespace(gameType))
	if err != nil {
		return nil, fmt.Errorf("sqlitesnapshot: list %q: %w", gameType, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlitesnapshot: scan: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullableText(raw []byte) any {
	if raw == nil {
		return nil
	}
	return string(raw)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
