package migrations

import "embed"

// FS contains embedded SQLite migrations for the snapshot adapter.
//
//go:embed *.sql
var FS embed.FS
