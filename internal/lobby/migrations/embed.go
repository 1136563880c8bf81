package migrations

import "embed"

// FS contains embedded SQLite migrations for the lobby.
//
//go:embed *.sql
var FS embed.FS
