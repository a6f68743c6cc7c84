// Package migrations embeds the SQLite schema for funding storage.
package migrations

import "embed"

// FS contains embedded SQLite migrations for funding storage.
//
//go:embed *.sql
var FS embed.FS
