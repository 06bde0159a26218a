// Package migrations holds the versioned schema for the SQLite role store.
// Files are named NNN_description.up.sql and applied in order.
package migrations

import "embed"

// FS holds the role schema migrations.
//
//go:embed *.sql
var FS embed.FS
