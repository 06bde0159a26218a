// Package sqlite provides a SQLite-backed implementation of driven.RoleStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Roles and their members are kept in two tables and the full role set is
// replaced inside a single transaction on every Save.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Thread Safety
//
// RoleStore is not safe for concurrent use. Callers serialise access, which the
// role directory does with its own lock.
package sqlite
