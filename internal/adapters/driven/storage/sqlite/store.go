package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/custodia-labs/roster/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
	"github.com/custodia-labs/roster/internal/logger"
)

// Ensure RoleStore implements the interface.
var _ driven.RoleStore = (*RoleStore)(nil)

// RoleStore keeps roles in memory and mirrors them to a SQLite database.
type RoleStore struct {
	db   *sql.DB
	path string

	roles  []domain.Role
	loaded bool
	closed bool
}

// NewRoleStore creates a role store for the database file at path.
// The database is opened and migrated on first use.
func NewRoleStore(path string) (*RoleStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path is empty", domain.ErrInvalidInput)
	}
	return &RoleStore{path: path}, nil
}

// open connects to the database and runs pending migrations.
func (s *RoleStore) open(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("%w: creating data directory: %w", domain.ErrStoreUnavailable, err)
	}

	db, err := sql.Open("sqlite", s.path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return classify("opening database", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return classify("enabling foreign keys", err)
	}

	if err := migrate(ctx, db, migrations.FS); err != nil {
		db.Close()
		return classify("running migrations", err)
	}

	s.db = db
	return nil
}

// Load returns the in-memory roles, reading the database on first use.
func (s *RoleStore) Load(ctx context.Context) ([]domain.Role, error) {
	if s.closed {
		return nil, domain.ErrStoreClosed
	}
	if s.loaded {
		return s.roles, nil
	}
	if err := s.open(ctx); err != nil {
		return nil, err
	}

	roles, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	s.roles = roles
	s.loaded = true
	logger.Debug("loaded %d roles from %s", len(roles), s.path)
	return s.roles, nil
}

func (s *RoleStore) read(ctx context.Context) ([]domain.Role, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT position, name FROM roles ORDER BY position")
	if err != nil {
		return nil, classify("querying roles", err)
	}
	defer rows.Close()

	roles := []domain.Role{}
	index := make(map[int64]int)
	for rows.Next() {
		var position int64
		var name string
		if err := rows.Scan(&position, &name); err != nil {
			return nil, classify("scanning role", err)
		}
		index[position] = len(roles)
		roles = append(roles, domain.Role{Name: name, Users: []string{}})
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating roles", err)
	}

	userRows, err := s.db.QueryContext(ctx,
		"SELECT role_position, username FROM role_users ORDER BY role_position, position")
	if err != nil {
		return nil, classify("querying role users", err)
	}
	defer userRows.Close()

	for userRows.Next() {
		var rolePosition int64
		var username string
		if err := userRows.Scan(&rolePosition, &username); err != nil {
			return nil, classify("scanning role user", err)
		}
		i, ok := index[rolePosition]
		if !ok {
			return nil, fmt.Errorf("%w: member %q references missing role %d",
				domain.ErrStoreCorrupt, username, rolePosition)
		}
		roles[i].Users = append(roles[i].Users, username)
	}
	if err := userRows.Err(); err != nil {
		return nil, classify("iterating role users", err)
	}

	return roles, nil
}

// Save replaces the in-memory roles and rewrites every row in one transaction.
func (s *RoleStore) Save(ctx context.Context, roles []domain.Role) error {
	if s.closed {
		return domain.ErrStoreClosed
	}
	s.roles = roles
	s.loaded = true

	if err := s.open(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("beginning transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, "DELETE FROM role_users"); err != nil {
		return classify("clearing role users", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM roles"); err != nil {
		return classify("clearing roles", err)
	}

	roleStmt, err := tx.PrepareContext(ctx, "INSERT INTO roles (position, name) VALUES (?, ?)")
	if err != nil {
		return classify("preparing role insert", err)
	}
	defer roleStmt.Close()

	userStmt, err := tx.PrepareContext(ctx,
		"INSERT INTO role_users (role_position, position, username) VALUES (?, ?, ?)")
	if err != nil {
		return classify("preparing user insert", err)
	}
	defer userStmt.Close()

	for i, role := range roles {
		if _, err := roleStmt.ExecContext(ctx, i, role.Name); err != nil {
			return classify("inserting role", err)
		}
		for j, username := range role.Users {
			if _, err := userStmt.ExecContext(ctx, i, j, username); err != nil {
				return classify("inserting role user", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return classify("committing roles", err)
	}

	logger.Debug("saved %d roles to %s", len(roles), s.path)
	return nil
}

// Close closes the database connection. It is idempotent.
func (s *RoleStore) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.roles = nil
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Location returns the database file path.
func (s *RoleStore) Location() string {
	return s.path
}

// SchemaVersion returns the highest applied migration version.
func (s *RoleStore) SchemaVersion(ctx context.Context) (int, error) {
	if s.closed {
		return 0, domain.ErrStoreClosed
	}
	if err := s.open(ctx); err != nil {
		return 0, err
	}
	return currentVersion(ctx, s.db)
}

// classify wraps a database error with the matching store sentinel.
func classify(op string, err error) error {
	var sqlErr *sqlite.Error
	if errors.As(err, &sqlErr) {
		switch sqlErr.Code() & 0xff {
		case sqlite3.SQLITE_NOTADB, sqlite3.SQLITE_CORRUPT:
			return fmt.Errorf("%w: %s: %w", domain.ErrStoreCorrupt, op, err)
		}
	}
	if strings.Contains(err.Error(), "not a database") {
		return fmt.Errorf("%w: %s: %w", domain.ErrStoreCorrupt, op, err)
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
}

func currentVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	row := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&version); err != nil {
		return 0, fmt.Errorf("getting current version: %w", err)
	}
	return version, nil
}

// migrate runs all pending migrations.
func migrate(ctx context.Context, db *sql.DB, fsys fs.FS) error {
	// Ensure schema_migrations table exists
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	version, err := currentVersion(ctx, db)
	if err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_roles.up.sql" -> 1
		var v int
		if _, err := fmt.Sscanf(name, "%d_", &v); err != nil {
			continue
		}
		if v <= version {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		logger.Debug("applied migration %s", name)
	}

	return nil
}
