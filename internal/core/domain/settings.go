package domain

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

const unknownDescription = "Unknown"

// StoreBackend identifies the storage technology behind the role store.
type StoreBackend string

// Available store backends.
const (
	// StoreBackendFile persists roles to a structured file (XML or TOML).
	StoreBackendFile StoreBackend = "file"

	// StoreBackendSQLite persists roles to a single-file SQLite database.
	StoreBackendSQLite StoreBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreBackendFile, StoreBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StoreBackend) Description() string {
	switch b {
	case StoreBackendFile:
		return "Structured file (XML or TOML)"
	case StoreBackendSQLite:
		return "SQLite database"
	default:
		return unknownDescription
	}
}

// StoreSettings describes where roles live and how they are matched.
// The composition root resolves these before constructing the directory.
type StoreSettings struct {
	// Backend selects the role store implementation.
	Backend StoreBackend

	// Path is the role file or database location. File backends also
	// accept afs URLs such as mem://localhost/roles.xml.
	Path string

	// CaseSensitive selects ordinal matching when true.
	CaseSensitive bool
}

// Comparison returns the comparison policy for these settings.
func (s StoreSettings) Comparison() Comparison {
	return ComparisonFor(s.CaseSensitive)
}

// Validate checks that the settings can be used to open a store.
func (s StoreSettings) Validate() error {
	if !s.Backend.IsValid() {
		return fmt.Errorf("%w: unknown store backend %q", ErrInvalidInput, s.Backend)
	}
	if s.Path == "" {
		return fmt.Errorf("%w: store path is empty", ErrInvalidInput)
	}
	if s.Backend == StoreBackendFile && !IsRoleFileExtension(path.Ext(s.Path)) {
		return fmt.Errorf("%w: unsupported role file extension %q (want .xml or .toml)", ErrInvalidInput, path.Ext(s.Path))
	}
	return nil
}

// IsRoleFileExtension reports whether ext names a role file format the
// file backend can read. The comparison ignores case.
func IsRoleFileExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".xml", ".toml":
		return true
	default:
		return false
	}
}

// DefaultStoreSettings returns the default settings for a given data directory.
func DefaultStoreSettings(dataDir string) StoreSettings {
	return StoreSettings{
		Backend:       StoreBackendFile,
		Path:          filepath.Join(dataDir, "roles.xml"),
		CaseSensitive: false,
	}
}
