package driven

import (
	"context"

	"github.com/custodia-labs/roster/internal/core/domain"
)

// RoleStore owns the canonical in-memory list of roles and mirrors it to
// persistent storage.
//
// Implementations are not safe for concurrent use; the caller serialises
// access (the role directory holds one lock across Load and Save).
type RoleStore interface {
	// Load returns the in-memory roles, reading storage on the first call.
	// Missing storage is an empty store. Unparsable data wraps
	// domain.ErrStoreCorrupt; unreadable storage wraps domain.ErrStoreUnavailable.
	Load(ctx context.Context) ([]domain.Role, error)

	// Save replaces the in-memory roles and overwrites storage with the full
	// state. The in-memory copy is replaced even if the write fails.
	// Write failures wrap domain.ErrStoreUnavailable.
	Save(ctx context.Context, roles []domain.Role) error

	// Close releases held resources. It is idempotent.
	Close() error

	// Location returns the storage location (file path, URL or DSN).
	Location() string
}
