package memory

import (
	"context"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
)

// Ensure RoleStore implements the interface.
var _ driven.RoleStore = (*RoleStore)(nil)

// RoleStore is an in-memory implementation of driven.RoleStore for testing.
// Saved states are kept so tests can assert on write-through behaviour.
type RoleStore struct {
	seed   []domain.Role
	roles  []domain.Role
	loaded bool
	closed bool

	// Saves holds a copy of every state passed to Save, in order.
	Saves [][]domain.Role

	// Loads counts reads of the backing "storage".
	Loads int

	// LoadErr, when set, is returned by the first Load.
	LoadErr error

	// SaveErr, when set, is returned by Save after the in-memory state is replaced.
	SaveErr error
}

// NewRoleStore creates an in-memory role store primed with roles.
func NewRoleStore(roles ...domain.Role) *RoleStore {
	return &RoleStore{seed: domain.CloneRoles(roles)}
}

// Load returns the in-memory roles, copying the seed on first use.
func (s *RoleStore) Load(_ context.Context) ([]domain.Role, error) {
	if s.closed {
		return nil, domain.ErrStoreClosed
	}
	if !s.loaded {
		s.Loads++
		if s.LoadErr != nil {
			return nil, s.LoadErr
		}
		s.roles = domain.CloneRoles(s.seed)
		if s.roles == nil {
			s.roles = []domain.Role{}
		}
		s.loaded = true
	}
	return s.roles, nil
}

// Save replaces the in-memory roles and records the saved state.
func (s *RoleStore) Save(_ context.Context, roles []domain.Role) error {
	if s.closed {
		return domain.ErrStoreClosed
	}
	s.roles = roles
	s.loaded = true
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Saves = append(s.Saves, domain.CloneRoles(roles))
	return nil
}

// Close marks the store closed. It is idempotent.
func (s *RoleStore) Close() error {
	s.closed = true
	return nil
}

// Location returns the storage location.
func (s *RoleStore) Location() string {
	return ":memory:"
}

// Closed reports whether Close has been called.
func (s *RoleStore) Closed() bool {
	return s.closed
}

// LastSaved returns the most recently saved state, or nil if nothing was saved.
func (s *RoleStore) LastSaved() []domain.Role {
	if len(s.Saves) == 0 {
		return nil
	}
	return s.Saves[len(s.Saves)-1]
}
