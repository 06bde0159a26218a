package file

import (
	"bytes"
	"context"
	"fmt"

	"github.com/viant/afs"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
	"github.com/custodia-labs/roster/internal/logger"
)

// Ensure RoleStore implements the interface.
var _ driven.RoleStore = (*RoleStore)(nil)

// RoleStore keeps roles in memory and mirrors them to a structured file.
type RoleStore struct {
	fs       afs.Service
	location string
	codec    codec

	roles  []domain.Role
	loaded bool
	closed bool
}

// NewRoleStore creates a role store for the file at location. Nothing is
// read until the first Load.
func NewRoleStore(location string) (*RoleStore, error) {
	if location == "" {
		return nil, fmt.Errorf("%w: role file location is empty", domain.ErrInvalidInput)
	}
	c, err := codecFor(location)
	if err != nil {
		return nil, err
	}
	return &RoleStore{
		fs:       afs.New(),
		location: location,
		codec:    c,
	}, nil
}

// Load returns the in-memory roles, reading the file on first use.
// A missing or blank file is an empty store.
func (s *RoleStore) Load(ctx context.Context) ([]domain.Role, error) {
	if s.closed {
		return nil, domain.ErrStoreClosed
	}
	if s.loaded {
		return s.roles, nil
	}

	roles, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	s.roles = roles
	s.loaded = true
	logger.Debug("loaded %d roles from %s", len(roles), s.location)
	return s.roles, nil
}

// read loads roles from the file without touching the cache.
func (s *RoleStore) read(ctx context.Context) ([]domain.Role, error) {
	exists, err := s.fs.Exists(ctx, s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: checking %s: %w", domain.ErrStoreUnavailable, s.location, err)
	}
	if !exists {
		return []domain.Role{}, nil
	}

	data, err := s.fs.DownloadWithURL(ctx, s.location)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrStoreUnavailable, s.location, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Role{}, nil
	}

	roles, err := s.codec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", domain.ErrStoreCorrupt, s.location, err)
	}
	return roles, nil
}

// Save replaces the in-memory roles and overwrites the file with the full
// state. The file is written to a sibling temp location and moved into
// place.
func (s *RoleStore) Save(ctx context.Context, roles []domain.Role) error {
	if s.closed {
		return domain.ErrStoreClosed
	}
	s.roles = roles
	s.loaded = true

	data, err := s.codec.Encode(roles)
	if err != nil {
		return fmt.Errorf("%w: encoding roles: %w", domain.ErrStoreUnavailable, err)
	}

	tmp := s.location + ".tmp"
	if err := s.fs.Upload(ctx, tmp, 0600, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("%w: writing %s: %w", domain.ErrStoreUnavailable, tmp, err)
	}
	if err := s.fs.Move(ctx, tmp, s.location); err != nil {
		return fmt.Errorf("%w: replacing %s: %w", domain.ErrStoreUnavailable, s.location, err)
	}

	logger.Debug("saved %d roles to %s", len(roles), s.location)
	return nil
}

// Close releases the store. It is idempotent.
func (s *RoleStore) Close() error {
	s.closed = true
	s.roles = nil
	return nil
}

// Location returns the role file location.
func (s *RoleStore) Location() string {
	return s.location
}

// ReadRoles reads the roles at location once, without caching. It is used
// by observers that must not share the directory's store.
func ReadRoles(ctx context.Context, location string) ([]domain.Role, error) {
	store, err := NewRoleStore(location)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.read(ctx)
}
