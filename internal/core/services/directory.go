package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driven"
	"github.com/custodia-labs/roster/internal/core/ports/driving"
	"github.com/custodia-labs/roster/internal/logger"
)

// Ensure Directory implements the interface.
var _ driving.RoleDirectory = (*Directory)(nil)

// Directory is the role directory. It owns the role store and serialises
// every operation, from the first read of the roles through the
// write-through save, on a single mutex.
//
// A failed save is not rolled back: memory is left ahead of storage and
// the error is returned to the caller.
type Directory struct {
	mu     sync.Mutex
	store  driven.RoleStore
	policy domain.Comparison
}

// NewDirectory creates a role directory over store using the given
// comparison policy. The directory takes ownership of the store; Close
// closes it.
func NewDirectory(store driven.RoleStore, policy domain.Comparison) (*Directory, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: role store is required", domain.ErrInvalidInput)
	}
	if !policy.IsValid() {
		return nil, fmt.Errorf("%w: unknown comparison policy %q", domain.ErrInvalidInput, policy)
	}
	return &Directory{
		store:  store,
		policy: policy,
	}, nil
}

// Comparison returns the active comparison policy.
func (d *Directory) Comparison() domain.Comparison {
	return d.policy
}

// CreateRole adds an empty role.
func (d *Directory) CreateRole(ctx context.Context, name string) error {
	if err := domain.ValidateRoleName(name); err != nil {
		return fmt.Errorf("%w: role name %q", err, name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	roles, err := d.store.Load(ctx)
	if err != nil {
		return err
	}
	if i := d.policy.IndexOfRole(roles, name); i >= 0 {
		return fmt.Errorf("role %q: %w", roles[i].Name, domain.ErrAlreadyExists)
	}

	roles = append(roles, domain.Role{Name: name, Users: []string{}})
	logger.Debug("creating role %q", name)
	return d.store.Save(ctx, roles)
}

// DeleteRole removes a role.
func (d *Directory) DeleteRole(ctx context.Context, name string, failIfPopulated bool) (bool, error) {
	if name == "" {
		return false, fmt.Errorf("%w: role name is empty", domain.ErrInvalidInput)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	roles, err := d.store.Load(ctx)
	if err != nil {
		return false, err
	}
	i := d.policy.IndexOfRole(roles, name)
	if i < 0 {
		return false, nil
	}
	if failIfPopulated && roles[i].IsPopulated() {
		return false, fmt.Errorf("role %q has %d members: %w", roles[i].Name, len(roles[i].Users), domain.ErrPopulatedRole)
	}

	logger.Debug("deleting role %q", roles[i].Name)
	roles = slices.Delete(roles, i, i+1)
	if err := d.store.Save(ctx, roles); err != nil {
		return false, err
	}
	return true, nil
}

// AddUsersToRoles adds every username to every existing named role.
// Usernames already present are skipped and roles that do not exist are
// ignored. Storage is written once.
func (d *Directory) AddUsersToRoles(ctx context.Context, usernames, roleNames []string) error {
	if err := validateBulk(usernames, roleNames); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	roles, err := d.store.Load(ctx)
	if err != nil {
		return err
	}
	for i := range roles {
		if d.policy.IndexOf(roleNames, roles[i].Name) < 0 {
			continue
		}
		for _, username := range usernames {
			if d.policy.IndexOf(roles[i].Users, username) < 0 {
				roles[i].Users = append(roles[i].Users, username)
			}
		}
	}

	logger.Debug("adding %d users to %d roles", len(usernames), len(roleNames))
	return d.store.Save(ctx, roles)
}

// RemoveUsersFromRoles removes every username from every existing named
// role. Unknown roles and non-members are ignored. Storage is written once.
func (d *Directory) RemoveUsersFromRoles(ctx context.Context, usernames, roleNames []string) error {
	if err := validateBulk(usernames, roleNames); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	roles, err := d.store.Load(ctx)
	if err != nil {
		return err
	}
	for i := range roles {
		if d.policy.IndexOf(roleNames, roles[i].Name) < 0 {
			continue
		}
		roles[i].Users = slices.DeleteFunc(roles[i].Users, func(user string) bool {
			return d.policy.IndexOf(usernames, user) >= 0
		})
	}

	logger.Debug("removing %d users from %d roles", len(usernames), len(roleNames))
	return d.store.Save(ctx, roles)
}

// GetAllRoles returns all role names in store order.
func (d *Directory) GetAllRoles(ctx context.Context) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	roles, err := d.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(roles))
	for i := range roles {
		names[i] = roles[i].Name
	}
	return names, nil
}

// RoleExists reports whether a role with the name exists.
func (d *Directory) RoleExists(ctx context.Context, name string) (bool, error) {
	_, ok, err := d.GetRole(ctx, name)
	return ok, err
}

// GetRole returns a copy of the matching role. Absence is not an error.
func (d *Directory) GetRole(ctx context.Context, name string) (*domain.Role, bool, error) {
	if name == "" {
		return nil, false, fmt.Errorf("%w: role name is empty", domain.ErrInvalidInput)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	role, err := d.lookup(ctx, name)
	if err != nil || role == nil {
		return nil, false, err
	}
	clone := role.Clone()
	return &clone, true, nil
}

// GetUsersInRole returns the members of a role.
func (d *Directory) GetUsersInRole(ctx context.Context, name string) ([]string, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: role name is empty", domain.ErrInvalidInput)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	role, err := d.requireRole(ctx, name)
	if err != nil {
		return nil, err
	}
	return slices.Clone(role.Users), nil
}

// IsUserInRole reports whether username is a member of roleName.
func (d *Directory) IsUserInRole(ctx context.Context, username, roleName string) (bool, error) {
	if username == "" {
		return false, fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}
	if roleName == "" {
		return false, fmt.Errorf("%w: role name is empty", domain.ErrInvalidInput)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	role, err := d.requireRole(ctx, roleName)
	if err != nil {
		return false, err
	}
	return d.policy.IndexOf(role.Users, username) >= 0, nil
}

// GetRolesForUser returns the names of all roles containing username.
func (d *Directory) GetRolesForUser(ctx context.Context, username string) ([]string, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is empty", domain.ErrInvalidInput)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	roles, err := d.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for i := range roles {
		if d.policy.IndexOf(roles[i].Users, username) >= 0 {
			names = append(names, roles[i].Name)
		}
	}
	return names, nil
}

// FindUsersInRole returns members of roleName whose username contains
// usernameToMatch. A role that does not exist yields an empty result.
func (d *Directory) FindUsersInRole(ctx context.Context, roleName, usernameToMatch string) ([]string, error) {
	if roleName == "" {
		return nil, fmt.Errorf("%w: role name is empty", domain.ErrInvalidInput)
	}
	if usernameToMatch == "" {
		return nil, fmt.Errorf("%w: username to match is empty", domain.ErrInvalidInput)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	role, err := d.lookup(ctx, roleName)
	if err != nil {
		return nil, err
	}
	matches := []string{}
	if role == nil {
		return matches, nil
	}
	for _, user := range role.Users {
		if d.policy.Contains(user, usernameToMatch) {
			matches = append(matches, user)
		}
	}
	return matches, nil
}

// Close closes the underlying role store. It is idempotent.
func (d *Directory) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.store.Close()
}

// lookup finds a role by name (caller must hold lock). It returns nil when
// no role matches.
func (d *Directory) lookup(ctx context.Context, name string) (*domain.Role, error) {
	roles, err := d.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if i := d.policy.IndexOfRole(roles, name); i >= 0 {
		return &roles[i], nil
	}
	return nil, nil
}

// requireRole is lookup for operations that need the role to exist
// (caller must hold lock).
func (d *Directory) requireRole(ctx context.Context, name string) (*domain.Role, error) {
	role, err := d.lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("role %q: %w", name, domain.ErrNotFound)
	}
	return role, nil
}

// validateBulk checks the arguments of the bulk membership operations.
func validateBulk(usernames, roleNames []string) error {
	if usernames == nil {
		return fmt.Errorf("%w: usernames is nil", domain.ErrInvalidInput)
	}
	if roleNames == nil {
		return fmt.Errorf("%w: role names is nil", domain.ErrInvalidInput)
	}
	var errs []error
	for _, u := range usernames {
		if u == "" {
			errs = append(errs, errors.New("username is empty"))
			break
		}
	}
	for _, r := range roleNames {
		if r == "" {
			errs = append(errs, errors.New("role name is empty"))
			break
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", domain.ErrInvalidInput, errors.Join(errs...))
	}
	return nil
}
