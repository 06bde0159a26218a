package driving

import (
	"context"

	"github.com/custodia-labs/roster/internal/core/domain"
)

// RoleDirectory manages roles and their members.
//
// Role names and usernames are matched with the directory's comparison
// policy. Bulk operations skip roles that do not exist; single-role lookups
// return domain.ErrNotFound.
type RoleDirectory interface {
	// CreateRole adds an empty role.
	CreateRole(ctx context.Context, name string) error

	// DeleteRole removes a role. It reports false when the role does not
	// exist. With failIfPopulated set, a role with members is left in place
	// and domain.ErrPopulatedRole is returned.
	DeleteRole(ctx context.Context, name string, failIfPopulated bool) (bool, error)

	// AddUsersToRoles adds every username to every existing named role.
	AddUsersToRoles(ctx context.Context, usernames, roleNames []string) error

	// RemoveUsersFromRoles removes every username from every existing named role.
	RemoveUsersFromRoles(ctx context.Context, usernames, roleNames []string) error

	// GetAllRoles returns all role names in store order.
	GetAllRoles(ctx context.Context) ([]string, error)

	// RoleExists reports whether a role with the name exists.
	RoleExists(ctx context.Context, name string) (bool, error)

	// GetRole returns a copy of the matching role, or false if none matches.
	GetRole(ctx context.Context, name string) (*domain.Role, bool, error)

	// GetUsersInRole returns the members of a role.
	GetUsersInRole(ctx context.Context, name string) ([]string, error)

	// IsUserInRole reports whether username is a member of roleName.
	IsUserInRole(ctx context.Context, username, roleName string) (bool, error)

	// GetRolesForUser returns the names of all roles containing username.
	GetRolesForUser(ctx context.Context, username string) ([]string, error)

	// FindUsersInRole returns members of roleName containing usernameToMatch.
	// A missing role yields an empty result.
	FindUsersInRole(ctx context.Context, roleName, usernameToMatch string) ([]string, error)

	// Comparison returns the active comparison policy.
	Comparison() domain.Comparison
}
