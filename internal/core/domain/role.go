package domain

import "strings"

// RoleSeparator is reserved for multi-value encoding of role names
// (e.g. "--roles admin,editor") and may not appear in a role name.
const RoleSeparator = ","

// Role is a named role and the usernames that belong to it.
type Role struct {
	// Name is unique within a store under the active comparison policy.
	Name string

	// Users holds member usernames in insertion order.
	Users []string
}

// ValidateRoleName checks that name can be used as a role name.
func ValidateRoleName(name string) error {
	if name == "" || strings.Contains(name, RoleSeparator) {
		return ErrInvalidInput
	}
	return nil
}

// IsPopulated reports whether the role has at least one member.
func (r *Role) IsPopulated() bool {
	return len(r.Users) > 0
}

// Clone returns a deep copy of the role.
func (r *Role) Clone() Role {
	users := make([]string, len(r.Users))
	copy(users, r.Users)
	return Role{Name: r.Name, Users: users}
}

// CloneRoles returns a deep copy of roles.
func CloneRoles(roles []Role) []Role {
	if roles == nil {
		return nil
	}
	out := make([]Role, len(roles))
	for i := range roles {
		out[i] = roles[i].Clone()
	}
	return out
}
