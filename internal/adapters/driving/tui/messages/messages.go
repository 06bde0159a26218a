// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/roster/internal/core/domain"
)

// RolesLoaded carries every role with its members.
type RolesLoaded struct {
	Roles []domain.Role
	Err   error
}

// RoleSelected is sent when the highlighted role changes.
type RoleSelected struct {
	Name string
}

// UsersFound carries the result of a member filter.
type UsersFound struct {
	Role    string
	Pattern string
	Users   []string
	Err     error
}

// FilterCleared is sent when the member filter is removed.
type FilterCleared struct{}

// Pane identifies which pane has focus.
type Pane int

const (
	// PaneRoles is the role list.
	PaneRoles Pane = iota
	// PaneMembers is the member list of the selected role.
	PaneMembers
)

// String returns the string representation of the pane.
func (p Pane) String() string {
	switch p {
	case PaneRoles:
		return "roles"
	case PaneMembers:
		return "members"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
