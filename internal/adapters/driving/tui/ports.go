// Package tui provides an interactive terminal user interface for roster.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/roster/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Directory manages roles and memberships.
	Directory driving.RoleDirectory

	// Settings describes where roles are stored. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Directory == nil {
		return ErrMissingDirectory
	}
	return nil
}
