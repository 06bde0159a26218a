package mcp

import (
	"github.com/custodia-labs/roster/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
type Ports struct {
	// Directory manages roles and memberships.
	Directory driving.RoleDirectory
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Directory == nil {
		return ErrMissingDirectory
	}
	return nil
}
