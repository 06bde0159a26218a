// Package mcp provides an MCP (Model Context Protocol) server adapter for roster.
// It lets AI assistants query and manage roles and their members.
package mcp

import "errors"

// ErrMissingDirectory is returned when the role directory is not provided.
var ErrMissingDirectory = errors.New("mcp: role directory is required")
