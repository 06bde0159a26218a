package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/roster/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for roster resources.
	uriScheme = "roster://"
)

// roleInfo is the JSON shape of a role in resources.
type roleInfo struct {
	Name  string   `json:"name"`
	Users []string `json:"users"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "roles",
		Name:        "roles",
		Description: "All roles with their members",
		MIMEType:    "application/json",
	}, s.handleRolesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "roles/{name}/users",
		Name:        "role-users",
		Description: "Members of a specific role",
		MIMEType:    "application/json",
	}, s.handleRoleUsersResource)
}

// handleRolesResource returns every role with its members.
func (s *Server) handleRolesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	names, err := s.ports.Directory.GetAllRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}

	infos := make([]roleInfo, 0, len(names))
	for _, name := range names {
		role, ok, err := s.ports.Directory.GetRole(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("getting role %q: %w", name, err)
		}
		if !ok {
			// Deleted between the two calls.
			continue
		}
		infos = append(infos, roleInfo{Name: role.Name, Users: nonNil(role.Users)})
	}

	return jsonResult(req.Params.URI, infos)
}

// handleRoleUsersResource returns the members of one role.
func (s *Server) handleRoleUsersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	name := extractRoleName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	users, err := s.ports.Directory.GetUsersInRole(ctx, name)
	if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	return jsonResult(req.Params.URI, roleInfo{Name: name, Users: nonNil(users)})
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRoleName extracts the role name from a URI like roster://roles/{name}/users.
func extractRoleName(uri string) string {
	const prefix = uriScheme + "roles/"
	const suffix = "/users"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	name, err := url.PathUnescape(strings.TrimSuffix(uri, suffix))
	if err != nil {
		return ""
	}
	return name
}

func nonNil(users []string) []string {
	if users == nil {
		return []string{}
	}
	return users
}
