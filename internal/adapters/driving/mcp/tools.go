package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RoleInput names a single role.
type RoleInput struct {
	Role string `json:"role" jsonschema:"the role name"`
}

// DeleteRoleInput is the input schema for the delete_role tool.
type DeleteRoleInput struct {
	Role            string `json:"role" jsonschema:"the role name"`
	FailIfPopulated bool   `json:"fail_if_populated,omitempty" jsonschema:"refuse to delete a role that still has members"`
}

// MembershipInput is the input schema for the bulk membership tools.
type MembershipInput struct {
	Usernames []string `json:"usernames" jsonschema:"the users to add or remove"`
	Roles     []string `json:"roles" jsonschema:"the roles to change"`
}

// UserInput names a single user.
type UserInput struct {
	Username string `json:"username" jsonschema:"the username"`
}

// UserRoleInput is the input schema for the is_user_in_role tool.
type UserRoleInput struct {
	Username string `json:"username" jsonschema:"the username"`
	Role     string `json:"role" jsonschema:"the role name"`
}

// FindUsersInput is the input schema for the find_users_in_role tool.
type FindUsersInput struct {
	Role            string `json:"role" jsonschema:"the role name"`
	UsernameToMatch string `json:"username_to_match" jsonschema:"substring to look for in member usernames"`
}

// RolesOutput lists role names.
type RolesOutput struct {
	Roles []string `json:"roles"`
	Count int      `json:"count"`
}

// UsersOutput lists the members of a role.
type UsersOutput struct {
	Role  string   `json:"role"`
	Users []string `json:"users"`
	Count int      `json:"count"`
}

// StatusOutput reports the outcome of a mutation.
type StatusOutput struct {
	Message string `json:"message"`
}

// DeleteRoleOutput reports whether a role was removed.
type DeleteRoleOutput struct {
	Role    string `json:"role"`
	Deleted bool   `json:"deleted"`
}

// RoleExistsOutput reports whether a role exists.
type RoleExistsOutput struct {
	Role   string `json:"role"`
	Exists bool   `json:"exists"`
}

// MembershipOutput reports whether a user belongs to a role.
type MembershipOutput struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	InRole   bool   `json:"in_role"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_roles",
		Description: "List the names of all roles",
	}, s.handleListRoles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "create_role",
		Description: "Create a new empty role",
	}, s.handleCreateRole)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "delete_role",
		Description: "Delete a role, optionally refusing when it has members",
	}, s.handleDeleteRole)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "role_exists",
		Description: "Check whether a role exists",
	}, s.handleRoleExists)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_users_in_role",
		Description: "List the members of a role",
	}, s.handleGetUsersInRole)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_users_to_roles",
		Description: "Add every user to every listed role",
	}, s.handleAddUsersToRoles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_users_from_roles",
		Description: "Remove every user from every listed role",
	}, s.handleRemoveUsersFromRoles)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "is_user_in_role",
		Description: "Check whether a user is a member of a role",
	}, s.handleIsUserInRole)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_roles_for_user",
		Description: "List the roles a user belongs to",
	}, s.handleGetRolesForUser)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_users_in_role",
		Description: "Find members of a role whose username contains a substring",
	}, s.handleFindUsersInRole)
}

func (s *Server) handleListRoles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, RolesOutput, error) {
	names, err := s.ports.Directory.GetAllRoles(ctx)
	if err != nil {
		return nil, RolesOutput{}, err
	}
	return nil, newRolesOutput(names), nil
}

func (s *Server) handleCreateRole(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RoleInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	if err := s.ports.Directory.CreateRole(ctx, input.Role); err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{Message: fmt.Sprintf("created role %q", input.Role)}, nil
}

func (s *Server) handleDeleteRole(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteRoleInput,
) (*mcp.CallToolResult, DeleteRoleOutput, error) {
	deleted, err := s.ports.Directory.DeleteRole(ctx, input.Role, input.FailIfPopulated)
	if err != nil {
		return nil, DeleteRoleOutput{}, err
	}
	return nil, DeleteRoleOutput{Role: input.Role, Deleted: deleted}, nil
}

func (s *Server) handleRoleExists(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RoleInput,
) (*mcp.CallToolResult, RoleExistsOutput, error) {
	exists, err := s.ports.Directory.RoleExists(ctx, input.Role)
	if err != nil {
		return nil, RoleExistsOutput{}, err
	}
	return nil, RoleExistsOutput{Role: input.Role, Exists: exists}, nil
}

func (s *Server) handleGetUsersInRole(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RoleInput,
) (*mcp.CallToolResult, UsersOutput, error) {
	users, err := s.ports.Directory.GetUsersInRole(ctx, input.Role)
	if err != nil {
		return nil, UsersOutput{}, err
	}
	return nil, newUsersOutput(input.Role, users), nil
}

func (s *Server) handleAddUsersToRoles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MembershipInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	if err := s.ports.Directory.AddUsersToRoles(ctx, input.Usernames, input.Roles); err != nil {
		return nil, StatusOutput{}, err
	}
	msg := fmt.Sprintf("added %d user(s) to %d role(s)", len(input.Usernames), len(input.Roles))
	return nil, StatusOutput{Message: msg}, nil
}

func (s *Server) handleRemoveUsersFromRoles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MembershipInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	if err := s.ports.Directory.RemoveUsersFromRoles(ctx, input.Usernames, input.Roles); err != nil {
		return nil, StatusOutput{}, err
	}
	msg := fmt.Sprintf("removed %d user(s) from %d role(s)", len(input.Usernames), len(input.Roles))
	return nil, StatusOutput{Message: msg}, nil
}

func (s *Server) handleIsUserInRole(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UserRoleInput,
) (*mcp.CallToolResult, MembershipOutput, error) {
	inRole, err := s.ports.Directory.IsUserInRole(ctx, input.Username, input.Role)
	if err != nil {
		return nil, MembershipOutput{}, err
	}
	return nil, MembershipOutput{Username: input.Username, Role: input.Role, InRole: inRole}, nil
}

func (s *Server) handleGetRolesForUser(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UserInput,
) (*mcp.CallToolResult, RolesOutput, error) {
	names, err := s.ports.Directory.GetRolesForUser(ctx, input.Username)
	if err != nil {
		return nil, RolesOutput{}, err
	}
	return nil, newRolesOutput(names), nil
}

func (s *Server) handleFindUsersInRole(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindUsersInput,
) (*mcp.CallToolResult, UsersOutput, error) {
	users, err := s.ports.Directory.FindUsersInRole(ctx, input.Role, input.UsernameToMatch)
	if err != nil {
		return nil, UsersOutput{}, err
	}
	return nil, newUsersOutput(input.Role, users), nil
}

// Structured output must not carry null arrays.
func newRolesOutput(names []string) RolesOutput {
	if names == nil {
		names = []string{}
	}
	return RolesOutput{Roles: names, Count: len(names)}
}

func newUsersOutput(role string, users []string) UsersOutput {
	if users == nil {
		users = []string{}
	}
	return UsersOutput{Role: role, Users: users, Count: len(users)}
}
