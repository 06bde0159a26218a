package mcp

import (
	"context"

	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driving"
)

var _ driving.RoleDirectory = (*mockDirectory)(nil)

// mockDirectory is a mock implementation of driving.RoleDirectory that
// fails every call with err.
type mockDirectory struct {
	err error
}

func (m *mockDirectory) CreateRole(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDirectory) DeleteRole(_ context.Context, _ string, _ bool) (bool, error) {
	return false, m.err
}

func (m *mockDirectory) AddUsersToRoles(_ context.Context, _, _ []string) error {
	return m.err
}

func (m *mockDirectory) RemoveUsersFromRoles(_ context.Context, _, _ []string) error {
	return m.err
}

func (m *mockDirectory) GetAllRoles(_ context.Context) ([]string, error) {
	return nil, m.err
}

func (m *mockDirectory) RoleExists(_ context.Context, _ string) (bool, error) {
	return false, m.err
}

func (m *mockDirectory) GetRole(_ context.Context, _ string) (*domain.Role, bool, error) {
	return nil, false, m.err
}

func (m *mockDirectory) GetUsersInRole(_ context.Context, _ string) ([]string, error) {
	return nil, m.err
}

func (m *mockDirectory) IsUserInRole(_ context.Context, _, _ string) (bool, error) {
	return false, m.err
}

func (m *mockDirectory) GetRolesForUser(_ context.Context, _ string) ([]string, error) {
	return nil, m.err
}

func (m *mockDirectory) FindUsersInRole(_ context.Context, _, _ string) ([]string, error) {
	return nil, m.err
}

func (m *mockDirectory) Comparison() domain.Comparison {
	return domain.ComparisonIgnoreCase
}
