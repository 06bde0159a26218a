package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/roster/internal/core/domain"
)

func TestExtractRoleName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid uri", "roster://roles/admins/users", "admins"},
		{"escaped name", "roster://roles/site%20admins/users", "site admins"},
		{"wrong scheme", "other://roles/admins/users", ""},
		{"missing suffix", "roster://roles/admins", ""},
		{"empty name", "roster://roles//users", ""},
		{"bad escape", "roster://roles/%zz/users", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractRoleName(tt.uri))
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleRolesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("empty directory returns empty list", func(t *testing.T) {
		server := newTestServer(t)

		result, err := server.handleRolesResource(ctx, makeReadResourceRequest("roster://roles"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "[]", result.Contents[0].Text)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
	})

	t.Run("returns roles with members", func(t *testing.T) {
		server := newTestServer(t,
			domain.Role{Name: "admins", Users: []string{"alice"}},
			domain.Role{Name: "empty", Users: []string{}},
		)

		result, err := server.handleRolesResource(ctx, makeReadResourceRequest("roster://roles"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.JSONEq(t,
			`[{"name":"admins","users":["alice"]},{"name":"empty","users":[]}]`,
			result.Contents[0].Text)
	})

	t.Run("directory error", func(t *testing.T) {
		server, err := NewServer(&Ports{Directory: &mockDirectory{err: errors.New("down")}})
		require.NoError(t, err)

		_, err = server.handleRolesResource(ctx, makeReadResourceRequest("roster://roles"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing roles")
	})
}

func TestServer_handleRoleUsersResource(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t, domain.Role{Name: "admins", Users: []string{"alice", "bob"}})

	t.Run("returns members", func(t *testing.T) {
		uri := "roster://roles/ADMINS/users"
		result, err := server.handleRoleUsersResource(ctx, makeReadResourceRequest(uri))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, uri, result.Contents[0].URI)
		assert.JSONEq(t, `{"name":"ADMINS","users":["alice","bob"]}`, result.Contents[0].Text)
	})

	t.Run("unknown role is not found", func(t *testing.T) {
		_, err := server.handleRoleUsersResource(ctx, makeReadResourceRequest("roster://roles/ghosts/users"))
		require.Error(t, err)
	})

	t.Run("malformed uri is not found", func(t *testing.T) {
		_, err := server.handleRoleUsersResource(ctx, makeReadResourceRequest("roster://roles/admins"))
		require.Error(t, err)
	})
}
