package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/roster/internal/core/domain"
)

const legacyXML = `<?xml version="1.0" encoding="utf-8"?>
<roles>
    <role>
        <name>admins</name>
        <users>
            <user>alice</user>
            <user>bob</user>
        </users>
    </role>
    <role>
        <name>auditors</name>
    </role>
</roles>
`

const rolesTOML = `[[role]]
name = "admins"
users = ["alice", "bob"]

[[role]]
name = "auditors"
users = []
`

var fixtureRoles = []domain.Role{
	{Name: "admins", Users: []string{"alice", "bob"}},
	{Name: "auditors", Users: []string{}},
}

func TestNewRoleStore(t *testing.T) {
	tests := []struct {
		name     string
		location string
		wantErr  bool
	}{
		{"xml", "/tmp/roles.xml", false},
		{"toml", "/tmp/roles.toml", false},
		{"upper case extension", "/tmp/ROLES.XML", false},
		{"url", "file://localhost/tmp/roles.xml", false},
		{"empty", "", true},
		{"unsupported extension", "/tmp/roles.json", true},
		{"no extension", "/tmp/roles", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewRoleStore(tt.location)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				assert.Nil(t, store)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.location, store.Location())
		})
	}
}

func TestRoleStore_Load_MissingFileIsEmpty(t *testing.T) {
	store, err := NewRoleStore(filepath.Join(t.TempDir(), "roles.xml"))
	require.NoError(t, err)

	roles, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, roles)
	assert.Empty(t, roles)
}

func TestRoleStore_Load_BlankFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.toml")
	require.NoError(t, os.WriteFile(path, []byte("\n  \n"), 0600))
	store, err := NewRoleStore(path)
	require.NoError(t, err)

	roles, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestRoleStore_Load_LegacyXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.xml")
	require.NoError(t, os.WriteFile(path, []byte(legacyXML), 0600))
	store, err := NewRoleStore(path)
	require.NoError(t, err)

	roles, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fixtureRoles, roles)
}

func TestRoleStore_Load_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.toml")
	require.NoError(t, os.WriteFile(path, []byte(rolesTOML), 0600))
	store, err := NewRoleStore(path)
	require.NoError(t, err)

	roles, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, fixtureRoles, roles)
}

func TestRoleStore_Load_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"truncated xml", "roles.xml", "<roles><role><name>admins</name>"},
		{"not xml", "roles.xml", "admins: [alice]"},
		{"broken toml", "roles.toml", "[[role]\nname = "},
		{"wrong toml type", "roles.toml", "[[role]]\nname = 42\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))
			store, err := NewRoleStore(path)
			require.NoError(t, err)

			_, err = store.Load(context.Background())

			assert.ErrorIs(t, err, domain.ErrStoreCorrupt)
		})
	}
}

func TestRoleStore_Load_IsCached(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.xml")
	require.NoError(t, os.WriteFile(path, []byte(legacyXML), 0600))
	store, err := NewRoleStore(path)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.Load(ctx)
	require.NoError(t, err)

	// External edits are not picked up after the first load
	require.NoError(t, os.WriteFile(path, []byte("<roles></roles>"), 0600))
	roles, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, 2)
}

func TestRoleStore_SaveThenReload(t *testing.T) {
	for _, name := range []string{"roles.xml", "roles.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			ctx := context.Background()

			store, err := NewRoleStore(path)
			require.NoError(t, err)
			require.NoError(t, store.Save(ctx, fixtureRoles))

			reopened, err := NewRoleStore(path)
			require.NoError(t, err)
			roles, err := reopened.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, fixtureRoles, roles)

			// No temp file left behind
			_, err = os.Stat(path + ".tmp")
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestRoleStore_RoundTripIsLossless(t *testing.T) {
	for _, name := range []string{"roles.xml", "roles.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			ctx := context.Background()

			first, err := NewRoleStore(path)
			require.NoError(t, err)
			require.NoError(t, first.Save(ctx, fixtureRoles))
			original, err := os.ReadFile(path)
			require.NoError(t, err)

			second, err := NewRoleStore(path)
			require.NoError(t, err)
			roles, err := second.Load(ctx)
			require.NoError(t, err)
			require.NoError(t, second.Save(ctx, roles))

			rewritten, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, string(original), string(rewritten))
		})
	}
}

func TestRoleStore_LegacyXMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roles.xml")
	require.NoError(t, os.WriteFile(path, []byte(legacyXML), 0600))
	ctx := context.Background()

	store, err := NewRoleStore(path)
	require.NoError(t, err)
	roles, err := store.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, roles))

	// Same data after a rewrite, whitespace aside
	roles, err = ReadRoles(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, fixtureRoles, roles)
}

func TestRoleStore_Save_Unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0600))

	store, err := NewRoleStore(filepath.Join(blocker, "roles.xml"))
	require.NoError(t, err)
	ctx := context.Background()

	err = store.Save(ctx, fixtureRoles)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)

	// Memory keeps the unsaved state
	roles, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, fixtureRoles, roles)
}

func TestRoleStore_Close(t *testing.T) {
	store, err := NewRoleStore(filepath.Join(t.TempDir(), "roles.xml"))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrStoreClosed)
	assert.ErrorIs(t, store.Save(ctx, nil), domain.ErrStoreClosed)
}

func TestReadRoles_Missing(t *testing.T) {
	roles, err := ReadRoles(context.Background(), filepath.Join(t.TempDir(), "roles.toml"))

	require.NoError(t, err)
	assert.Empty(t, roles)
}
