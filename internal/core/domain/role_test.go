package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRoleName(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		wantErr bool
	}{
		{"simple name", "admin", false},
		{"name with spaces", "power users", false},
		{"unicode name", "Straße", false},
		{"empty name", "", true},
		{"contains separator", "admin,editor", true},
		{"only separator", ",", true},
		{"trailing separator", "admin,", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoleName(tt.role)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRole_IsPopulated(t *testing.T) {
	assert.False(t, (&Role{Name: "empty"}).IsPopulated())
	assert.False(t, (&Role{Name: "empty", Users: []string{}}).IsPopulated())
	assert.True(t, (&Role{Name: "admins", Users: []string{"alice"}}).IsPopulated())
}

func TestRole_Clone(t *testing.T) {
	original := Role{Name: "admins", Users: []string{"alice", "bob"}}

	clone := original.Clone()
	clone.Users[0] = "mallory"

	assert.Equal(t, "admins", clone.Name)
	assert.Equal(t, "alice", original.Users[0])
}

func TestRole_Clone_NilUsers(t *testing.T) {
	clone := (&Role{Name: "empty"}).Clone()

	assert.NotNil(t, clone.Users)
	assert.Empty(t, clone.Users)
}

func TestCloneRoles(t *testing.T) {
	assert.Nil(t, CloneRoles(nil))

	roles := []Role{
		{Name: "admins", Users: []string{"alice"}},
		{Name: "editors"},
	}
	clone := CloneRoles(roles)
	clone[0].Users = append(clone[0].Users, "bob")

	assert.Len(t, clone, 2)
	assert.Equal(t, []string{"alice"}, roles[0].Users)
}
