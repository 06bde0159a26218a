package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/roster/internal/core/domain"
)

func TestPane_String(t *testing.T) {
	tests := []struct {
		pane Pane
		want string
	}{
		{PaneRoles, "roles"},
		{PaneMembers, "members"},
		{Pane(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pane.String())
		})
	}
}

func TestRolesLoaded(t *testing.T) {
	msg := RolesLoaded{Roles: []domain.Role{{Name: "admins", Users: []string{"alice"}}}}

	assert.Len(t, msg.Roles, 1)
	assert.NoError(t, msg.Err)
}

func TestUsersFound_CarriesError(t *testing.T) {
	err := errors.New("boom")
	msg := UsersFound{Role: "admins", Pattern: "al", Err: err}

	assert.ErrorIs(t, msg.Err, err)
	assert.Nil(t, msg.Users)
}
