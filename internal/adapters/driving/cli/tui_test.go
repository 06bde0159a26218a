package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"

	"github.com/custodia-labs/roster/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui"
	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/services"
)

func TestTUICmd_Exists(t *testing.T) {
	// Verify the tui command is registered
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Use == "tui" {
			found = true
			break
		}
	}
	assert.True(t, found, "tui command should be registered")
}

func TestTUICmd_ShortDescription(t *testing.T) {
	assert.Equal(t, "Launch the interactive terminal UI", tuiCmd.Short)
}

func TestTUICmd_LongDescription(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "interactive role browser")
	assert.Contains(t, tuiCmd.Long, "Controls:")
}

func TestSetTUIConfig(t *testing.T) {
	dir, err := services.NewDirectory(memory.NewRoleStore(), domain.ComparisonOrdinal)
	require.NoError(t, err)
	config := &TUIConfig{Directory: dir}

	SetTUIConfig(config)
	defer SetTUIConfig(nil)

	assert.Equal(t, config, tuiConfig)
}

func TestTUICmd_HelpOutput(t *testing.T) {
	output, err := executeCommand(t, "tui", "--help")

	require.NoError(t, err)
	assert.Contains(t, output, "interactive role browser")
	assert.Contains(t, output, "Controls:")
}

func TestTUICmd_RequiresDirectory(t *testing.T) {
	SetTUIConfig(nil)

	_, err := executeCommand(t, "tui")

	assert.ErrorIs(t, err, tui.ErrMissingDirectory)
}

func TestTUICmd_RequiresTerminal(t *testing.T) {
	dir, err := services.NewDirectory(memory.NewRoleStore(), domain.ComparisonOrdinal)
	require.NoError(t, err)
	SetTUIConfig(&TUIConfig{Directory: dir})
	defer SetTUIConfig(nil)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		t.Skip("stdin is a terminal")
	}

	_, err = executeCommand(t, "tui")

	assert.ErrorIs(t, err, tui.ErrNotTerminal)
}
