// Package roles provides the two-pane role browser view for the TUI.
package roles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/roster/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/roster/internal/core/domain"
	"github.com/custodia-labs/roster/internal/core/ports/driving"
)

// errNoDirectory is reported when the view has no directory to read.
var errNoDirectory = errors.New("role directory not available")

// View lists roles on the left and the members of the selected role on
// the right. The member list can be narrowed with a substring filter.
type View struct {
	ctx       context.Context
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	directory driving.RoleDirectory
	filter    *input.FilterInput

	roles        []domain.Role
	selected     int
	memberCursor int
	focus        messages.Pane

	filtering bool
	pattern   string
	matches   []string

	loading  bool
	showHelp bool
	err      error
	width    int
	height   int
}

// NewView creates a new role browser view.
func NewView(s *styles.Styles, km *keymap.KeyMap, directory driving.RoleDirectory) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		ctx:       context.Background(),
		styles:    s,
		keymap:    km,
		directory: directory,
		filter:    input.NewFilterInput(s),
		roles:     []domain.Role{},
		focus:     messages.PaneRoles,
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for directory calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts loading roles.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadRoles()
}

// loadRoles returns a command that reads every role with its members.
func (v *View) loadRoles() tea.Cmd {
	directory := v.directory
	ctx := v.ctx
	return func() tea.Msg {
		if directory == nil {
			return messages.RolesLoaded{Err: errNoDirectory}
		}

		names, err := directory.GetAllRoles(ctx)
		if err != nil {
			return messages.RolesLoaded{Err: err}
		}

		roles := make([]domain.Role, 0, len(names))
		for _, name := range names {
			role, ok, err := directory.GetRole(ctx, name)
			if err != nil {
				return messages.RolesLoaded{Err: err}
			}
			if ok {
				roles = append(roles, *role)
			}
		}
		return messages.RolesLoaded{Roles: roles}
	}
}

// findUsers returns a command that filters the members of role.
func (v *View) findUsers(role, pattern string) tea.Cmd {
	directory := v.directory
	ctx := v.ctx
	return func() tea.Msg {
		if directory == nil {
			return messages.UsersFound{Role: role, Pattern: pattern, Err: errNoDirectory}
		}
		users, err := directory.FindUsersInRole(ctx, role, pattern)
		return messages.UsersFound{Role: role, Pattern: pattern, Users: users, Err: err}
	}
}

// Update handles messages for the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		if v.filtering {
			return v.handleFilterKey(msg)
		}
		return v.handleKey(msg)

	case messages.RolesLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.roles = msg.Roles
		if v.selected >= len(v.roles) {
			v.selected = max(len(v.roles)-1, 0)
		}
		v.memberCursor = 0
		return v, v.refreshFilter()

	case messages.UsersFound:
		if msg.Role != v.SelectedRole() || msg.Pattern != v.pattern {
			return v, nil
		}
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.matches = msg.Users
		v.memberCursor = 0
		return v, nil

	case messages.FilterCleared:
		v.clearFilter()
		return v, nil
	}

	return v, nil
}

// handleFilterKey handles keys while the filter input is open.
func (v *View) handleFilterKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Apply):
		v.filtering = false
		v.filter.Blur()
		pattern := v.filter.Value()
		if pattern == "" {
			v.clearFilter()
			return v, nil
		}
		v.pattern = pattern
		v.matches = nil
		return v, v.refreshFilter()

	case keymap.Matches(msg.String(), v.keymap.Cancel):
		v.clearFilter()
		return v, nil
	}

	var cmd tea.Cmd
	v.filter, cmd = v.filter.Update(msg)
	return v, cmd
}

// handleKey handles keys while browsing.
func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		return v, v.move(-1)
	case keymap.Matches(keyStr, v.keymap.Down):
		return v, v.move(1)
	case keymap.Matches(keyStr, v.keymap.SwitchPane):
		if v.focus == messages.PaneRoles {
			v.focus = messages.PaneMembers
		} else {
			v.focus = messages.PaneRoles
		}
	case keymap.Matches(keyStr, v.keymap.Filter):
		if len(v.roles) == 0 {
			return v, nil
		}
		v.filtering = true
		v.filter.SetValue(v.pattern)
		return v, v.filter.Focus()
	case keymap.Matches(keyStr, v.keymap.Cancel):
		v.clearFilter()
	case keymap.Matches(keyStr, v.keymap.Reload):
		v.loading = true
		return v, v.loadRoles()
	case keymap.Matches(keyStr, v.keymap.Help):
		v.showHelp = !v.showHelp
	}
	return v, nil
}

// move shifts the cursor of the focused pane.
func (v *View) move(delta int) tea.Cmd {
	if v.focus == messages.PaneMembers {
		next := v.memberCursor + delta
		if next >= 0 && next < len(v.Members()) {
			v.memberCursor = next
		}
		return nil
	}

	next := v.selected + delta
	if next < 0 || next >= len(v.roles) {
		return nil
	}
	v.selected = next
	v.memberCursor = 0
	return v.refreshFilter()
}

// refreshFilter re-runs the applied filter for the selected role.
func (v *View) refreshFilter() tea.Cmd {
	if v.pattern == "" || len(v.roles) == 0 {
		return nil
	}
	v.matches = nil
	return v.findUsers(v.SelectedRole(), v.pattern)
}

func (v *View) clearFilter() {
	v.filtering = false
	v.pattern = ""
	v.matches = nil
	v.memberCursor = 0
	v.filter.Reset()
}

// View renders the role browser.
func (v *View) View() string {
	var b strings.Builder

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.loading && len(v.roles) == 0 {
		b.WriteString(v.styles.Muted.Render("Loading roles..."))
		b.WriteString("\n")
		return b.String()
	}

	if v.filtering {
		b.WriteString(v.filter.View())
		b.WriteString("\n")
	}

	leftWidth := max(v.width/3, 20)
	rightWidth := max(v.width-leftWidth-4, 20)

	left := v.styles.Pane(v.focus == messages.PaneRoles).
		Width(leftWidth).
		Render(v.renderRoles())
	right := v.styles.Pane(v.focus == messages.PaneMembers).
		Width(rightWidth).
		Render(v.renderMembers())

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")

	if v.showHelp {
		b.WriteString(v.renderHelp())
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderRoles() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Roles"))
	b.WriteString("\n")

	if len(v.roles) == 0 {
		b.WriteString(v.styles.Muted.Render("No roles defined."))
		return b.String()
	}

	for i := range v.roles {
		role := &v.roles[i]
		line := fmt.Sprintf("%s (%d)", role.Name, len(role.Users))
		if i == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (v *View) renderMembers() string {
	var b strings.Builder

	title := "Members"
	if name := v.SelectedRole(); name != "" {
		title = "Members of " + name
	}
	b.WriteString(v.styles.Title.Render(title))
	if v.pattern != "" {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  matching %q", v.pattern)))
	}
	b.WriteString("\n")

	members := v.Members()
	if len(members) == 0 {
		if v.pattern != "" {
			b.WriteString(v.styles.Muted.Render("No matching members."))
		} else {
			b.WriteString(v.styles.Muted.Render("No members."))
		}
		return b.String()
	}

	for i, user := range members {
		if v.focus == messages.PaneMembers && i == v.memberCursor {
			b.WriteString(v.styles.Selected.Render("> " + user))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + user))
		}
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (v *View) renderHelp() string {
	groups := v.keymap.FullHelp()
	lines := make([]string, 0, len(groups))
	for _, group := range groups {
		parts := make([]string, 0, len(group))
		for _, binding := range group {
			h := binding.Help()
			parts = append(parts, fmt.Sprintf("[%s] %s", h.Key, h.Desc))
		}
		lines = append(lines, strings.Join(parts, "  "))
	}
	return v.styles.Help.Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.filter.SetWidth(width / 2)
}

// Roles returns the loaded roles.
func (v *View) Roles() []domain.Role {
	return v.roles
}

// SelectedRole returns the name of the highlighted role, or "" when there
// are no roles.
func (v *View) SelectedRole() string {
	if v.selected < 0 || v.selected >= len(v.roles) {
		return ""
	}
	return v.roles[v.selected].Name
}

// Members returns the members shown in the right pane.
func (v *View) Members() []string {
	if v.pattern != "" {
		return v.matches
	}
	if v.selected < 0 || v.selected >= len(v.roles) {
		return nil
	}
	return v.roles[v.selected].Users
}

// Filtering reports whether the filter input is open.
func (v *View) Filtering() bool {
	return v.filtering
}

// Pattern returns the applied member filter.
func (v *View) Pattern() string {
	return v.pattern
}

// Focus returns the pane with keyboard focus.
func (v *View) Focus() messages.Pane {
	return v.focus
}

// Loading reports whether roles are being loaded.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
