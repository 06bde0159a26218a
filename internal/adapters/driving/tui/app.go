package tui

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/custodia-labs/roster/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/roster/internal/adapters/driving/tui/views/roles"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// rolesView is the two-pane role browser.
	rolesView *roles.View

	// statusBar shows counts, errors and key hints.
	statusBar *status.Bar

	// location describes the backing store, shown in the header.
	location string

	width  int
	height int

	// ready indicates the first window size has arrived.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    s,
		keymap:    km,
		rolesView: roles.NewView(s, km, ports.Directory),
		statusBar: status.NewBar(s, km),
	}

	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			a.location = fmt.Sprintf("%s (%s, %s)",
				settings.Path, settings.Backend, settings.Comparison().Description())
		}
	}
	a.statusBar.SetLocation(a.location)

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.rolesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	a.statusBar.SetState(status.StateLoading)
	return tea.Batch(
		tea.SetWindowTitle("roster"),
		a.rolesView.Init(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.rolesView.Filtering() && keymap.Matches(msg.String(), a.keymap.Quit) {
			return a, tea.Quit
		}
		a.rolesView, cmd = a.rolesView.Update(msg)

	case messages.ErrorOccurred:
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(msg.Err.Error())
		return a, nil

	default:
		a.rolesView, cmd = a.rolesView.Update(msg)
	}

	a.syncStatus()
	return a, cmd
}

// syncStatus mirrors the view state into the status bar.
func (a *App) syncStatus() {
	a.statusBar.SetRoleCount(len(a.rolesView.Roles()))
	switch {
	case a.rolesView.Err() != nil:
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(a.rolesView.Err().Error())
	case a.rolesView.Loading():
		a.statusBar.SetState(status.StateLoading)
	case a.rolesView.Filtering():
		a.statusBar.SetState(status.StateFiltering)
	default:
		a.statusBar.Clear()
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Header.Render("roster"))
	b.WriteString("\n")
	b.WriteString(a.rolesView.View())
	b.WriteString(a.statusBar.View())
	return b.String()
}

// Run starts the TUI application. It refuses to start when stdin is not a
// terminal.
func (a *App) Run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNotTerminal
	}
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// RolesView returns the role browser.
func (a *App) RolesView() *roles.View {
	return a.rolesView
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// Location returns the store description shown in the status bar.
func (a *App) Location() string {
	return a.location
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.rolesView.SetDimensions(width, height-3)
	a.statusBar.SetWidth(width)
}
