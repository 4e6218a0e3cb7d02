// Package tui is the interactive terminal interface: a shoe list, a shoe
// detail screen with mileage charts and a workout import picker.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shoetracker/internal/service"
	"shoetracker/internal/store"
	"shoetracker/internal/units"
)

// Screen identifiers
type Screen int

const (
	ScreenShoes Screen = iota
	ScreenDetail
	ScreenPicker
	ScreenHelp
)

// OpenShoeDetailMsg opens the detail screen for a shoe
type OpenShoeDetailMsg struct {
	ShoeID string
}

// OpenPickerMsg opens the workout picker for a shoe
type OpenPickerMsg struct {
	Shoe store.Shoe
}

// ShoeDeletedMsg is sent after a shoe was deleted from its detail screen
type ShoeDeletedMsg struct {
	Name string
}

// WorkoutsAssignedMsg is sent when the picker finished assigning runs
type WorkoutsAssignedMsg struct {
	ShoeID string
	Count  int
}

// StatusMsg replaces the footer status line
type StatusMsg struct {
	Text string
	Err  bool
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

// App is the root Bubble Tea model
type App struct {
	ctx        context.Context
	screen     Screen
	prevScreen Screen

	// Screen models
	shoes  ShoesModel
	detail DetailModel
	picker PickerModel
	help   HelpModel

	// Services
	shoeService *service.ShoeService
	importer    WorkoutImporter
	conv        units.Converter

	// Window dimensions
	width  int
	height int

	// Status message
	status    string
	statusErr bool
}

// NewApp creates a new App with all dependencies
func NewApp(ctx context.Context, shoeService *service.ShoeService, wi WorkoutImporter, conv units.Converter) *App {
	return &App{
		ctx:         ctx,
		screen:      ScreenShoes,
		shoeService: shoeService,
		importer:    wi,
		conv:        conv,
		shoes:       NewShoesModel(shoeService, conv, false),
		help:        NewHelpModel(),
	}
}

// Init initializes the app
func (a *App) Init() tea.Cmd {
	return a.shoes.Init()
}

// capturesKeys reports whether the current screen is reading raw input
func (a *App) capturesKeys() bool {
	switch a.screen {
	case ScreenShoes:
		return a.shoes.Searching()
	case ScreenDetail:
		return a.detail.Confirming()
	}
	return false
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.capturesKeys() {
			if model, cmd, handled := a.handleGlobalKey(msg); handled {
				return model, cmd
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case StatusMsg:
		a.status = msg.Text
		a.statusErr = msg.Err
		return a, nil

	case OpenShoeDetailMsg:
		a.status = ""
		a.screen = ScreenDetail
		a.detail = NewDetailModel(a.shoeService, a.conv, msg.ShoeID, a.width, a.height)
		return a, a.detail.Init()

	case OpenPickerMsg:
		a.status = ""
		a.screen = ScreenPicker
		a.picker = NewPickerModel(a.ctx, a.importer, a.conv, msg.Shoe)
		return a, a.picker.Init()

	case ShoeDeletedMsg:
		a.status = "Deleted " + msg.Name
		a.statusErr = false
		return a, a.showShoes(a.shoes.archived)

	case WorkoutsAssignedMsg:
		a.status = assignedStatus(msg.Count)
		a.statusErr = false
		a.screen = ScreenDetail
		a.detail = NewDetailModel(a.shoeService, a.conv, msg.ShoeID, a.width, a.height)
		return a, a.detail.Init()
	}

	// Delegate to current screen
	var cmd tea.Cmd
	switch a.screen {
	case ScreenShoes:
		var m tea.Model
		m, cmd = a.shoes.Update(msg)
		a.shoes = m.(ShoesModel)
	case ScreenDetail:
		var m tea.Model
		m, cmd = a.detail.Update(msg)
		a.detail = m.(DetailModel)
	case ScreenPicker:
		var m tea.Model
		m, cmd = a.picker.Update(msg)
		a.picker = m.(PickerModel)
	case ScreenHelp:
		var m tea.Model
		m, cmd = a.help.Update(msg)
		a.help = m.(HelpModel)
	}

	return a, cmd
}

func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return a, tea.Quit, true
	case "1":
		return a, a.showShoes(false), true
	case "2":
		return a, a.showShoes(true), true
	case "?":
		if a.screen != ScreenHelp {
			a.prevScreen = a.screen
			a.screen = ScreenHelp
		}
		return a, nil, true
	case "esc":
		switch a.screen {
		case ScreenHelp:
			a.screen = a.prevScreen
			return a, nil, true
		case ScreenDetail:
			return a, a.showShoes(a.shoes.archived), true
		case ScreenPicker:
			if a.picker.assigning {
				return a, nil, true
			}
			a.screen = ScreenDetail
			return a, a.detail.Init(), true
		}
	}
	return a, nil, false
}

// showShoes switches to the list and reloads it so metrics are current
func (a *App) showShoes(archived bool) tea.Cmd {
	if a.screen == ScreenPicker && a.picker.assigning {
		return nil
	}
	a.screen = ScreenShoes
	if a.shoes.archived != archived {
		a.shoes = NewShoesModel(a.shoeService, a.conv, archived)
	}
	return a.shoes.Init()
}

func assignedStatus(n int) string {
	switch n {
	case 0:
		return "No runs assigned"
	case 1:
		return "Assigned 1 run"
	default:
		return fmt.Sprintf("Assigned %d runs", n)
	}
}

// View renders the app
func (a *App) View() string {
	header := a.renderHeader()
	nav := a.renderNav()

	var content string
	switch a.screen {
	case ScreenShoes:
		content = a.shoes.View()
	case ScreenDetail:
		content = a.detail.View()
	case ScreenPicker:
		content = a.picker.View()
	case ScreenHelp:
		content = a.help.View()
	}

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, nav, content, footer)
}

func (a *App) renderHeader() string {
	return headerStyle.Render("Shoe Mileage Tracker")
}

func (a *App) renderNav() string {
	items := []struct {
		key    string
		label  string
		active bool
	}{
		{"1", "Rotation", a.screen != ScreenHelp && !a.shoes.archived},
		{"2", "Retired", a.screen != ScreenHelp && a.shoes.archived},
		{"?", "Help", a.screen == ScreenHelp},
	}

	var nav string
	for i, item := range items {
		if i > 0 {
			nav += "  "
		}

		label := "[" + item.key + "] " + item.label
		if item.active {
			nav += navActiveStyle.Render(label)
		} else {
			nav += navInactiveStyle.Render(label)
		}
	}

	nav += "  " + navInactiveStyle.Render("[q] Quit")

	return navStyle.Render(nav)
}

func (a *App) renderFooter() string {
	switch {
	case a.status == "":
		return ""
	case a.statusErr:
		return errorStyle.MarginTop(1).Render(a.status)
	default:
		return successStyle.MarginTop(1).Render(a.status)
	}
}
