package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shoetracker/internal/analysis"
)

// HelpModel is the help screen model
type HelpModel struct{}

// NewHelpModel creates a new help model
func NewHelpModel() HelpModel {
	return HelpModel{}
}

// Init initializes the help screen
func (m HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, nil
}

// View renders the help screen
func (m HelpModel) View() string {
	sections := []string{
		cardTitleStyle.Render("Keyboard Shortcuts"),
		m.renderSection("Navigation", []keyHelp{
			{"1", "Shoes in rotation"},
			{"2", "Retired shoes"},
			{"?", "Help (this screen)"},
			{"q", "Quit"},
			{"esc", "Back / close help"},
		}),
		m.renderSection("Shoe List", []keyHelp{
			{"j / down", "Move cursor down"},
			{"k / up", "Move cursor up"},
			{"enter", "Open shoe"},
			{"/", "Search by name"},
			{"tab", "Switch between active and retired"},
			{"r", "Refresh list"},
		}),
		m.renderSection("Shoe Detail", []keyHelp{
			{"i", "Import runs from Strava"},
			{"a", "Retire or restore the shoe"},
			{"d", "Delete the shoe and its runs"},
			{"[ / ]", "Select previous / next run"},
			{"x", "Remove the selected run"},
			{"< / >", "Previous / next month in the run calendar"},
			{"r", "Refresh"},
		}),
		m.renderSection("Import", []keyHelp{
			{"space", "Select run"},
			{"A", "Select all / none"},
			{"enter", "Assign selected runs"},
			{"r", "Reload runs"},
		}),
		m.renderMetricsHelp(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

type keyHelp struct {
	key  string
	desc string
}

func (m HelpModel) renderSection(title string, keys []keyHelp) string {
	lines := []string{"", sectionStyle.Render(title)}
	for _, k := range keys {
		lines = append(lines, "  "+RenderKeyHelp(k.key, k.desc))
	}
	return strings.Join(lines, "\n")
}

func (m HelpModel) renderMetricsHelp() string {
	lines := []string{"", sectionStyle.Render("Metrics Explained"), ""}

	metrics := []struct {
		name string
		desc string
	}{
		{"Progress", "Distance run as a share of the shoe's target distance."},
		{"Nearly worn", fmt.Sprintf("Progress has reached %.0f%% of the target.", analysis.CloseToExpirationPct)},
		{"Avg per week", "Total distance over whole weeks since the first run."},
		{"Est. days left", "Remaining distance at the weekly average, in days."},
		{"Retired", "Archived shoes keep their metrics frozen at the retirement date."},
	}

	for _, metric := range metrics {
		lines = append(lines, "  "+helpKeyStyle.Render(metric.name))
		lines = append(lines, "  "+mutedStyle.Render(metric.desc))
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
