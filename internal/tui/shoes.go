package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shoetracker/internal/analysis"
	"shoetracker/internal/service"
	"shoetracker/internal/units"
)

// ShoesModel is the shoe list screen model, showing either the shoes in
// rotation or the retired ones
type ShoesModel struct {
	shoeService *service.ShoeService
	conv        units.Converter
	archived    bool
	shoes       []analysis.ShoeSummary
	cursor      int
	search      textinput.Model
	searching   bool
	loading     bool
	err         error
	now         func() time.Time
}

// NewShoesModel creates a new shoe list model
func NewShoesModel(ss *service.ShoeService, conv units.Converter, archived bool) ShoesModel {
	search := textinput.New()
	search.Placeholder = "search by name"
	search.Prompt = "/ "
	search.CharLimit = 100

	return ShoesModel{
		shoeService: ss,
		conv:        conv,
		archived:    archived,
		search:      search,
		loading:     true,
		now:         time.Now,
	}
}

// Init initializes the shoe list screen
func (m ShoesModel) Init() tea.Cmd {
	return m.load
}

// Searching reports whether the search field has focus
func (m ShoesModel) Searching() bool {
	return m.searching
}

type shoesLoadedMsg struct {
	archived bool
	shoes    []analysis.ShoeSummary
	err      error
}

func (m ShoesModel) load() tea.Msg {
	shoes, err := m.shoeService.List(m.archived, m.search.Value())
	return shoesLoadedMsg{archived: m.archived, shoes: shoes, err: err}
}

// Update handles messages
func (m ShoesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shoesLoadedMsg:
		if msg.archived != m.archived {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.shoes = msg.shoes
		if m.cursor >= len(m.shoes) {
			m.cursor = max(len(m.shoes)-1, 0)
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.shoes)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(len(m.shoes)-1, 0)
		case "/":
			m.searching = true
			return m, m.search.Focus()
		case "tab":
			m.archived = !m.archived
			m.cursor = 0
			m.loading = true
			return m, m.load
		case "r":
			m.loading = true
			return m, m.load
		case "enter":
			if m.cursor < len(m.shoes) {
				id := m.shoes[m.cursor].Shoe.ID
				return m, func() tea.Msg {
					return OpenShoeDetailMsg{ShoeID: id}
				}
			}
		}
	}
	return m, nil
}

func (m ShoesModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.cursor = 0
		return m, m.load
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.cursor = 0
		return m, tea.Batch(cmd, m.load)
	}
	return m, cmd
}

// View renders the shoe list
func (m ShoesModel) View() string {
	var sections []string

	title := "Shoes in rotation"
	if m.archived {
		title = "Retired shoes"
	}
	sections = append(sections, cardTitleStyle.Render(fmt.Sprintf("%s (%d)", title, len(m.shoes))))

	if m.searching || m.search.Value() != "" {
		sections = append(sections, m.search.View(), "")
	}

	switch {
	case m.loading && m.shoes == nil:
		sections = append(sections, "  Loading shoes...")
	case m.err != nil:
		sections = append(sections, errorStyle.Render(fmt.Sprintf("  Error: %v", m.err)))
	case len(m.shoes) == 0 && m.search.Value() != "":
		sections = append(sections, mutedStyle.Render(fmt.Sprintf("  No shoes match %q.", m.search.Value())))
	case len(m.shoes) == 0 && m.archived:
		sections = append(sections, mutedStyle.Render("  No retired shoes."))
	case len(m.shoes) == 0:
		sections = append(sections, mutedStyle.Render("  No shoes yet. Add one with `shoes add`."))
	default:
		sections = append(sections, m.renderTable())
	}

	help := statusStyle.Render("  enter: details  j/k: navigate  /: search  tab: active/retired  r: refresh")
	sections = append(sections, help)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ShoesModel) renderTable() string {
	now := m.now()
	unit := m.conv.DistanceLabel()

	rows := []string{tableHeaderStyle.Render(fmt.Sprintf("  %-24s  %-20s  %-16s  %9s  %-14s  %s",
		"Name", "Distance ("+unit+")", "Progress", "Left", "Last run", ""))}

	for i, s := range m.shoes {
		met := s.Metrics

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		distance := fmt.Sprintf("%s / %s",
			m.conv.FormatNumber(m.conv.ConvertDistance(met.TotalKilometers), 1),
			m.conv.FormatNumber(m.conv.ConvertDistance(float64(s.Shoe.TargetDistance)), 0))

		left := formatDaysRemaining(met.DaysRemaining)
		if m.archived {
			left = "-"
		}

		row := fmt.Sprintf("%s%-24s  %-20s  %s %3.0f%%  %9s  %-14s  ",
			cursor,
			truncateName(s.Shoe.Name, 24),
			distance,
			RenderProgressBar(met.Progress/100, 10, met.CloseToExpiration, met.HasExpired),
			met.Progress,
			left,
			relativeDay(met.LastWorkoutDate, now),
		)
		row += renderStatus(met)

		if i == m.cursor {
			rows = append(rows, tableSelectedStyle.Render(row))
		} else {
			rows = append(rows, tableRowStyle.Render(row))
		}
	}

	return strings.Join(rows, "\n")
}
