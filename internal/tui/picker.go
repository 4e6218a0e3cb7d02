package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shoetracker/internal/importer"
	"shoetracker/internal/store"
	"shoetracker/internal/units"
)

// WorkoutImporter loads assignable workouts and attributes them to shoes
type WorkoutImporter interface {
	Loading() bool
	Load(ctx context.Context, shoe store.Shoe) ([]importer.Candidate, error)
	Assign(ctx context.Context, shoeID string, c importer.Candidate) (*store.Workout, error)
}

// PickerModel lists the workouts that can be assigned to a shoe
type PickerModel struct {
	ctx        context.Context
	importer   WorkoutImporter
	conv       units.Converter
	shoe       store.Shoe
	candidates []importer.Candidate
	selected   map[string]bool
	cursor     int
	loading    bool
	assigning  bool
	err        error
}

// NewPickerModel creates a workout picker for shoe
func NewPickerModel(ctx context.Context, wi WorkoutImporter, conv units.Converter, shoe store.Shoe) PickerModel {
	return PickerModel{
		ctx:      ctx,
		importer: wi,
		conv:     conv,
		shoe:     shoe,
		selected: make(map[string]bool),
		loading:  true,
	}
}

// Init starts loading candidates
func (m PickerModel) Init() tea.Cmd {
	return m.load
}

type candidatesLoadedMsg struct {
	candidates []importer.Candidate
	err        error
}

type assignDoneMsg struct {
	assigned int
	err      error
}

func (m PickerModel) load() tea.Msg {
	candidates, err := m.importer.Load(m.ctx, m.shoe)
	return candidatesLoadedMsg{candidates: candidates, err: err}
}

func (m PickerModel) assign(candidates []importer.Candidate) tea.Cmd {
	return func() tea.Msg {
		var assigned int
		for _, c := range candidates {
			if _, err := m.importer.Assign(m.ctx, m.shoe.ID, c); err != nil {
				return assignDoneMsg{assigned: assigned, err: err}
			}
			assigned++
		}
		return assignDoneMsg{assigned: assigned}
	}
}

// Update handles messages
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case candidatesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.candidates = msg.candidates
		m.selected = make(map[string]bool)
		m.cursor = 0

	case assignDoneMsg:
		m.assigning = false
		if msg.err != nil {
			m.err = msg.err
			if msg.assigned == 0 {
				return m, nil
			}
		}
		shoeID, n := m.shoe.ID, msg.assigned
		return m, func() tea.Msg {
			return WorkoutsAssignedMsg{ShoeID: shoeID, Count: n}
		}

	case tea.KeyMsg:
		if m.assigning {
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.candidates)-1 {
				m.cursor++
			}
		case " ", "space":
			if m.cursor < len(m.candidates) {
				c := m.candidates[m.cursor]
				if _, ok := c.DistanceKm(); ok {
					m.selected[c.ExternalID] = !m.selected[c.ExternalID]
				}
			}
		case "A":
			all := len(m.selectedCandidates()) < m.selectableCount()
			for _, c := range m.candidates {
				if _, ok := c.DistanceKm(); ok {
					m.selected[c.ExternalID] = all
				}
			}
		case "r":
			if m.loading || m.importer.Loading() {
				return m, nil
			}
			m.loading = true
			m.err = nil
			return m, m.load
		case "enter":
			chosen := m.selectedCandidates()
			if len(chosen) == 0 {
				return m, nil
			}
			m.assigning = true
			m.err = nil
			return m, m.assign(chosen)
		}
	}
	return m, nil
}

// selectedCandidates returns the ticked candidates in list order
func (m PickerModel) selectedCandidates() []importer.Candidate {
	var chosen []importer.Candidate
	for _, c := range m.candidates {
		if m.selected[c.ExternalID] {
			chosen = append(chosen, c)
		}
	}
	return chosen
}

func (m PickerModel) selectableCount() int {
	n := 0
	for _, c := range m.candidates {
		if _, ok := c.DistanceKm(); ok {
			n++
		}
	}
	return n
}

// View renders the picker
func (m PickerModel) View() string {
	var sections []string

	sections = append(sections, cardTitleStyle.Render("Import runs for "+m.shoe.Name))

	switch {
	case m.loading:
		sections = append(sections, "  Loading runs from Strava...")
	case m.assigning:
		sections = append(sections, fmt.Sprintf("  Assigning %d runs...", len(m.selectedCandidates())))
	case m.err != nil:
		sections = append(sections, errorStyle.Render("  "+describeImportError(m.err)))
	case len(m.candidates) == 0:
		sections = append(sections, mutedStyle.Render(fmt.Sprintf("  No unassigned runs since %s.", m.shoe.Purchased.Format(dateLayout))))
	default:
		sections = append(sections, m.renderTable())
	}

	help := fmt.Sprintf("  space: select  A: select all  enter: assign %d  r: reload  esc: back", len(m.selectedCandidates()))
	sections = append(sections, statusStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m PickerModel) renderTable() string {
	rows := []string{tableHeaderStyle.Render(fmt.Sprintf("      %-22s  %-24s  %12s  %8s", "Start", "Name", "Distance", "Time"))}

	for i, c := range m.candidates {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		check := "[ ]"
		if m.selected[c.ExternalID] {
			check = "[x]"
		}

		distance := "no distance"
		km, ok := c.DistanceKm()
		if ok {
			distance = m.conv.FormatDistance(km, 2)
		}

		row := fmt.Sprintf("%s%s %-22s  %-24s  %12s  %8s",
			cursor,
			check,
			c.Start.Format("Mon Jan 2 2006 15:04"),
			truncateName(c.Name, 24),
			distance,
			formatDuration(time.Duration(c.DurationSeconds*float64(time.Second))),
		)

		switch {
		case i == m.cursor:
			rows = append(rows, tableSelectedStyle.Render(row))
		case !ok:
			rows = append(rows, tableDimStyle.Render(row))
		default:
			rows = append(rows, tableRowStyle.Render(row))
		}
	}

	return strings.Join(rows, "\n")
}

func describeImportError(err error) string {
	switch {
	case errors.Is(err, importer.ErrAuthorizationDenied):
		return "Strava access is not authorized. Run `shoes login` and try again."
	case errors.Is(err, importer.ErrImportInProgress):
		return "An import is already running."
	case errors.Is(err, importer.ErrSourceUnavailable):
		return fmt.Sprintf("Could not fetch runs from Strava: %v", err)
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
