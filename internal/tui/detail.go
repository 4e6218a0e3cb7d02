package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"shoetracker/internal/analysis"
	"shoetracker/internal/service"
	"shoetracker/internal/units"
)

const (
	chartHeight = 8
	chartWidth  = 60
)

// pending destructive action awaiting a y/n answer
type confirmAction int

const (
	confirmNone confirmAction = iota
	confirmDeleteShoe
	confirmRemoveWorkout
)

// DetailModel is the shoe detail screen model
type DetailModel struct {
	shoeService *service.ShoeService
	conv        units.Converter
	shoeID      string
	detail      *service.ShoeDetail
	selected    int // index into detail.Workouts
	cal         analysis.Calendar
	month       time.Time // month shown in the run calendar
	confirm     confirmAction
	viewport    viewport.Model
	loading     bool
	err         error
	width       int
	height      int
	ready       bool
	now         func() time.Time
}

// NewDetailModel creates a new shoe detail model
func NewDetailModel(ss *service.ShoeService, conv units.Converter, shoeID string, width, height int) DetailModel {
	m := DetailModel{
		shoeService: ss,
		conv:        conv,
		shoeID:      shoeID,
		cal:         ss.Calendar(),
		loading:     true,
		width:       width,
		height:      height,
		now:         time.Now,
	}

	if width > 0 && height > 0 {
		m.viewport = viewport.New(width, height-7) // Reserve space for header/footer
		m.ready = true
	}

	return m
}

// Init initializes the shoe detail screen
func (m DetailModel) Init() tea.Cmd {
	return m.loadDetail
}

// Confirming reports whether a y/n prompt is open
func (m DetailModel) Confirming() bool {
	return m.confirm != confirmNone
}

type shoeDetailLoadedMsg struct {
	detail *service.ShoeDetail
	err    error
}

type archiveToggledMsg struct {
	archived bool
	err      error
}

type workoutRemovedMsg struct {
	err error
}

func (m DetailModel) loadDetail() tea.Msg {
	detail, err := m.shoeService.Detail(m.shoeID)
	return shoeDetailLoadedMsg{detail: detail, err: err}
}

func (m DetailModel) toggleArchive() tea.Msg {
	archived, err := m.shoeService.ToggleArchive(m.shoeID)
	return archiveToggledMsg{archived: archived != nil, err: err}
}

func (m DetailModel) deleteShoe() tea.Msg {
	name := m.detail.Shoe.Name
	if err := m.shoeService.Delete(m.shoeID); err != nil {
		return StatusMsg{Text: fmt.Sprintf("Deleting %s failed: %v", name, err), Err: true}
	}
	return ShoeDeletedMsg{Name: name}
}

func (m DetailModel) removeWorkout(id string) tea.Cmd {
	return func() tea.Msg {
		return workoutRemovedMsg{err: m.shoeService.RemoveWorkout(id)}
	}
}

// Update handles messages
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shoeDetailLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.detail = msg.detail
		if m.detail != nil && m.selected >= len(m.detail.Workouts) {
			m.selected = max(len(m.detail.Workouts)-1, 0)
		}
		if m.detail != nil && m.month.IsZero() {
			m.month = m.cal.MonthStart(m.detail.Insights.End)
		}
		m.refreshContent()

	case archiveToggledMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		text := "Shoe restored to rotation"
		if msg.archived {
			text = "Shoe retired"
		}
		return m, tea.Batch(m.loadDetail, statusCmd(text))

	case workoutRemovedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, tea.Batch(m.loadDetail, statusCmd("Workout removed"))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-7)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 7
		}
		m.refreshContent()

	case tea.KeyMsg:
		if m.confirm != confirmNone {
			return m.updateConfirm(msg)
		}
		if m.detail == nil {
			if msg.String() == "r" {
				m.loading = true
				return m, m.loadDetail
			}
			return m, nil
		}

		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.loadDetail
		case "a":
			return m, m.toggleArchive
		case "d":
			m.confirm = confirmDeleteShoe
			return m, nil
		case "i":
			shoe := m.detail.Shoe
			return m, func() tea.Msg { return OpenPickerMsg{Shoe: shoe} }
		case "[":
			if m.selected > 0 {
				m.selected--
				m.refreshContent()
			}
			return m, nil
		case "]":
			if m.selected < len(m.detail.Workouts)-1 {
				m.selected++
				m.refreshContent()
			}
			return m, nil
		case "<", ",":
			m.month = m.cal.MonthStart(m.month).AddDate(0, -1, 0)
			m.refreshContent()
			return m, nil
		case ">", ".":
			m.month = m.cal.MonthStart(m.month).AddDate(0, 1, 0)
			m.refreshContent()
			return m, nil
		case "x":
			if len(m.detail.Workouts) > 0 {
				m.confirm = confirmRemoveWorkout
			}
			return m, nil
		}
	}

	// Handle viewport scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m DetailModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.confirm
	m.confirm = confirmNone
	if msg.String() != "y" {
		return m, nil
	}

	switch action {
	case confirmDeleteShoe:
		return m, m.deleteShoe
	case confirmRemoveWorkout:
		if m.selected < len(m.detail.Workouts) {
			return m, m.removeWorkout(m.detail.Workouts[m.selected].ID)
		}
	}
	return m, nil
}

func (m *DetailModel) refreshContent() {
	if m.ready && m.detail != nil {
		m.viewport.SetContent(m.renderContent())
	}
}

// View renders the shoe detail screen
func (m DetailModel) View() string {
	if m.loading && m.detail == nil {
		return "\n  Loading shoe..."
	}

	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("\n  Error: %v", m.err))
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	var footer string
	switch m.confirm {
	case confirmDeleteShoe:
		footer = warningStyle.Render(fmt.Sprintf("  Delete %s and all of its workouts? (y/n)", m.detail.Shoe.Name))
	case confirmRemoveWorkout:
		w := m.detail.Workouts[m.selected]
		footer = warningStyle.Render(fmt.Sprintf("  Remove the %s run of %s? (y/n)",
			w.Date.Format(dateLayout), m.conv.FormatDistance(w.DistanceKm, 2)))
	default:
		footer = statusStyle.Render("  esc: back  i: import runs  a: retire/restore  d: delete  [/]: select run  x: remove run  </>: month  j/k: scroll")
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

func (m DetailModel) renderContent() string {
	sections := []string{
		m.renderHeader(),
		m.renderProgress(),
		m.renderSummary(),
	}

	ins := m.detail.Insights
	if len(ins.Cumulative) > 1 {
		sections = append(sections, m.renderCumulativeChart())
	}
	if len(ins.Weekly) > 1 {
		sections = append(sections, m.renderWeeklyChart())
	}

	sections = append(sections, m.renderCalendar(), m.renderWorkouts())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DetailModel) renderHeader() string {
	shoe := m.detail.Shoe
	met := m.detail.Metrics

	title := cardTitleStyle.Render(shoe.Name)

	info := []string{"Purchased " + shoe.Purchased.Format(dateLayout)}
	if shoe.Color != "" {
		info = append([]string{shoe.Color}, info...)
	}
	if shoe.Archived != nil {
		info = append(info, "retired "+shoe.Archived.Format(dateLayout))
	}
	info = append(info, fmt.Sprintf("%d days old", met.AgeDays))

	subtitle := mutedStyle.Render(strings.Join(info, "  •  "))

	return lipgloss.JoinVertical(lipgloss.Left, "", title, subtitle, "")
}

func (m DetailModel) renderProgress() string {
	met := m.detail.Metrics
	target := float64(m.detail.Shoe.TargetDistance)

	line := fmt.Sprintf("%s  %.0f%%  %s of %s",
		RenderProgressBar(met.Progress/100, 30, met.CloseToExpiration, met.HasExpired),
		met.Progress,
		m.conv.FormatDistance(met.TotalKilometers, 1),
		m.conv.FormatDistance(target, 0),
	)
	if status := renderStatus(met); status != "" {
		line += "  " + status
	}

	return line + "\n"
}

func (m DetailModel) renderSummary() string {
	met := m.detail.Metrics
	now := m.now()

	lines := []string{sectionStyle.Render("Summary")}

	lines = append(lines,
		RenderMetric("Remaining", m.conv.FormatDistance(met.Remainder, 1)),
		RenderMetric("Runs", fmt.Sprintf("%d", met.NumberOfRuns)),
		RenderMetric("Total time", formatDuration(met.TotalDuration)),
		RenderMetric("Avg per run", formatOptionalDistance(m.conv, met.AverageKmPerRun)),
		RenderMetric("Avg per week", formatOptionalDistance(m.conv, met.AverageKmPerWeek)),
		RenderMetric("Longest run", formatOptionalDistance(m.conv, met.MaximumDistance)),
	)

	if met.TotalElevationGain != nil {
		lines = append(lines, RenderMetric("Elevation gain", m.conv.FormatElevation(*met.TotalElevationGain, 0)))
	}

	lines = append(lines,
		RenderMetric("Last run", relativeDay(met.LastWorkoutDate, now)),
	)
	if !met.IsArchived {
		lines = append(lines, RenderMetric("Est. days left", formatDaysRemaining(met.DaysRemaining)))
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m DetailModel) renderCumulativeChart() string {
	data := downsample(cumulativeSeries(m.detail.Insights.Cumulative, m.conv), chartWidth)

	lines := []string{sectionStyle.Render(fmt.Sprintf("Cumulative distance (%s)", m.conv.DistanceLabel()))}
	lines = append(lines, asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(0),
	))
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m DetailModel) renderWeeklyChart() string {
	weeks := m.detail.Insights.Weekly
	data := weeklySeries(weeks, m.conv)

	caption := fmt.Sprintf("%s to %s", weeks[0].Start.Format(dateLayout), weeks[len(weeks)-1].Start.Format(dateLayout))

	lines := []string{sectionStyle.Render(fmt.Sprintf("Weekly distance (%s)", m.conv.DistanceLabel()))}
	lines = append(lines, asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(1),
		asciigraph.Caption(caption),
	))
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

func (m DetailModel) renderCalendar() string {
	days := m.detail.Insights.WorkoutDays
	lines := []string{
		sectionStyle.Render(fmt.Sprintf("Run days (%d)", len(days))),
		renderMonthCalendar(m.cal, m.month, days, m.now()),
		"",
	}
	return strings.Join(lines, "\n")
}

func (m DetailModel) renderWorkouts() string {
	workouts := m.detail.Workouts

	lines := []string{sectionStyle.Render(fmt.Sprintf("Runs (%d)", len(workouts)))}
	if len(workouts) == 0 {
		lines = append(lines, mutedStyle.Render("  No runs assigned yet. Press i to import some."))
		return strings.Join(lines, "\n")
	}

	lines = append(lines, tableHeaderStyle.Render(fmt.Sprintf("  %-14s  %12s  %8s  %10s", "Date", "Distance", "Time", "Elevation")))
	for i, w := range workouts {
		elevation := "-"
		if w.ElevationGain != nil {
			elevation = m.conv.FormatElevation(*w.ElevationGain, 0)
		}

		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}

		row := fmt.Sprintf("%s%-14s  %12s  %8s  %10s",
			cursor,
			w.Date.Format(dateLayout),
			m.conv.FormatDistance(w.DistanceKm, 2),
			formatDuration(time.Duration(w.DurationSeconds*float64(time.Second))),
			elevation,
		)
		if i == m.selected {
			lines = append(lines, tableSelectedStyle.Render(row))
		} else {
			lines = append(lines, tableRowStyle.Render(row))
		}
	}

	return strings.Join(lines, "\n")
}
