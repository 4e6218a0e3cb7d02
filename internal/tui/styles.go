package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"shoetracker/internal/config"
)

// palette is one colour scheme for the whole app
type palette struct {
	primary   lipgloss.TerminalColor
	secondary lipgloss.TerminalColor
	warning   lipgloss.TerminalColor
	danger    lipgloss.TerminalColor
	muted     lipgloss.TerminalColor
	text      lipgloss.TerminalColor
	onPrimary lipgloss.TerminalColor
}

var darkPalette = palette{
	primary:   lipgloss.Color(darkHex.primary), // Purple
	secondary: lipgloss.Color(darkHex.secondary),
	warning:   lipgloss.Color(darkHex.warning),
	danger:    lipgloss.Color(darkHex.danger),
	muted:     lipgloss.Color(darkHex.muted),
	text:      lipgloss.Color(darkHex.text),
	onPrimary: lipgloss.Color(darkHex.text),
}

var lightPalette = palette{
	primary:   lipgloss.Color(lightHex.primary),
	secondary: lipgloss.Color(lightHex.secondary),
	warning:   lipgloss.Color(lightHex.warning),
	danger:    lipgloss.Color(lightHex.danger),
	muted:     lipgloss.Color(lightHex.muted),
	text:      lipgloss.Color(lightHex.text),
	onPrimary: lipgloss.Color(darkHex.text),
}

type hexColors struct {
	primary, secondary, warning, danger, muted, text string
}

var (
	darkHex  = hexColors{"#7C3AED", "#10B981", "#F59E0B", "#EF4444", "#6B7280", "#F9FAFB"}
	lightHex = hexColors{"#6D28D9", "#047857", "#B45309", "#B91C1C", "#4B5563", "#111827"}
)

// paletteFor picks the colours for a theme; "system" adapts to the
// terminal background
func paletteFor(theme config.ThemeOption) palette {
	switch theme {
	case config.ThemeLight:
		return lightPalette
	case config.ThemeDark:
		return darkPalette
	}

	adapt := func(light, dark string) lipgloss.TerminalColor {
		return lipgloss.AdaptiveColor{Light: light, Dark: dark}
	}
	return palette{
		primary:   adapt(lightHex.primary, darkHex.primary),
		secondary: adapt(lightHex.secondary, darkHex.secondary),
		warning:   adapt(lightHex.warning, darkHex.warning),
		danger:    adapt(lightHex.danger, darkHex.danger),
		muted:     adapt(lightHex.muted, darkHex.muted),
		text:      adapt(lightHex.text, darkHex.text),
		onPrimary: lipgloss.Color(darkHex.text),
	}
}

// Styles
var (
	headerStyle      lipgloss.Style
	navStyle         lipgloss.Style
	navActiveStyle   lipgloss.Style
	navInactiveStyle lipgloss.Style

	cardTitleStyle   lipgloss.Style
	sectionStyle     lipgloss.Style
	metricLabelStyle lipgloss.Style
	metricValueStyle lipgloss.Style

	tableHeaderStyle   lipgloss.Style
	tableRowStyle      lipgloss.Style
	tableSelectedStyle lipgloss.Style
	tableDimStyle      lipgloss.Style

	statusStyle  lipgloss.Style
	errorStyle   lipgloss.Style
	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	mutedStyle   lipgloss.Style

	helpKeyStyle  lipgloss.Style
	helpDescStyle lipgloss.Style

	progressOKStyle      lipgloss.Style
	progressWarningStyle lipgloss.Style
	progressExpiredStyle lipgloss.Style
	progressEmptyStyle   lipgloss.Style

	calendarRunStyle   lipgloss.Style
	calendarTodayStyle lipgloss.Style
)

func init() {
	SetTheme(config.ThemeSystem)
}

// SetTheme rebuilds every style from the theme's palette.
// Call it before starting the program.
func SetTheme(theme config.ThemeOption) {
	p := paletteFor(theme)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.onPrimary).
		Background(p.primary).
		Padding(0, 1).
		MarginBottom(1)

	navStyle = lipgloss.NewStyle().
		Foreground(p.muted).
		MarginBottom(1)
	navActiveStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.primary)
	navInactiveStyle = lipgloss.NewStyle().
		Foreground(p.muted)

	cardTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.primary).
		MarginBottom(1)
	sectionStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.secondary)

	metricLabelStyle = lipgloss.NewStyle().
		Foreground(p.muted).
		Width(20)
	metricValueStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.text)

	tableHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.primary).
		Padding(0, 1)
	tableRowStyle = lipgloss.NewStyle().
		Padding(0, 1)
	tableSelectedStyle = lipgloss.NewStyle().
		Bold(true).
		Background(p.primary).
		Foreground(p.onPrimary).
		Padding(0, 1)
	tableDimStyle = lipgloss.NewStyle().
		Foreground(p.muted).
		Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
		Foreground(p.muted).
		MarginTop(1)
	errorStyle = lipgloss.NewStyle().Foreground(p.danger)
	successStyle = lipgloss.NewStyle().Foreground(p.secondary)
	warningStyle = lipgloss.NewStyle().Foreground(p.warning)
	mutedStyle = lipgloss.NewStyle().Foreground(p.muted)

	helpKeyStyle = lipgloss.NewStyle().
		Foreground(p.primary).
		Bold(true)
	helpDescStyle = lipgloss.NewStyle().
		Foreground(p.muted)

	progressOKStyle = lipgloss.NewStyle().Foreground(p.secondary)
	progressWarningStyle = lipgloss.NewStyle().Foreground(p.warning)
	progressExpiredStyle = lipgloss.NewStyle().Foreground(p.danger)
	progressEmptyStyle = lipgloss.NewStyle().Foreground(p.muted)

	calendarRunStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.secondary)
	calendarTodayStyle = lipgloss.NewStyle().
		Underline(true).
		Foreground(p.primary)
}

// RenderMetric renders a label and its value on one line
func RenderMetric(label, value string) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		metricLabelStyle.Render(label),
		metricValueStyle.Render(value),
	)
}

// RenderProgressBar renders an ASCII progress bar. percent is in [0,1];
// the fill colour warns as a shoe nears and passes its target.
func RenderProgressBar(percent float64, width int, closeToExpiration, expired bool) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	fill := progressOKStyle
	switch {
	case expired:
		fill = progressExpiredStyle
	case closeToExpiration:
		fill = progressWarningStyle
	}

	return fill.Render(strings.Repeat("█", filled)) +
		progressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

// RenderKeyHelp renders a key binding help item
func RenderKeyHelp(key, desc string) string {
	return helpKeyStyle.Render(key) + " " + helpDescStyle.Render(desc)
}
