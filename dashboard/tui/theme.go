package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/yaron8/ops-dashboard/dashboard/config"
)

type palette struct {
	primary   lipgloss.Color
	secondary lipgloss.Color
	success   lipgloss.Color
	warning   lipgloss.Color
	danger    lipgloss.Color
	muted     lipgloss.Color
	text      lipgloss.Color
	surface   lipgloss.Color
}

var darkPalette = palette{
	primary:   lipgloss.Color("#7C3AED"), // Purple
	secondary: lipgloss.Color("#06B6D4"), // Cyan
	success:   lipgloss.Color("#22C55E"), // Green
	warning:   lipgloss.Color("#EAB308"), // Yellow
	danger:    lipgloss.Color("#EF4444"), // Red
	muted:     lipgloss.Color("#6B7280"), // Gray
	text:      lipgloss.Color("#F9FAFB"),
	surface:   lipgloss.Color("#1E1B2E"),
}

var lightPalette = palette{
	primary:   lipgloss.Color("#6D28D9"),
	secondary: lipgloss.Color("#0E7490"),
	success:   lipgloss.Color("#15803D"),
	warning:   lipgloss.Color("#A16207"),
	danger:    lipgloss.Color("#B91C1C"),
	muted:     lipgloss.Color("#6B7280"),
	text:      lipgloss.Color("#111827"),
	surface:   lipgloss.Color("#F3F4F6"),
}

// styles is the full style set for one theme.
type styles struct {
	palette palette

	activeTab   lipgloss.Style
	inactiveTab lipgloss.Style
	tabBar      lipgloss.Style
	title       lipgloss.Style
	subtitle    lipgloss.Style
	footer      lipgloss.Style
	content     lipgloss.Style
	banner      lipgloss.Style
	badgeLive   lipgloss.Style
	badgeOK     lipgloss.Style
	badgeError  lipgloss.Style
	badgeWait   lipgloss.Style

	card         lipgloss.Style
	cardFocused  lipgloss.Style
	panel        lipgloss.Style
	sectionTitle lipgloss.Style
	label        lipgloss.Style
	value        lipgloss.Style
	muted        lipgloss.Style
	chipOK       lipgloss.Style
	chipWarn     lipgloss.Style
	positive     lipgloss.Style
	negative     lipgloss.Style
}

func newStyles(theme string) styles {
	p := darkPalette
	if theme == config.ThemeLight {
		p = lightPalette
	}

	return styles{
		palette: p,

		activeTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(p.primary).
			Padding(0, 2),
		inactiveTab: lipgloss.NewStyle().
			Foreground(p.muted).
			Padding(0, 2),
		tabBar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(p.muted),
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.text),
		subtitle: lipgloss.NewStyle().Foreground(p.muted),
		footer: lipgloss.NewStyle().
			Foreground(p.muted).
			MarginTop(1),
		content: lipgloss.NewStyle().Padding(0, 2),
		banner: lipgloss.NewStyle().
			Foreground(p.danger).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.danger).
			Padding(0, 1),
		badgeLive:  lipgloss.NewStyle().Foreground(p.success).Padding(0, 1),
		badgeOK:    lipgloss.NewStyle().Foreground(p.success).Bold(true).Padding(0, 1),
		badgeError: lipgloss.NewStyle().Foreground(p.danger).Bold(true).Padding(0, 1),
		badgeWait:  lipgloss.NewStyle().Foreground(p.warning).Padding(0, 1),

		card: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		cardFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.primary).
			Padding(0, 1),
		panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(p.muted).
			Padding(0, 1),
		sectionTitle: lipgloss.NewStyle().Bold(true).Foreground(p.secondary),
		label:        lipgloss.NewStyle().Foreground(p.muted),
		value:        lipgloss.NewStyle().Bold(true).Foreground(p.text),
		muted:        lipgloss.NewStyle().Foreground(p.muted),
		chipOK:       lipgloss.NewStyle().Foreground(p.success),
		chipWarn:     lipgloss.NewStyle().Foreground(p.warning).Bold(true),
		positive:     lipgloss.NewStyle().Foreground(p.success),
		negative:     lipgloss.NewStyle().Foreground(p.danger),
	}
}

// statusStyle colours a service status or alert severity.
func (s styles) statusStyle(status string) lipgloss.Style {
	switch status {
	case "operational", "info":
		return lipgloss.NewStyle().Foreground(s.palette.success)
	case "degraded", "warning":
		return lipgloss.NewStyle().Foreground(s.palette.warning)
	default:
		return lipgloss.NewStyle().Foreground(s.palette.danger).Bold(true)
	}
}
