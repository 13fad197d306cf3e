package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/yaron8/ops-dashboard/dashboard/aggregator"
	"github.com/yaron8/ops-dashboard/dashboard/config"
)

// Tab identifies which tab is currently active.
type Tab int

const (
	TabOverview Tab = iota
	TabMetrics
	TabServices
	TabAlerts
	TabInfrastructure
	tabCount // sentinel for wrapping
)

var tabNames = map[Tab]string{
	TabOverview:       "Overview",
	TabMetrics:        "Metrics",
	TabServices:       "Services",
	TabAlerts:         "Alerts",
	TabInfrastructure: "Infrastructure",
}

var tabTitles = map[Tab]string{
	TabOverview:       "System Overview",
	TabMetrics:        "Performance Metrics",
	TabServices:       "Service Status",
	TabAlerts:         "Alerts & Notifications",
	TabInfrastructure: "Infrastructure",
}

const (
	tabZonePrefix    = "tab-"
	metricZonePrefix = "metric-"
)

// SnapshotMsg carries one poll result into the model.
type SnapshotMsg aggregator.Result

// Model is the top-level Bubble Tea model for the dashboard.
type Model struct {
	data      *aggregator.Dashboard
	stats     []config.StatTile
	activeTab Tab
	cursor    int
	selected  string
	theme     string
	styles    styles
	zones     *zone.Manager
	width     int
	height    int
	ready     bool
	quitting  bool
}

// NewModel returns a Model on the Overview tab. A nil data starts a fresh
// loading state.
func NewModel(data *aggregator.Dashboard, cfg *config.Config) Model {
	if data == nil {
		data = aggregator.NewDashboard()
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	return Model{
		data:      data,
		stats:     cfg.Stats,
		activeTab: TabOverview,
		theme:     cfg.Theme,
		styles:    newStyles(cfg.Theme),
		zones:     zone.New(),
	}
}

// Init implements tea.Model. Polling is driven from outside the program.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case SnapshotMsg:
		// A result landing after quit started belongs to a dead program.
		if m.quitting {
			return m, nil
		}
		m.data.Apply(aggregator.Result(msg))
		m.clampCursor()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.NextTab):
		m.activeTab = (m.activeTab + 1) % tabCount
	case key.Matches(msg, keys.PrevTab):
		m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
	case key.Matches(msg, keys.Tab1):
		m.activeTab = TabOverview
	case key.Matches(msg, keys.Tab2):
		m.activeTab = TabMetrics
	case key.Matches(msg, keys.Tab3):
		m.activeTab = TabServices
	case key.Matches(msg, keys.Tab4):
		m.activeTab = TabAlerts
	case key.Matches(msg, keys.Tab5):
		m.activeTab = TabInfrastructure
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.data.Metrics)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Select):
		if m.cursor < len(m.data.Metrics) {
			m.toggleSelected(m.data.Metrics[m.cursor].Key)
		}
	case key.Matches(msg, keys.Theme):
		m.toggleTheme()
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	for t := Tab(0); t < tabCount; t++ {
		if m.inZone(tabZonePrefix+tabNames[t], msg) {
			m.activeTab = t
			return m, nil
		}
	}

	for i, s := range m.data.Metrics {
		if m.inZone(metricZonePrefix+s.Key, msg) {
			m.cursor = i
			m.toggleSelected(s.Key)
			return m, nil
		}
	}

	return m, nil
}

func (m Model) inZone(id string, msg tea.MouseMsg) bool {
	info := m.zones.Get(id)
	if info == nil {
		return false
	}
	return info.InBounds(msg)
}

// toggleSelected selects key, or clears the selection if key is already selected.
func (m *Model) toggleSelected(key string) {
	if m.selected == key {
		m.selected = ""
		return
	}
	m.selected = key
}

func (m *Model) toggleTheme() {
	if m.theme == config.ThemeLight {
		m.theme = config.ThemeDark
	} else {
		m.theme = config.ThemeLight
	}
	m.styles = newStyles(m.theme)
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.data.Metrics) {
		m.cursor = len(m.data.Metrics) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	sections := []string{m.renderTabBar(), m.renderHeader()}
	if m.data.Err != "" {
		sections = append(sections, m.styles.banner.Render("⚠ "+m.data.Err))
	}
	sections = append(sections, m.renderTabContent(), m.renderFooter())

	return m.zones.Scan(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderTabBar() string {
	tabs := make([]string, 0, tabCount)
	for i := Tab(0); i < tabCount; i++ {
		name := tabNames[i]
		label := name
		if i == TabAlerts && len(m.data.Alerts) > 0 {
			label = fmt.Sprintf("%s (%d)", name, len(m.data.Alerts))
		}

		style := m.styles.inactiveTab
		if i == m.activeTab {
			style = m.styles.activeTab
		}
		tabs = append(tabs, m.zones.Mark(tabZonePrefix+name, style.Render(label)))
	}

	return m.styles.tabBar.Width(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderHeader() string {
	updated := "..."
	if !m.data.UpdatedAt.IsZero() {
		updated = m.data.UpdatedAt.Local().Format("15:04:05")
	}

	title := m.styles.title.Render(tabTitles[m.activeTab])
	subtitle := m.styles.subtitle.Render("Real-time monitoring • Last updated " + updated)

	health := m.data.Health()
	var badge lipgloss.Style
	switch health {
	case aggregator.HealthHealthy:
		badge = m.styles.badgeOK
	case aggregator.HealthError:
		badge = m.styles.badgeError
	default:
		badge = m.styles.badgeWait
	}
	badges := m.styles.badgeLive.Render("● Live") + badge.Render(health)

	left := lipgloss.JoinVertical(lipgloss.Left, title, subtitle)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(badges) - 4
	if gap < 1 {
		gap = 1
	}

	return m.styles.content.Render(
		lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", gap), badges),
	)
}

func (m Model) renderTabContent() string {
	var content string
	switch m.activeTab {
	case TabOverview:
		content = m.renderOverview()
	case TabMetrics:
		content = m.renderMetrics()
	case TabServices:
		content = m.renderServices()
	case TabAlerts:
		content = m.renderAlerts()
	case TabInfrastructure:
		content = m.renderInfrastructure()
	}

	return m.styles.content.Render(content)
}

func (m Model) renderFooter() string {
	bindings := keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}

	return m.styles.footer.Render(strings.Join(parts, " | "))
}

// contentWidth is the usable width inside the content padding.
func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		return 20
	}
	return w
}
