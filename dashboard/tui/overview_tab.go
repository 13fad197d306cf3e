package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaron8/ops-dashboard/dashboard/aggregator"
	"github.com/yaron8/ops-dashboard/telemetrics"
)

// renderOverview lays out stat tiles, metric cards and the services and
// alerts panels.
func (m Model) renderOverview() string {
	width := m.contentWidth()

	sections := []string{m.renderStatTiles(width)}

	if m.data.Loading && len(m.data.Metrics) == 0 {
		sections = append(sections, m.styles.muted.Render("Waiting for first snapshot..."))
	} else {
		sections = append(sections, m.renderMetricCards(width))
	}

	half := width / 2
	if width < 80 {
		sections = append(sections, m.renderServicesPanel(width), m.renderAlertsPanel(width))
	} else {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderServicesPanel(half),
			m.renderAlertsPanel(width-half),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderStatTiles(width int) string {
	if len(m.stats) == 0 {
		return ""
	}

	tileWidth := width / len(m.stats)
	tiles := make([]string, 0, len(m.stats))
	for _, s := range m.stats {
		trend := m.styles.negative
		if positiveTrend(s.Trend) {
			trend = m.styles.positive
		}
		body := m.styles.label.Render(s.Label) + "\n" +
			m.styles.value.Render(s.Value) + " " + trend.Render(s.Trend)
		tiles = append(tiles, m.styles.card.Width(tileWidth-2).Render(body))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

// positiveTrend reports whether a tile trend is an explicit increase. Flat
// or unsigned trends such as "0%" render as negative.
func positiveTrend(trend string) bool {
	return strings.HasPrefix(trend, "+")
}

func (m Model) renderMetricCards(width int) string {
	columns := 1
	if width >= 80 {
		columns = 2
	}
	cardWidth := width / columns

	var rows []string
	var row []string
	for i, s := range m.data.Metrics {
		row = append(row, m.metricCard(i, s, cardWidth))
		if len(row) == columns {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) metricCard(i int, s aggregator.Series, width int) string {
	st := m.styles

	chip := "Usage"
	if s.Unit == telemetrics.UnitMillis {
		chip = "Latency"
	}
	chipStyle, color := st.chipOK, st.palette.secondary
	if aggregator.IsWarning(s.Metric) {
		chipStyle, color = st.chipWarn, st.palette.warning
	}

	inner := width - 4
	lines := []string{
		st.label.Render(s.Label) + "  " + chipStyle.Render(chip),
		st.value.Render(formatValue(s.Value, s.Unit)),
		sparkline(s.History, color),
		progressBar(aggregator.Progress(s.Metric), inner, color),
	}

	if m.selected == s.Key {
		stats := aggregator.ComputeStats(s.History)
		lines = append(lines, st.muted.Render(fmt.Sprintf("Min: %s  Max: %s  Avg: %s",
			formatValue(stats.Min, s.Unit),
			formatValue(stats.Max, s.Unit),
			formatValue(stats.Avg, s.Unit),
		)))
	}

	style := st.card
	if i == m.cursor {
		style = st.cardFocused
	}

	return m.zones.Mark(metricZonePrefix+s.Key, style.Width(width-2).Render(strings.Join(lines, "\n")))
}

func (m Model) renderServicesPanel(width int) string {
	lines := []string{m.styles.sectionTitle.Render("Services")}
	if len(m.data.Services) == 0 {
		lines = append(lines, m.styles.muted.Render("No services reported"))
	}
	for _, svc := range m.data.Services {
		lines = append(lines, fmt.Sprintf("%s %s  %s",
			m.styles.statusStyle(string(svc.Status)).Render("●"),
			svc.Name,
			m.styles.muted.Render(fmt.Sprintf("%dms", svc.Latency)),
		))
	}

	return m.styles.panel.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderAlertsPanel(width int) string {
	lines := []string{m.styles.sectionTitle.Render("Recent Alerts")}
	if len(m.data.Alerts) == 0 {
		lines = append(lines, m.styles.muted.Render("No active alerts"))
	}
	for _, a := range m.data.Alerts {
		lines = append(lines, fmt.Sprintf("%s %s",
			m.styles.statusStyle(string(a.Severity)).Render("▲"),
			a.Title,
		))
	}

	return m.styles.panel.Width(width - 2).Render(strings.Join(lines, "\n"))
}

// formatValue prints a value with its unit, e.g. "42.5%" or "12 min".
func formatValue(v float64, unit string) string {
	num := strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
	if unit == telemetrics.UnitPercent {
		return num + unit
	}
	return num + " " + unit
}
