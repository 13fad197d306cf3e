package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaron8/ops-dashboard/dashboard/aggregator"
)

// renderMetrics draws one wide chart per metric with its window statistics.
func (m Model) renderMetrics() string {
	if len(m.data.Metrics) == 0 {
		return m.styles.muted.Render("No metrics yet")
	}

	width := m.contentWidth()
	blocks := make([]string, 0, len(m.data.Metrics))
	for i, s := range m.data.Metrics {
		blocks = append(blocks, m.metricChart(i, s, width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, blocks...)
}

func (m Model) metricChart(i int, s aggregator.Series, width int) string {
	st := m.styles
	color := st.palette.secondary
	if aggregator.IsWarning(s.Metric) {
		color = st.palette.warning
	}

	stats := aggregator.ComputeStats(s.History)
	lines := []string{
		st.label.Render(s.Label) + "  " + st.value.Render(formatValue(s.Value, s.Unit)),
		wideSparkline(s.History, color),
		st.muted.Render(fmt.Sprintf("Current: %s  Average: %s  Peak: %s",
			formatValue(s.Value, s.Unit),
			formatValue(stats.Avg, s.Unit),
			formatValue(stats.Max, s.Unit),
		)),
	}

	style := st.card
	if i == m.cursor {
		style = st.cardFocused
	}

	return m.zones.Mark(metricZonePrefix+s.Key, style.Width(width-2).Render(strings.Join(lines, "\n")))
}

// wideSparkline doubles every point so the chart reads at tab width.
func wideSparkline(history []float64, color lipgloss.Color) string {
	wide := make([]float64, 0, len(history)*2)
	for _, v := range history {
		wide = append(wide, v, v)
	}
	return sparkline(wide, color)
}
