package tui

import (
	"fmt"
	"strings"

	"github.com/yaron8/ops-dashboard/telemetrics"
)

func (m Model) renderServices() string {
	if len(m.data.Services) == 0 {
		return m.styles.muted.Render("No services reported")
	}

	lines := []string{
		m.styles.label.Render(fmt.Sprintf("%-24s %-12s %s", "SERVICE", "STATUS", "LATENCY")),
	}
	for _, svc := range m.data.Services {
		status := fmt.Sprintf("%-12s", svc.Status)
		lines = append(lines, fmt.Sprintf("%-24s %s %dms",
			svc.Name,
			m.styles.statusStyle(string(svc.Status)).Render(status),
			svc.Latency,
		))
	}

	return m.styles.panel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderAlerts() string {
	if len(m.data.Alerts) == 0 {
		return m.styles.muted.Render("No active alerts")
	}

	blocks := make([]string, 0, len(m.data.Alerts))
	for _, a := range m.data.Alerts {
		head := m.styles.statusStyle(string(a.Severity)).Render(severityLabel(a.Severity)) +
			"  " + m.styles.value.Render(a.Title)
		blocks = append(blocks, m.styles.card.Width(m.contentWidth()-2).Render(head+"\n"+m.styles.muted.Render(a.Detail)))
	}

	return strings.Join(blocks, "\n")
}

func severityLabel(s telemetrics.Severity) string {
	return strings.ToUpper(string(s))
}
