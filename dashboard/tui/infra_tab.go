package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaron8/ops-dashboard/telemetrics"
)

// renderInfrastructure lists clusters with utilisation and regions with traffic.
func (m Model) renderInfrastructure() string {
	width := m.contentWidth()
	barWidth := width / 3
	if barWidth < 10 {
		barWidth = 10
	}

	clusters := []string{m.styles.sectionTitle.Render("Clusters")}
	if len(m.data.Clusters) == 0 {
		clusters = append(clusters, m.styles.muted.Render("No clusters reported"))
	}
	for _, c := range m.data.Clusters {
		clusters = append(clusters,
			fmt.Sprintf("%s  %s", m.styles.value.Render(c.Name),
				m.styles.muted.Render(fmt.Sprintf("%d nodes • %d pods", c.Nodes, c.Pods))),
			fmt.Sprintf("%s Utilization %s", progressBar(c.Utilization, barWidth, m.styles.palette.primary),
				formatValue(c.Utilization, telemetrics.UnitPercent)),
		)
	}

	regions := []string{m.styles.sectionTitle.Render("Regions")}
	if len(m.data.Regions) == 0 {
		regions = append(regions, m.styles.muted.Render("No regions reported"))
	}
	for _, r := range m.data.Regions {
		regions = append(regions,
			fmt.Sprintf("%-12s %s %s", r.Name,
				progressBar(r.Traffic, barWidth, m.styles.palette.secondary),
				formatValue(r.Traffic, telemetrics.UnitPercent)),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.panel.Width(width-2).Render(strings.Join(clusters, "\n")),
		m.styles.panel.Width(width-2).Render(strings.Join(regions, "\n")),
	)
}
