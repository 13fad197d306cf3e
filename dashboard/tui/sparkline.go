package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaron8/ops-dashboard/dashboard/aggregator"
)

// sparkBlocks contains 8 unicode block characters, lowest to highest.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkline draws one block per history point. Heights are absolute
// percentages (after the bar floor), not auto-scaled.
func sparkline(history []float64, color lipgloss.Color) string {
	if len(history) == 0 {
		return ""
	}

	runes := make([]rune, 0, len(history))
	for _, point := range history {
		runes = append(runes, sparkBlocks[blockIndex(aggregator.BarHeight(point))])
	}

	return lipgloss.NewStyle().Foreground(color).Render(string(runes))
}

// blockIndex maps a bar height in [BarMin, BarMax] to a block rune index.
func blockIndex(height float64) int {
	idx := int(height/aggregator.BarMax*float64(len(sparkBlocks)-1) + 0.5)
	if idx < 0 {
		return 0
	}
	if idx >= len(sparkBlocks) {
		return len(sparkBlocks) - 1
	}
	return idx
}

// progressBar renders a horizontal bar filled to pct percent.
func progressBar(pct float64, width int, color lipgloss.Color) string {
	if width < 1 {
		width = 1
	}
	filled := int(pct/100*float64(width) + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}

	fill := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(lipgloss.Color("#374151")).Render(strings.Repeat("░", width-filled))
	return fill + rest
}
