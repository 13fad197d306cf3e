package bootstrap

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/yaron8/ops-dashboard/dashboard/aggregator"
)

// runPlain drives the same poller and state as the TUI and writes one
// summary line per poll. It blocks until ctx is cancelled.
func (b *Bootstrap) runPlain(ctx context.Context, w io.Writer) {
	b.poller.Run(ctx, func(res aggregator.Result) {
		b.dashboard.Apply(res)
		fmt.Fprintln(w, summaryLine(b.dashboard))
	})
}

// summaryLine renders e.g.
// "15:04:05 Healthy cpu=42.5%(28) memory=61%(28) services=2 alerts=1".
func summaryLine(d *aggregator.Dashboard) string {
	var sb strings.Builder

	updated := "--:--:--"
	if !d.UpdatedAt.IsZero() {
		updated = d.UpdatedAt.Local().Format("15:04:05")
	}
	sb.WriteString(updated)
	sb.WriteString(" ")
	sb.WriteString(d.Health())

	if d.Err != "" {
		fmt.Fprintf(&sb, " (%s)", d.Err)
	}

	for _, s := range d.Metrics {
		fmt.Fprintf(&sb, " %s=%s%s(%d)",
			s.Key,
			strconv.FormatFloat(math.Round(s.Value*10)/10, 'f', -1, 64),
			s.Unit,
			len(s.History),
		)
	}

	fmt.Fprintf(&sb, " services=%d alerts=%d", len(d.Services), len(d.Alerts))
	return sb.String()
}
