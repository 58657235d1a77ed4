package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/ALEYI17/InfraSight_bench/internal/stats"
	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	nameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	improveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	regressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	metricColW   = 14
	valueColW    = 24
)

// Render formats the baseline summary followed by each comparison.
func Render(baseline stats.CommandStatistics, comparisons []stats.ComparisonResult) string {
	var b strings.Builder

	b.WriteString(nameStyle.Render("baseline: "+baseline.Command.Name()) + "\n")
	writeSummary(&b, baseline, nil)

	for _, cmp := range comparisons {
		b.WriteString("\n")
		b.WriteString(nameStyle.Render(cmp.Candidate.Command.Name()) + "\n")
		writeSummary(&b, cmp.Candidate, &cmp)
	}
	return b.String()
}

func writeSummary(b *strings.Builder, cs stats.CommandStatistics, cmp *stats.ComparisonResult) {
	fmt.Fprintf(b, "  %s\n", dimStyle.Render(fmt.Sprintf("%d samples", cs.Samples)))

	row(b, "wall time", fmt.Sprintf("%v ± %v", duration(cs.Wall.Mean), duration(cs.Wall.Stddev)), relDelta(cmp, func(c *stats.ComparisonResult) (stats.Delta, bool) { return c.Wall, true }))
	row(b, "  min / max", fmt.Sprintf("%v / %v", duration(cs.Wall.Min), duration(cs.Wall.Max)), "")
	row(b, "peak rss", memory(cs.PeakRSS.Mean), relDelta(cmp, func(c *stats.ComparisonResult) (stats.Delta, bool) { return c.PeakRSS, true }))

	for _, alias := range cs.Order {
		m, ok := cs.Counters[alias]
		if !ok {
			row(b, alias.String(), dimStyle.Render("unavailable"), "")
			continue
		}
		row(b, alias.String(), fmt.Sprintf("%s ± %s", count(m.Mean), count(m.Stddev)), relDelta(cmp, func(c *stats.ComparisonResult) (stats.Delta, bool) {
			d, ok := c.Counters[alias]
			return d, ok
		}))
	}

	// Instructions per cycle, when both sides of the ratio were measured.
	if cyc, ok := cs.Counters[types.AliasCycles]; ok && cyc.Mean > 0 {
		if ins, ok := cs.Counters[types.AliasInstructions]; ok {
			row(b, "ipc", fmt.Sprintf("%.2f", ins.Mean/cyc.Mean), "")
		}
	}
}

func row(b *strings.Builder, metric, value, delta string) {
	fmt.Fprintf(b, "  %-*s %-*s %s\n", metricColW, headerStyle.Render(metric), valueColW, value, delta)
}

// relDelta renders the relative delta with its raw sign; positive means
// the candidate's mean is higher than the baseline's.
func relDelta(cmp *stats.ComparisonResult, pick func(*stats.ComparisonResult) (stats.Delta, bool)) string {
	if cmp == nil {
		return ""
	}
	d, ok := pick(cmp)
	if !ok {
		return ""
	}
	text := fmt.Sprintf("%+.1f%%", d.Relative*100)
	if d.Relative > 0 {
		return regressStyle.Render(text)
	}
	if d.Relative < 0 {
		return improveStyle.Render(text)
	}
	return dimStyle.Render(text)
}

func duration(ns float64) time.Duration {
	return time.Duration(ns).Round(time.Microsecond)
}

func memory(bytes float64) string {
	switch {
	case bytes >= 1<<30:
		return fmt.Sprintf("%.2f GiB", bytes/(1<<30))
	case bytes >= 1<<20:
		return fmt.Sprintf("%.2f MiB", bytes/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.2f KiB", bytes/(1<<10))
	default:
		return fmt.Sprintf("%.0f B", bytes)
	}
}

func count(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fG", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
