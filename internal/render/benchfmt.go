package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ALEYI17/InfraSight_bench/pkg/types"
)

// WriteBenchFormat emits every run as one line of the Go testing benchmark
// format, so the output feeds straight into benchstat for significance
// testing this tool does not do itself.
func WriteBenchFormat(w io.Writer, cmd types.Command, samples []types.RunSample) error {
	name := benchName(cmd)
	for _, s := range samples {
		var extra strings.Builder
		aliases := make([]types.CounterAlias, 0, len(s.Counters))
		for a := range s.Counters {
			aliases = append(aliases, a)
		}
		sort.Slice(aliases, func(i, j int) bool { return aliases[i] < aliases[j] })
		for _, a := range aliases {
			fmt.Fprintf(&extra, " %d %s/op", s.Counters[a], a)
		}
		if s.PeakRSSBytes > 0 {
			fmt.Fprintf(&extra, " %d peak-B/op", s.PeakRSSBytes)
		}
		if _, err := fmt.Fprintf(w, "Benchmark%s 1 %d ns/op%s\n", name, s.WallTime.Nanoseconds(), extra.String()); err != nil {
			return err
		}
	}
	return nil
}

func benchName(cmd types.Command) string {
	name := strings.Join(cmd.Argv, "_")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
