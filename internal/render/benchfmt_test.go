package render

import (
	"strings"
	"testing"
	"time"

	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteBenchFormat(t *testing.T) {
	cmd := types.Command{Argv: []string{"sort", "-u", "file.txt"}}
	samples := []types.RunSample{
		{
			WallTime:     1500 * time.Microsecond,
			Counters:     types.CounterDelta{types.AliasCycles: 42},
			PeakRSSBytes: 2048,
		},
	}

	var b strings.Builder
	require.NoError(t, WriteBenchFormat(&b, cmd, samples))

	line := strings.TrimSpace(b.String())
	assert.True(t, strings.HasPrefix(line, "Benchmarksort_-u_file.txt 1 1500000 ns/op"), line)
	assert.Contains(t, line, "42 cycles/op")
	assert.Contains(t, line, "2048 peak-B/op")
}

func TestBenchName_Sanitized(t *testing.T) {
	name := benchName(types.Command{Argv: []string{"sh", "-c", "echo $x | wc"}})
	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, "|")
	assert.NotContains(t, name, "$")
}
