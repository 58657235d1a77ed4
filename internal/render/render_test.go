package render

import (
	"strings"
	"testing"
	"time"

	"github.com/ALEYI17/InfraSight_bench/internal/stats"
	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryWithOrder(order []types.CounterAlias) stats.CommandStatistics {
	samples := []types.RunSample{{
		WallTime: time.Millisecond,
		Counters: types.CounterDelta{
			types.AliasCycles:       1000,
			types.AliasInstructions: 4000,
		},
	}}
	return stats.Summarize(types.Command{Argv: []string{"prog"}}, order, samples)
}

func TestRender_CounterRowsFollowRequestedOrder(t *testing.T) {
	out := Render(summaryWithOrder([]types.CounterAlias{
		types.AliasInstructions,
		types.AliasCycles,
	}), nil)

	ins := strings.Index(out, "instructions")
	cyc := strings.Index(out, "cycles")
	require.NotEqual(t, -1, ins)
	require.NotEqual(t, -1, cyc)
	assert.Less(t, ins, cyc, "requested order puts instructions before cycles")
}

func TestRender_OnlyRequestedCountersRendered(t *testing.T) {
	out := Render(summaryWithOrder([]types.CounterAlias{
		types.AliasCycles,
		types.AliasInstructions,
	}), nil)

	assert.NotContains(t, out, "branch-misses")
	assert.NotContains(t, out, "dcache-misses")
}

func TestRender_RequestedButUnavailableCounterShown(t *testing.T) {
	out := Render(summaryWithOrder([]types.CounterAlias{
		types.AliasCycles,
		types.AliasBranchMisses,
	}), nil)

	assert.Contains(t, out, "branch-misses")
	assert.Contains(t, out, "unavailable")
}
