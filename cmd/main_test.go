package main

import (
	"context"
	"errors"
	"testing"

	"github.com/ALEYI17/InfraSight_bench/internal/config"
	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{}

func (stubSource) Setup(aliases []types.CounterAlias) ([]types.CounterAlias, error) {
	return aliases, nil
}
func (stubSource) BeginRun() error { return nil }
func (stubSource) EndRun() (types.CounterDelta, error) {
	return types.CounterDelta{types.AliasCycles: 100}, nil
}
func (stubSource) Teardown() error { return nil }

// failingSpawner reports a nonzero exit for one command and success for
// the rest.
type failingSpawner struct {
	fail string
}

func (s failingSpawner) Spawn(ctx context.Context, cmd types.Command) (types.SpawnResult, error) {
	if cmd.Name() == s.fail {
		return types.SpawnResult{ExitCode: 1}, nil
	}
	return types.SpawnResult{PeakRSSBytes: 1 << 20}, nil
}

func benchConfig(argvs ...string) config.Config {
	cfg := config.Config{Aliases: types.AllAliases}
	for _, a := range argvs {
		cfg.Commands = append(cfg.Commands, types.Command{Argv: []string{a}})
	}
	return cfg
}

func TestMeasureCommands_FailedCandidateLosesOnlyItsComparison(t *testing.T) {
	cfg := benchConfig("base", "broken", "rival")

	baseline, comparisons, err := measureCommands(context.Background(),
		stubSource{}, failingSpawner{fail: "broken"}, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, "base", baseline.Command.Name())
	require.Len(t, comparisons, 1)
	assert.Equal(t, "rival", comparisons[0].Candidate.Command.Name())
}

func TestMeasureCommands_BaselineFailureIsFatal(t *testing.T) {
	cfg := benchConfig("broken", "rival")

	_, _, err := measureCommands(context.Background(),
		stubSource{}, failingSpawner{fail: "broken"}, cfg, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrAllRunsFailed))
}
