package sampler

import (
	"context"
	"testing"

	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecSpawner_Success(t *testing.T) {
	res, err := execSpawner{}.Spawn(context.Background(), types.Command{Argv: []string{"true"}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
}

func TestExecSpawner_NonzeroExitIsNotAnError(t *testing.T) {
	res, err := execSpawner{}.Spawn(context.Background(), types.Command{Argv: []string{"false"}})
	require.NoError(t, err)
	assert.NotEqual(t, 0, res.ExitCode)
}

func TestExecSpawner_SpawnFailure(t *testing.T) {
	_, err := execSpawner{}.Spawn(context.Background(), types.Command{Argv: []string{"/definitely/not/a/binary"}})
	assert.Error(t, err)
}

func TestExecSpawner_EmptyCommand(t *testing.T) {
	_, err := execSpawner{}.Spawn(context.Background(), types.Command{})
	assert.Error(t, err)
}

func TestExecSpawner_ReportsPeakMemory(t *testing.T) {
	res, err := execSpawner{}.Spawn(context.Background(), types.Command{Argv: []string{"sh", "-c", "exit 0"}})
	require.NoError(t, err)
	assert.Greater(t, res.PeakRSSBytes, uint64(0))
}
