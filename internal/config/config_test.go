package config

import (
	"testing"

	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommands(t *testing.T) {
	cmds, err := ParseCommands([]string{"sleep 1", "sort -u file.txt"})
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, []string{"sleep", "1"}, cmds[0].Argv)
	assert.Equal(t, []string{"sort", "-u", "file.txt"}, cmds[1].Argv)
}

func TestParseCommands_Empty(t *testing.T) {
	_, err := ParseCommands(nil)
	assert.Error(t, err)

	_, err = ParseCommands([]string{"  "})
	assert.Error(t, err)
}

func TestParseAliases_DefaultIsAll(t *testing.T) {
	aliases, err := ParseAliases(nil)
	require.NoError(t, err)
	assert.Equal(t, types.AllAliases, aliases)
}

func TestParseAliases_PreservesRequestedOrder(t *testing.T) {
	aliases, err := ParseAliases([]string{"instructions", "cycles"})
	require.NoError(t, err)
	assert.Equal(t, []types.CounterAlias{types.AliasInstructions, types.AliasCycles}, aliases)
}

func TestParseAliases_Unknown(t *testing.T) {
	_, err := ParseAliases([]string{"flops"})
	assert.Error(t, err)
}

func TestParseAliases_Duplicate(t *testing.T) {
	_, err := ParseAliases([]string{"cycles", "cycles"})
	assert.Error(t, err)
}
