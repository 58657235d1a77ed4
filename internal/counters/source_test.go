package counters

import (
	"testing"

	"github.com/ALEYI17/InfraSight_bench/internal/catalog"
	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB map[string]types.EventDescriptor

func (db fakeDB) Resolve(name string) (types.EventDescriptor, bool) {
	d, ok := db[name]
	return d, ok
}

func TestResolveAlias_FirstResolvableCandidateWins(t *testing.T) {
	// Both cycle candidates resolve; the catalog's first one must win.
	db := fakeDB{
		"FIXED_CYCLES":      {Name: "FIXED_CYCLES", Config: 1},
		"CORE_ACTIVE_CYCLE": {Name: "CORE_ACTIVE_CYCLE", Config: 2},
	}

	d, ok := resolveAlias(db, catalog.FamilyAppleM, types.AliasCycles)
	require.True(t, ok)
	assert.Equal(t, "FIXED_CYCLES", d.Name)
}

func TestResolveAlias_FallsBackInOrder(t *testing.T) {
	db := fakeDB{
		"CORE_ACTIVE_CYCLE": {Name: "CORE_ACTIVE_CYCLE", Config: 2},
	}

	d, ok := resolveAlias(db, catalog.FamilyAppleM, types.AliasCycles)
	require.True(t, ok)
	assert.Equal(t, "CORE_ACTIVE_CYCLE", d.Name)
}

func TestResolveAlias_NoCandidateResolves(t *testing.T) {
	_, ok := resolveAlias(fakeDB{}, catalog.FamilyAppleM, types.AliasBranches)
	assert.False(t, ok)
}
