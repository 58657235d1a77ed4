package catalog

import (
	"testing"

	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidates_CoverEveryAliasOnEveryFamily(t *testing.T) {
	for _, fam := range []Family{FamilyPerfGeneric, FamilyAppleM} {
		for _, alias := range types.AllAliases {
			names := Candidates(fam, alias)
			assert.NotEmpty(t, names, "family %v alias %v", fam, alias)
		}
	}
}

func TestCandidates_OrderIsPriority(t *testing.T) {
	names := Candidates(FamilyAppleM, types.AliasCycles)
	require.GreaterOrEqual(t, len(names), 2)
	assert.Equal(t, "FIXED_CYCLES", names[0], "the fixed counter is preferred")
}

func TestCandidates_UnknownFamilyPanics(t *testing.T) {
	assert.Panics(t, func() { Candidates(Family(99), types.AliasCycles) })
}

func TestStaticDB_Resolve(t *testing.T) {
	db := staticDB{"ev": {Name: "ev", Config: 7}}

	d, ok := db.Resolve("ev")
	require.True(t, ok)
	assert.Equal(t, uint64(7), d.Config)

	_, ok = db.Resolve("missing")
	assert.False(t, ok)
}

func TestNewEventDB_ResolvesFirstCycleCandidate(t *testing.T) {
	// Whatever this platform's database is, the local family's first
	// cycles candidate is expected to resolve: cycles are the one counter
	// every supported CPU has.
	if DetectFamily() == FamilyPerfGeneric && len(Candidates(FamilyPerfGeneric, types.AliasCycles)) > 0 {
		db := NewEventDB()
		_, ok := db.Resolve(Candidates(DetectFamily(), types.AliasCycles)[0])
		assert.True(t, ok)
	}
}
