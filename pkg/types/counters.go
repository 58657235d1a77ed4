package types

// CounterAlias is a caller-facing abstract counter name, decoupled from the
// CPU-specific event identifiers it resolves to.
type CounterAlias int

const (
	AliasCycles CounterAlias = iota
	AliasInstructions
	AliasBranches
	AliasBranchMisses
	AliasDataCacheMisses
	AliasInstructionCacheMisses

	numAliases
)

// AllAliases lists every alias in declaration order. Order is significant
// for output columns and for deterministic dropping on counter exhaustion.
var AllAliases = []CounterAlias{
	AliasCycles,
	AliasInstructions,
	AliasBranches,
	AliasBranchMisses,
	AliasDataCacheMisses,
	AliasInstructionCacheMisses,
}

var aliasNames = map[CounterAlias]string{
	AliasCycles:                 "cycles",
	AliasInstructions:           "instructions",
	AliasBranches:               "branches",
	AliasBranchMisses:           "branch-misses",
	AliasDataCacheMisses:        "dcache-misses",
	AliasInstructionCacheMisses: "icache-misses",
}

func (a CounterAlias) String() string {
	if name, ok := aliasNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAlias maps a user-supplied name back to its alias.
func ParseAlias(name string) (CounterAlias, bool) {
	for a, n := range aliasNames {
		if n == name {
			return a, true
		}
	}
	return 0, false
}

// MaxCounters bounds how many counters a single acquisition can carry.
const MaxCounters = 16

// counterMask masks raw values to the hardware counter width, so that a
// wrapped counter still yields a non-negative delta.
const counterMask = (uint64(1) << 48) - 1

// CounterSnapshot is one read of all configured counters, indexed by the
// counter-index-to-alias mapping established at acquisition setup.
type CounterSnapshot struct {
	Values [MaxCounters]uint64
}

// CounterDelta holds per-alias counter deltas for one run. An alias absent
// from the map was unavailable, which is distinct from a measured zero.
type CounterDelta map[CounterAlias]uint64

// DeltaValue computes after-before at the hardware counter width.
func DeltaValue(before, after uint64) uint64 {
	return (after - before) & counterMask
}
