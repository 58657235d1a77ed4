package catalog

import (
	"fmt"
	"runtime"

	"github.com/ALEYI17/InfraSight_bench/pkg/types"
)

// Family is a microarchitecture family with its own hand-authored event
// name table.
type Family int

const (
	// FamilyPerfGeneric covers CPUs exposed through the kernel perf
	// interface with its generic hardware event set.
	FamilyPerfGeneric Family = iota

	// FamilyAppleM covers Apple Silicon cores, where events are named by
	// the kpep database.
	FamilyAppleM
)

func (f Family) String() string {
	switch f {
	case FamilyPerfGeneric:
		return "perf-generic"
	case FamilyAppleM:
		return "apple-m"
	default:
		return "unknown"
	}
}

// DetectFamily picks the family for the machine we are running on. Selected
// once at startup.
func DetectFamily() Family {
	if runtime.GOOS == "darwin" && runtime.GOARCH == "arm64" {
		return FamilyAppleM
	}
	return FamilyPerfGeneric
}

// candidates holds ordered event name candidates per alias per family. The
// first name that resolves against the live event database wins; resolution
// itself is the counter source's job, so this table never fails, it only
// enumerates.
var candidates = map[Family]map[types.CounterAlias][]string{
	FamilyPerfGeneric: {
		types.AliasCycles:                 {"cpu-cycles", "cycles"},
		types.AliasInstructions:           {"instructions"},
		types.AliasBranches:               {"branches", "branch-instructions"},
		types.AliasBranchMisses:           {"branch-misses"},
		types.AliasDataCacheMisses:        {"l1d-load-misses", "cache-misses"},
		types.AliasInstructionCacheMisses: {"l1i-load-misses"},
	},
	FamilyAppleM: {
		types.AliasCycles:                 {"FIXED_CYCLES", "CORE_ACTIVE_CYCLE"},
		types.AliasInstructions:           {"FIXED_INSTRUCTIONS", "INST_ALL"},
		types.AliasBranches:               {"INST_BRANCH"},
		types.AliasBranchMisses:           {"BRANCH_MISPRED_NONSPEC", "BRANCH_MISPREDICT"},
		types.AliasDataCacheMisses:        {"L1D_CACHE_MISS_LD", "DCACHE_MISS_LD"},
		types.AliasInstructionCacheMisses: {"L1I_CACHE_MISS_DEMAND", "ICACHE_MISS_DEMAND"},
	},
}

// Candidates returns the ordered candidate event names for alias on family.
// Every alias of the closed set has an entry for every family; a missing
// entry is a table authoring bug, not a runtime condition.
func Candidates(fam Family, alias types.CounterAlias) []string {
	byAlias, ok := candidates[fam]
	if !ok {
		panic(fmt.Sprintf("catalog: no event table for family %v", fam))
	}
	names, ok := byAlias[alias]
	if !ok {
		panic(fmt.Sprintf("catalog: no candidates for alias %v on family %v", alias, fam))
	}
	return names
}

// staticDB is an in-memory event database backed by a fixed table.
type staticDB map[string]types.EventDescriptor

func (db staticDB) Resolve(name string) (types.EventDescriptor, bool) {
	d, ok := db[name]
	return d, ok
}
