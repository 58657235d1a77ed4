//go:build linux

package catalog

import (
	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"golang.org/x/sys/unix"
)

// hwCacheConfig builds a PERF_TYPE_HW_CACHE config word.
func hwCacheConfig(cache, op, result uint64) uint64 {
	return cache | op<<8 | result<<16
}

// NewEventDB returns the local event database: the perf generic hardware
// and cache events this kernel interface defines.
func NewEventDB() types.EventDB {
	return staticDB{
		"cpu-cycles":          {Name: "cpu-cycles", Type: unix.PERF_TYPE_HARDWARE, Config: unix.PERF_COUNT_HW_CPU_CYCLES},
		"cycles":              {Name: "cycles", Type: unix.PERF_TYPE_HARDWARE, Config: unix.PERF_COUNT_HW_CPU_CYCLES},
		"instructions":        {Name: "instructions", Type: unix.PERF_TYPE_HARDWARE, Config: unix.PERF_COUNT_HW_INSTRUCTIONS},
		"branches":            {Name: "branches", Type: unix.PERF_TYPE_HARDWARE, Config: unix.PERF_COUNT_HW_BRANCH_INSTRUCTIONS},
		"branch-instructions": {Name: "branch-instructions", Type: unix.PERF_TYPE_HARDWARE, Config: unix.PERF_COUNT_HW_BRANCH_INSTRUCTIONS},
		"branch-misses":       {Name: "branch-misses", Type: unix.PERF_TYPE_HARDWARE, Config: unix.PERF_COUNT_HW_BRANCH_MISSES},
		"cache-misses":        {Name: "cache-misses", Type: unix.PERF_TYPE_HARDWARE, Config: unix.PERF_COUNT_HW_CACHE_MISSES},
		"l1d-load-misses": {
			Name:   "l1d-load-misses",
			Type:   unix.PERF_TYPE_HW_CACHE,
			Config: hwCacheConfig(unix.PERF_COUNT_HW_CACHE_L1D, unix.PERF_COUNT_HW_CACHE_OP_READ, unix.PERF_COUNT_HW_CACHE_RESULT_MISS),
		},
		"l1i-load-misses": {
			Name:   "l1i-load-misses",
			Type:   unix.PERF_TYPE_HW_CACHE,
			Config: hwCacheConfig(unix.PERF_COUNT_HW_CACHE_L1I, unix.PERF_COUNT_HW_CACHE_OP_READ, unix.PERF_COUNT_HW_CACHE_RESULT_MISS),
		},
	}
}
