//go:build darwin

package catalog

import "github.com/ALEYI17/InfraSight_bench/pkg/types"

// PMC selector codes for Apple M-family cores, hand-authored from the kpep
// event database shipped with the OS. Type 0 marks a fixed counter, type 1
// a configurable one.
const (
	eventTypeFixed        = 0
	eventTypeConfigurable = 1
)

// NewEventDB returns the local event database for this machine.
func NewEventDB() types.EventDB {
	return staticDB{
		"FIXED_CYCLES":           {Name: "FIXED_CYCLES", Type: eventTypeFixed, Config: 0x02},
		"CORE_ACTIVE_CYCLE":      {Name: "CORE_ACTIVE_CYCLE", Type: eventTypeConfigurable, Config: 0x02},
		"FIXED_INSTRUCTIONS":     {Name: "FIXED_INSTRUCTIONS", Type: eventTypeFixed, Config: 0x8c},
		"INST_ALL":               {Name: "INST_ALL", Type: eventTypeConfigurable, Config: 0x8c},
		"INST_BRANCH":            {Name: "INST_BRANCH", Type: eventTypeConfigurable, Config: 0x8d},
		"BRANCH_MISPRED_NONSPEC": {Name: "BRANCH_MISPRED_NONSPEC", Type: eventTypeConfigurable, Config: 0xcb},
		"L1D_CACHE_MISS_LD":      {Name: "L1D_CACHE_MISS_LD", Type: eventTypeConfigurable, Config: 0xd3},
		"L1I_CACHE_MISS_DEMAND":  {Name: "L1I_CACHE_MISS_DEMAND", Type: eventTypeConfigurable, Config: 0xd4},
	}
}
