//go:build darwin

package counters

import (
	"fmt"
	"time"
)

// kpc counter class mask for the configurable registers; the fixed-class
// registers are left alone.
const kpcClassConfigurableMask = 1 << 1

// cfgUserA64 enables EL0 64-bit counting in a configurable PMC config
// word; without it the register counts nothing in user mode.
const cfgUserA64 = 0x20000

// samplerPMCThread asks the kperf action to sample per-thread PMC values.
const samplerPMCThread = 1 << 13

// kpcForceAllCtrs takes (or releases) exclusive control of the hardware
// counters. This is global: it fails while another profiler or the power
// manager holds them, and it needs root.
func kpcForceAllCtrs(on bool) error {
	v := uint32(0)
	if on {
		v = 1
	}
	return sysctlbynameSetUint32("kpc.force_all_ctrs", v)
}

func kpcConfigurableCount() (int, error) {
	n, err := sysctlbynameUint32("kpc.configurable_count")
	return int(n), err
}

func kpcSetConfig(configs []uint64) error {
	return sysctlbynameSetUint64s("kpc.config", configs)
}

func kpcSetCounting(classes uint32) error {
	return sysctlbynameSetUint32("kpc.counting", classes)
}

func kpcSetThreadCounting(classes uint32) error {
	return sysctlbynameSetUint32("kpc.thread_counting", classes)
}

// kperfConfigureTimer programs a recurring timer that fires action 1,
// which samples per-thread PMC state for pid (or every process when pid is
// -1) into the kernel trace stream.
func kperfConfigureTimer(period time.Duration, pid int) error {
	steps := []struct {
		name string
		do   func() error
	}{
		{"kperf.action.count", func() error { return sysctlbynameSetUint32("kperf.action.count", 1) }},
		{"kperf.action.samplers", func() error { return sysctlbynameSetUint64s("kperf.action.samplers", []uint64{1, samplerPMCThread}) }},
		{"kperf.action.filter_by_pid", func() error {
			return sysctlbynameSetUint64s("kperf.action.filter_by_pid", []uint64{1, uint64(int64(pid))})
		}},
		{"kperf.timer.count", func() error { return sysctlbynameSetUint32("kperf.timer.count", 1) }},
		{"kperf.timer.period", func() error {
			return sysctlbynameSetUint64s("kperf.timer.period", []uint64{0, machTicks(uint64(period.Nanoseconds()))})
		}},
		{"kperf.timer.action", func() error { return sysctlbynameSetUint64s("kperf.timer.action", []uint64{0, 1}) }},
		{"kperf.sampling", func() error { return sysctlbynameSetUint32("kperf.sampling", 1) }},
	}
	for _, s := range steps {
		if err := s.do(); err != nil {
			return fmt.Errorf("configuring %s: %w", s.name, err)
		}
	}
	return nil
}

func kperfSampling(on bool) error {
	v := uint32(0)
	if on {
		v = 1
	}
	return sysctlbynameSetUint32("kperf.sampling", v)
}

func kperfReset() error {
	return sysctlbynameSetUint32("kperf.reset", 1)
}
