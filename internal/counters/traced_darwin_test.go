//go:build darwin

package counters

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ALEYI17/InfraSight_bench/internal/catalog"
	"github.com/ALEYI17/InfraSight_bench/internal/ktrace"
	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubControl swaps every kernel control call for a recording stub and
// restores the real ones when the test ends. Steps that should fail are
// overridden by the caller afterwards.
func stubControl(t *testing.T, calls *[]string) {
	t.Helper()

	savedForce := forceAllCtrs
	savedCount := configurableCount
	savedConfig := setConfig
	savedCounting := setCounting
	savedThread := setThreadCounting
	savedTimer := configureTimer
	savedSampling := samplingEnable
	savedReset := samplerReset
	t.Cleanup(func() {
		forceAllCtrs = savedForce
		configurableCount = savedCount
		setConfig = savedConfig
		setCounting = savedCounting
		setThreadCounting = savedThread
		configureTimer = savedTimer
		samplingEnable = savedSampling
		samplerReset = savedReset
	})

	forceAllCtrs = func(on bool) error {
		*calls = append(*calls, fmt.Sprintf("force=%v", on))
		return nil
	}
	configurableCount = func() (int, error) { return 4, nil }
	setConfig = func([]uint64) error {
		*calls = append(*calls, "config")
		return nil
	}
	setCounting = func(classes uint32) error {
		*calls = append(*calls, fmt.Sprintf("counting=%d", classes))
		return nil
	}
	setThreadCounting = func(classes uint32) error {
		*calls = append(*calls, fmt.Sprintf("thread=%d", classes))
		return nil
	}
	configureTimer = func(time.Duration, int) error {
		*calls = append(*calls, "timer")
		return nil
	}
	samplingEnable = func(on bool) error {
		*calls = append(*calls, fmt.Sprintf("sampling=%v", on))
		return nil
	}
	samplerReset = func() error {
		*calls = append(*calls, "reset")
		return nil
	}
}

func appleCyclesDB() fakeDB {
	return fakeDB{"FIXED_CYCLES": {Name: "FIXED_CYCLES", Config: 0x02}}
}

func TestTracedSetup_ReleasesControlWhenProgrammingFails(t *testing.T) {
	var calls []string
	stubControl(t, &calls)
	setConfig = func([]uint64) error { return errors.New("kpc.config: invalid argument") }

	src := &tracedSource{db: appleCyclesDB(), opts: Options{Family: catalog.FamilyAppleM}}
	_, err := src.Setup([]types.CounterAlias{types.AliasCycles})
	require.Error(t, err)

	// Exclusive control was taken and must be given back, with counting
	// disabled again on the way out.
	assert.Equal(t, []string{
		"force=true",
		"sampling=false", "reset", "thread=0", "counting=0", "force=false",
	}, calls)
}

func TestTracedSetup_ReleasesControlWhenTimerFails(t *testing.T) {
	var calls []string
	stubControl(t, &calls)
	configureTimer = func(time.Duration, int) error { return errors.New("kperf.timer.period: busy") }

	src := &tracedSource{db: appleCyclesDB(), opts: Options{Family: catalog.FamilyAppleM}}
	_, err := src.Setup([]types.CounterAlias{types.AliasCycles})
	require.Error(t, err)

	assert.Equal(t, "force=true", calls[0])
	assert.Equal(t, "force=false", calls[len(calls)-1])
}

func TestTracedSetup_NoReleaseWhenControlDenied(t *testing.T) {
	var calls []string
	stubControl(t, &calls)
	forceAllCtrs = func(on bool) error {
		calls = append(calls, fmt.Sprintf("force=%v", on))
		if on {
			return errors.New("kpc.force_all_ctrs: operation not permitted")
		}
		return nil
	}

	src := &tracedSource{db: appleCyclesDB(), opts: Options{Family: catalog.FamilyAppleM}}
	_, err := src.Setup([]types.CounterAlias{types.AliasCycles})
	require.Error(t, err)

	// Control was never acquired, so nothing must be released.
	assert.Equal(t, []string{"force=true"}, calls)
}

// phaseReader hands out one batch per Drain call: first the backlog that
// piled up before the window, then the window's own records.
type phaseReader struct {
	batches [][]ktrace.Record
}

func (r *phaseReader) Drain(dst []ktrace.Record) (int, error) {
	if len(r.batches) == 0 {
		return 0, nil
	}
	b := r.batches[0]
	r.batches = r.batches[1:]
	return copy(dst, b), nil
}

func kpcSample(ts, tid, value uint64) ktrace.Record {
	return ktrace.Record{
		Timestamp: ts,
		ThreadID:  tid,
		ID:        PerfKPCDataID | ktrace.FuncStart,
		Args:      [4]uint64{value},
	}
}

func TestTracedBeginRun_DiscardsBacklogBetweenWindows(t *testing.T) {
	// The stale sample predates the window. If it survives into the
	// capture it becomes thread 7's opening snapshot and the delta reads
	// 100 instead of 150.
	rdr := &phaseReader{batches: [][]ktrace.Record{
		{kpcSample(10, 7, 100)},
		{kpcSample(20, 7, 200), kpcSample(30, 7, 350)},
	}}
	src := &tracedSource{
		reader:     rdr,
		counterMap: []types.CounterAlias{types.AliasCycles},
		opts:       Options{TriggerPeriod: time.Millisecond},
	}

	require.NoError(t, src.BeginRun())
	delta, err := src.EndRun()
	require.NoError(t, err)
	assert.Equal(t, uint64(150), delta[types.AliasCycles])
}
