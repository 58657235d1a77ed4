//go:build darwin

package counters

import (
	"errors"
	"fmt"

	"github.com/ALEYI17/InfraSight_bench/internal/ktrace"
	"github.com/ALEYI17/InfraSight_bench/pkg/logutil"
	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// tracedSource acquires counters through the kernel sampling trigger and
// trace stream: counters cannot be read synchronously per thread here, so
// a timer samples every thread's counter state into trace records and a
// background loop demultiplexes them back into per-thread before/after
// snapshots.
type tracedSource struct {
	db   types.EventDB
	opts Options

	counterMap []types.CounterAlias // physical counter index -> alias
	capture    *ktrace.Capture
	kd         *kdebugReader
	reader     ktrace.Reader
}

const traceBufRecords = 1 << 20

// Kernel control calls, indirected so tests can observe the acquisition
// and release sequence without the sysctl surface underneath.
var (
	forceAllCtrs      = kpcForceAllCtrs
	configurableCount = kpcConfigurableCount
	setConfig         = kpcSetConfig
	setCounting       = kpcSetCounting
	setThreadCounting = kpcSetThreadCounting
	configureTimer    = kperfConfigureTimer
	samplingEnable    = kperfSampling
	samplerReset      = kperfReset
)

func newPlatformSource(db types.EventDB, opts Options) (types.CounterSource, error) {
	return &tracedSource{db: db, opts: opts}, nil
}

// Setup runs the ordered acquisition sequence; each step's success is a
// precondition for the next.
func (s *tracedSource) Setup(aliases []types.CounterAlias) (active []types.CounterAlias, err error) {
	logger := logutil.GetLogger()

	// 1. Exclusive control of the hardware counters. Global, so failure
	// means another profiler or the power manager holds them.
	if err := forceAllCtrs(true); err != nil {
		if errors.Is(err, unix.EPERM) || errors.Is(err, unix.EACCES) {
			return nil, fmt.Errorf("taking exclusive counter control (run as root): %w", types.ErrPermissionDenied)
		}
		return nil, fmt.Errorf("taking exclusive counter control: %w", err)
	}
	// Control is held from here on. A later step failing must release it
	// and whatever else got programmed, or the partial state outlives the
	// process.
	defer func() {
		if err != nil {
			if terr := s.Teardown(); terr != nil {
				logger.Warn("releasing partial counter setup", zap.Error(terr))
			}
		}
	}()

	// 2. Resolve aliases into counter register configuration and the
	// counter-index-to-alias map.
	slots, err := configurableCount()
	if err != nil {
		return nil, fmt.Errorf("querying counter slots: %w", err)
	}
	var configs []uint64
	for _, alias := range aliases {
		desc, ok := resolveAlias(s.db, s.opts.Family, alias)
		if !ok {
			logger.Warn("counter unavailable on this CPU, skipping",
				zap.Stringer("alias", alias),
				zap.Error(types.ErrEventUnavailable))
			continue
		}
		if len(configs) == slots {
			logger.Warn("counter slots exhausted, dropping remaining aliases",
				zap.Stringer("first_dropped", alias),
				zap.Error(types.ErrCounterExhausted))
			break
		}
		configs = append(configs, desc.Config|cfgUserA64)
		s.counterMap = append(s.counterMap, alias)
	}

	// 3. Program the counter registers.
	if err := setConfig(configs); err != nil {
		return nil, fmt.Errorf("programming counter registers: %w", err)
	}
	if err := setCounting(kpcClassConfigurableMask); err != nil {
		return nil, fmt.Errorf("enabling counting: %w", err)
	}
	if err := setThreadCounting(kpcClassConfigurableMask); err != nil {
		return nil, fmt.Errorf("enabling per-thread counting: %w", err)
	}

	// 4. Recurring timer trigger sampling per-thread counter state.
	if err := configureTimer(s.opts.TriggerPeriod, s.opts.TargetPID); err != nil {
		return nil, fmt.Errorf("configuring sampling trigger: %w", err)
	}

	// 5. Trace stream, filtered to the per-thread counter records, with
	// buffer state reinitialized before enabling.
	s.kd = newKdebugReader(traceBufRecords)
	s.reader = s.kd
	if err := s.kd.setup(); err != nil {
		return nil, err
	}
	if err := s.kd.setFilter(dbgPerf, perfKPC); err != nil {
		return nil, err
	}
	if err := s.kd.enable(true); err != nil {
		return nil, fmt.Errorf("enabling trace stream: %w", err)
	}

	return s.counterMap, nil
}

// BeginRun opens a sampling window. The trace stream stays enabled between
// runs, so records accumulated since the previous window are discarded
// first; a stale sample must not become a thread's opening snapshot.
func (s *tracedSource) BeginRun() error {
	scratch := make([]ktrace.Record, 4096)
	for {
		n, err := s.reader.Drain(scratch)
		if err != nil {
			return fmt.Errorf("flushing trace backlog: %w", err)
		}
		if n < len(scratch) {
			break
		}
	}

	s.capture = ktrace.NewCapture(s.reader, ktrace.Config{
		EventID:       PerfKPCDataID,
		Counters:      len(s.counterMap),
		TriggerPeriod: s.opts.TriggerPeriod,
	})
	s.capture.Start()
	return nil
}

func (s *tracedSource) EndRun() (types.CounterDelta, error) {
	raw, err := s.capture.Stop()
	s.capture = nil
	if err != nil {
		return nil, err
	}

	// Map physical counter index back to the alias that requested it;
	// indices past the map are other classes' registers and are ignored.
	delta := make(types.CounterDelta, len(s.counterMap))
	for i, alias := range s.counterMap {
		if i < len(raw) {
			delta[alias] = raw[i]
		}
	}
	return delta, nil
}

// Teardown reverses setup. Failures are combined and reported, not fatal:
// the measurement already completed.
func (s *tracedSource) Teardown() error {
	var err error
	if s.kd != nil {
		err = multierr.Append(err, s.kd.enable(false))
		err = multierr.Append(err, s.kd.remove())
	}
	err = multierr.Append(err, samplingEnable(false))
	err = multierr.Append(err, samplerReset())
	err = multierr.Append(err, setThreadCounting(0))
	err = multierr.Append(err, setCounting(0))
	err = multierr.Append(err, forceAllCtrs(false))
	return err
}
