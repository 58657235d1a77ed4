//go:build linux

package counters

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unsafe"

	"github.com/ALEYI17/InfraSight_bench/pkg/logutil"
	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// directSource reads hardware counters through one perf event descriptor
// per alias. Descriptors are opened with inherit, so a child's counts fold
// into the descriptor once the child exits; reading immediately before the
// spawn and immediately after the wait brackets exactly one run.
type directSource struct {
	db     types.EventDB
	opts   Options
	fds    []int
	order  []types.CounterAlias // fd index -> alias
	before types.CounterSnapshot
}

func newPlatformSource(db types.EventDB, opts Options) (types.CounterSource, error) {
	return &directSource{db: db, opts: opts}, nil
}

func (s *directSource) Setup(aliases []types.CounterAlias) ([]types.CounterAlias, error) {
	logger := logutil.GetLogger()

	for _, alias := range aliases {
		desc, ok := resolveAlias(s.db, s.opts.Family, alias)
		if !ok {
			logger.Warn("counter unavailable on this CPU, skipping",
				zap.Stringer("alias", alias),
				zap.Error(types.ErrEventUnavailable))
			continue
		}

		fd, err := openCounter(desc)
		switch {
		case err == nil:
			s.fds = append(s.fds, fd)
			s.order = append(s.order, alias)
		case errors.Is(err, unix.EACCES) || errors.Is(err, unix.EPERM):
			logger.Warn("permission denied opening counter, skipping",
				zap.Stringer("alias", alias),
				zap.String("hint", "lower kernel.perf_event_paranoid or run with CAP_PERFMON"),
				zap.Error(fmt.Errorf("%v: %w", err, types.ErrPermissionDenied)))
		case errors.Is(err, unix.EMFILE) || errors.Is(err, unix.ENFILE) || errors.Is(err, unix.ENOSPC):
			// Out of counter slots: everything from this alias on is
			// dropped, in declaration order, so repeated invocations drop
			// the same set.
			logger.Warn("counter slots exhausted, dropping remaining aliases",
				zap.Stringer("first_dropped", alias),
				zap.Error(types.ErrCounterExhausted))
			return s.order, nil
		default:
			logger.Warn("opening counter failed, skipping",
				zap.Stringer("alias", alias), zap.Error(err))
		}
	}
	return s.order, nil
}

func openCounter(desc types.EventDescriptor) (int, error) {
	attr := unix.PerfEventAttr{
		Type:   desc.Type,
		Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
		Config: desc.Config,
		Bits:   unix.PerfBitInherit | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
	}
	fd, err := unix.PerfEventOpen(&attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		return -1, fmt.Errorf("perf_event_open %s: %w", desc.Name, err)
	}
	return fd, nil
}

func (s *directSource) BeginRun() error {
	return s.readAll(&s.before)
}

func (s *directSource) EndRun() (types.CounterDelta, error) {
	var after types.CounterSnapshot
	if err := s.readAll(&after); err != nil {
		return nil, err
	}
	delta := make(types.CounterDelta, len(s.order))
	for i, alias := range s.order {
		delta[alias] = types.DeltaValue(s.before.Values[i], after.Values[i])
	}
	return delta, nil
}

func (s *directSource) readAll(snap *types.CounterSnapshot) error {
	var buf [8]byte
	for i, fd := range s.fds {
		n, err := unix.Read(fd, buf[:])
		if err != nil {
			return fmt.Errorf("reading counter %s: %w", s.order[i], err)
		}
		if n != 8 {
			return fmt.Errorf("reading counter %s: short read of %d bytes", s.order[i], n)
		}
		snap.Values[i] = binary.NativeEndian.Uint64(buf[:])
	}
	return nil
}

func (s *directSource) Teardown() error {
	var err error
	for i, fd := range s.fds {
		if cerr := unix.Close(fd); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("closing counter %s: %w", s.order[i], cerr))
		}
	}
	s.fds = nil
	s.order = nil
	return err
}
