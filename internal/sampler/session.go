package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/ALEYI17/InfraSight_bench/pkg/logutil"
	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"go.uber.org/zap"
)

// State of a sampling session.
type State int

const (
	Idle State = iota
	Running
	Stopped
)

// Options for one session.
type Options struct {
	// Duration bounds the sampling loop, not any single execution: the
	// in-flight run always finishes, so total elapsed time can exceed
	// this by up to one run's length. Zero still runs once.
	Duration time.Duration

	// Warmup executions are run and discarded before sampling starts.
	Warmup int
}

// Session repeatedly executes one command inside a duration budget,
// bracketing each run with counter reads. One session per command, never
// reused.
type Session struct {
	source  types.CounterSource
	spawner types.Spawner
	opts    Options
	state   State
}

func New(source types.CounterSource, spawner types.Spawner, opts Options) *Session {
	if spawner == nil {
		spawner = execSpawner{}
	}
	return &Session{source: source, spawner: spawner, opts: opts}
}

// Measure runs the sampling loop for cmd and returns the collected
// samples. Failed runs are logged and excluded; it is an error only when
// every run fails. Cancelling ctx stops the loop at the next run boundary,
// never an in-flight child.
func (s *Session) Measure(ctx context.Context, cmd types.Command) ([]types.RunSample, error) {
	logger := logutil.GetLogger()

	if s.state != Idle {
		return nil, fmt.Errorf("session for %q already used", cmd.Name())
	}
	s.state = Running
	defer func() { s.state = Stopped }()

	for i := 0; i < s.opts.Warmup; i++ {
		if _, err := s.spawner.Spawn(ctx, cmd); err != nil {
			logger.Warn("warmup run failed", zap.String("command", cmd.Name()), zap.Error(err))
		}
	}

	var samples []types.RunSample
	failed := 0
	start := time.Now()
	for {
		sample, err := s.runOnce(ctx, cmd)
		if err != nil {
			failed++
			logger.Warn("run failed, excluded from statistics",
				zap.String("command", cmd.Name()),
				zap.Int("run", len(samples)+failed),
				zap.Error(err))
		} else {
			samples = append(samples, sample)
		}
		// Elapsed check after the loop body: a zero duration still
		// produces one full iteration.
		if time.Since(start) > s.opts.Duration || ctx.Err() != nil {
			break
		}
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("command %q: %d runs, none succeeded: %w",
			cmd.Name(), failed, types.ErrAllRunsFailed)
	}
	logger.Info("sampling finished",
		zap.String("command", cmd.Name()),
		zap.Int("samples", len(samples)),
		zap.Int("failed", failed))
	return samples, nil
}

func (s *Session) runOnce(ctx context.Context, cmd types.Command) (types.RunSample, error) {
	start := time.Now()
	if err := s.source.BeginRun(); err != nil {
		return types.RunSample{}, fmt.Errorf("opening counter window: %w", err)
	}

	res, spawnErr := s.spawner.Spawn(ctx, cmd)

	// The window is closed even when the spawn failed, otherwise a traced
	// backend would leak its capture loop.
	delta, readErr := s.source.EndRun()
	wall := time.Since(start)

	if spawnErr != nil {
		return types.RunSample{}, spawnErr
	}
	if res.ExitCode != 0 {
		return types.RunSample{}, fmt.Errorf("exit status %d", res.ExitCode)
	}
	if readErr != nil {
		return types.RunSample{}, fmt.Errorf("closing counter window: %w", readErr)
	}

	return types.RunSample{
		WallTime:     wall,
		Counters:     delta,
		PeakRSSBytes: res.PeakRSSBytes,
	}, nil
}

func (s *Session) State() State {
	return s.state
}
