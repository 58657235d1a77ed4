package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ALEYI17/InfraSight_bench/internal/catalog"
	"github.com/ALEYI17/InfraSight_bench/internal/config"
	"github.com/ALEYI17/InfraSight_bench/internal/counters"
	"github.com/ALEYI17/InfraSight_bench/internal/render"
	"github.com/ALEYI17/InfraSight_bench/internal/sampler"
	"github.com/ALEYI17/InfraSight_bench/internal/stats"
	"github.com/ALEYI17/InfraSight_bench/pkg/logutil"
	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	logutil.InitLogger()
	logger := logutil.GetLogger()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigch := make(chan os.Signal, 1)
		signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigch
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	if err := newRootCmd(ctx).Execute(); err != nil {
		logger.Error("benchmark failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCmd(ctx context.Context) *cobra.Command {
	var (
		duration     time.Duration
		warmup       int
		counterNames []string
		exportBench  string
	)

	cmd := &cobra.Command{
		Use:   "infrasight-bench [flags] <command> [<command>...]",
		Short: "Benchmark commands with wall clock and hardware counters",
		Long: "Repeatedly executes each command for the configured duration, " +
			"collecting wall time, hardware counter deltas and peak memory. " +
			"The first command is the baseline; the rest are reported " +
			"relative to it.",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			cmds, err := config.ParseCommands(args)
			if err != nil {
				return err
			}
			aliases, err := config.ParseAliases(counterNames)
			if err != nil {
				return err
			}
			return run(ctx, config.Config{
				Commands:    cmds,
				Duration:    duration,
				Warmup:      warmup,
				Aliases:     aliases,
				TargetPID:   -1,
				ExportBench: exportBench,
			})
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "d", 5*time.Second, "sampling duration per command")
	cmd.Flags().IntVarP(&warmup, "warmup", "w", 0, "unmeasured warmup runs per command")
	cmd.Flags().StringSliceVarP(&counterNames, "counters", "c", nil, "counters to collect (default all)")
	cmd.Flags().StringVar(&exportBench, "export-bench", "", "write runs in Go benchmark format to this file")
	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	logger := logutil.GetLogger()

	fam := catalog.DetectFamily()
	db := catalog.NewEventDB()
	source, err := counters.NewSource(db, counters.Options{
		Family:        fam,
		TargetPID:     cfg.TargetPID,
		TriggerPeriod: cfg.TriggerPeriod,
	})
	if err != nil {
		return err
	}

	active, err := source.Setup(cfg.Aliases)
	if err != nil {
		return err
	}
	defer func() {
		if terr := source.Teardown(); terr != nil {
			logger.Warn("counter teardown reported errors", zap.Error(terr))
		}
	}()
	logger.Info("counter source ready",
		zap.Stringer("family", fam),
		zap.Int("counters", len(active)))

	var export io.Writer
	if cfg.ExportBench != "" {
		f, err := os.Create(cfg.ExportBench)
		if err != nil {
			return err
		}
		defer f.Close()
		export = f
	}

	baseline, comparisons, err := measureCommands(ctx, source, nil, cfg, export)
	if err != nil {
		return err
	}
	fmt.Print(render.Render(baseline, comparisons))
	return nil
}

// measureCommands samples every command in order. The first command is the
// baseline and its failure is fatal; a later command whose runs all fail
// only loses its own comparison.
func measureCommands(ctx context.Context, source types.CounterSource, spawner types.Spawner, cfg config.Config, export io.Writer) (stats.CommandStatistics, []stats.ComparisonResult, error) {
	logger := logutil.GetLogger()

	var baseline stats.CommandStatistics
	var comparisons []stats.ComparisonResult
	for i, command := range cfg.Commands {
		session := sampler.New(source, spawner, sampler.Options{
			Duration: cfg.Duration,
			Warmup:   cfg.Warmup,
		})
		samples, err := session.Measure(ctx, command)
		if err != nil {
			if i > 0 && errors.Is(err, types.ErrAllRunsFailed) {
				logger.Warn("skipping comparison, every run failed",
					zap.String("command", command.Name()),
					zap.Error(err))
				continue
			}
			return stats.CommandStatistics{}, nil, err
		}
		if export != nil {
			if err := render.WriteBenchFormat(export, command, samples); err != nil {
				return stats.CommandStatistics{}, nil, err
			}
		}

		summary := stats.Summarize(command, cfg.Aliases, samples)
		if i == 0 {
			baseline = summary
			continue
		}
		comparisons = append(comparisons, stats.Compare(&baseline, summary))
	}
	return baseline, comparisons, nil
}
