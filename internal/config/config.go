package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ALEYI17/InfraSight_bench/pkg/types"
)

// Config is the resolved invocation: what to run, for how long, and which
// counters to collect.
type Config struct {
	Commands      []types.Command // first is the baseline
	Duration      time.Duration
	Warmup        int
	Aliases       []types.CounterAlias
	TargetPID     int
	TriggerPeriod time.Duration
	ExportBench   string
}

// ParseCommands splits each positional argument into an argv vector.
// Commands run without a shell.
func ParseCommands(args []string) ([]types.Command, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("need at least one command to benchmark")
	}
	cmds := make([]types.Command, 0, len(args))
	for _, arg := range args {
		argv := strings.Fields(arg)
		if len(argv) == 0 {
			return nil, fmt.Errorf("empty command %q", arg)
		}
		cmds = append(cmds, types.Command{Argv: argv})
	}
	return cmds, nil
}

// ParseAliases maps counter names to aliases, preserving the requested
// order since it defines output columns. An empty list selects all.
func ParseAliases(names []string) ([]types.CounterAlias, error) {
	if len(names) == 0 {
		return types.AllAliases, nil
	}
	seen := make(map[types.CounterAlias]bool)
	var aliases []types.CounterAlias
	for _, name := range names {
		a, ok := types.ParseAlias(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown counter %q", name)
		}
		if seen[a] {
			return nil, fmt.Errorf("counter %q requested twice", name)
		}
		seen[a] = true
		aliases = append(aliases, a)
	}
	return aliases, nil
}
