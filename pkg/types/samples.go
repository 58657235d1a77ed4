package types

import (
	"strings"
	"time"
)

// Command is one benchmark target. Argv is executed directly, no shell.
type Command struct {
	Argv []string
}

func (c Command) Name() string {
	return strings.Join(c.Argv, " ")
}

// RunSample is one completed execution of a benchmark target. Immutable
// after creation.
type RunSample struct {
	WallTime     time.Duration
	Counters     CounterDelta
	PeakRSSBytes uint64
}

// SpawnResult is what the process execution collaborator reports after a
// child exits.
type SpawnResult struct {
	ExitCode     int
	PeakRSSBytes uint64
}
