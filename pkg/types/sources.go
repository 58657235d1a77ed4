package types

import "context"

// CounterSource is the platform counter acquisition capability. Exactly one
// implementation is selected at startup.
//
// BeginRun opens a measurement window immediately before a child command is
// spawned; EndRun closes it right after the child exits and returns the
// counter deltas for the window. Setup reports which of the requested
// aliases are actually countable on this machine; the rest were dropped.
type CounterSource interface {
	Setup(aliases []CounterAlias) ([]CounterAlias, error)
	BeginRun() error
	EndRun() (CounterDelta, error)
	Teardown() error
}

// Spawner executes one child command to completion.
type Spawner interface {
	Spawn(ctx context.Context, cmd Command) (SpawnResult, error)
}

// EventDescriptor identifies one concrete countable event on the current
// platform. Type/Config carry the platform encoding (perf attr on Linux,
// PMC selector on Darwin).
type EventDescriptor struct {
	Name   string
	Type   uint32
	Config uint64
}

// EventDB resolves candidate event names against the local event database.
// Read-only, no side effects, no elevated privilege.
type EventDB interface {
	Resolve(name string) (EventDescriptor, bool)
}
