package types

import "errors"

// Shared error taxonomy for counter acquisition and sampling.
var (
	// ErrPermissionDenied: exclusive counter access or kernel tracing was
	// refused. Fatal for the run, never retried.
	ErrPermissionDenied = errors.New("counter access denied")

	// ErrCounterExhausted: more aliases requested than available hardware
	// counter slots; excess aliases are dropped in declaration order.
	ErrCounterExhausted = errors.New("hardware counter slots exhausted")

	// ErrEventUnavailable: no candidate event for an alias resolves on this
	// CPU. Recoverable, the alias is skipped.
	ErrEventUnavailable = errors.New("no resolvable event for alias")

	// ErrCollectionFailed: a sampling window produced zero usable per-thread
	// counter data.
	ErrCollectionFailed = errors.New("counter collection produced no usable data")

	// ErrAllRunsFailed: every execution of a command failed, so it has no
	// statistics to compare.
	ErrAllRunsFailed = errors.New("all runs failed")
)
