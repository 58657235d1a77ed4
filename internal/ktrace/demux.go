package ktrace

import (
	"github.com/ALEYI17/InfraSight_bench/pkg/logutil"
	"github.com/ALEYI17/InfraSight_bench/pkg/types"
	"go.uber.org/zap"
)

// threadSnapshots pairs the before/after counter snapshots reconstructed
// for one thread inside a single sampling window. Never kept across
// windows.
type threadSnapshots struct {
	before    []uint64
	after     []uint64
	beforeTS  uint64
	afterTS   uint64
	hasBefore bool
	hasAfter  bool
}

// reconstruct walks the time-ordered record sequence and rebuilds, per
// thread, up to one before and one after snapshot of nCounters values.
//
// A record whose boundary flag marks a start opens a new counter log for
// its thread; its four payload words are the first four values. When
// nCounters exceeds four, immediately following records for the same
// thread that are not themselves starts contribute four more words each.
// A differing thread id or a new start before the log is complete
// truncates it, and truncated logs are discarded whole; they never
// contribute a partial snapshot.
//
// A third completed log for a thread that already holds both snapshots is
// ignored and logged. Overwriting would let a tail sample displace the
// window's closing snapshot.
func reconstruct(recs []Record, nCounters int) map[uint64]*threadSnapshots {
	logger := logutil.GetLogger()
	threads := make(map[uint64]*threadSnapshots)

	for i := 0; i < len(recs); i++ {
		if !recs[i].IsStart() {
			continue
		}
		values, ok := collectLog(recs, i, nCounters)
		if !ok {
			continue
		}

		tid := recs[i].ThreadID
		ts, present := threads[tid]
		if !present {
			ts = &threadSnapshots{}
			threads[tid] = ts
		}
		switch {
		case !ts.hasBefore:
			ts.before, ts.beforeTS, ts.hasBefore = values, recs[i].Timestamp, true
		case !ts.hasAfter:
			ts.after, ts.afterTS, ts.hasAfter = values, recs[i].Timestamp, true
		default:
			logger.Warn("surplus counter log for thread, ignoring",
				zap.Uint64("tid", tid),
				zap.Uint64("timestamp", recs[i].Timestamp))
		}
	}
	return threads
}

// collectLog gathers nCounters payload words starting at the start record
// recs[i]. Returns ok=false if the log is truncated before reaching
// nCounters.
func collectLog(recs []Record, i, nCounters int) ([]uint64, bool) {
	tid := recs[i].ThreadID
	values := make([]uint64, 0, nCounters)

	take := func(r Record) {
		for w := 0; w < payloadWords && len(values) < nCounters; w++ {
			values = append(values, r.Args[w])
		}
	}
	take(recs[i])

	for j := i + 1; len(values) < nCounters; j++ {
		if j >= len(recs) {
			return nil, false
		}
		if recs[j].ThreadID != tid || recs[j].IsStart() {
			return nil, false
		}
		take(recs[j])
	}
	return values, true
}

// aggregate sums per-thread deltas across every thread that produced both
// snapshots. Threads with a single snapshot straddle the window boundary
// and are excluded on purpose.
func aggregate(threads map[uint64]*threadSnapshots, nCounters int) ([]uint64, int) {
	sum := make([]uint64, nCounters)
	used := 0
	for _, ts := range threads {
		if !ts.hasBefore || !ts.hasAfter {
			continue
		}
		for k := 0; k < nCounters; k++ {
			sum[k] += types.DeltaValue(ts.before[k], ts.after[k])
		}
		used++
	}
	return sum, used
}
