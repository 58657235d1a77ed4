package stats

import "github.com/ALEYI17/InfraSight_bench/pkg/types"

// Delta is one metric's change against the baseline. Sign and magnitude
// are passed through as raw arithmetic; faster/slower semantics belong to
// the presentation layer.
type Delta struct {
	Absolute float64
	Relative float64 // (candidate.mean - baseline.mean) / baseline.mean
}

// ComparisonResult pairs one candidate's statistics with the shared
// baseline. The baseline statistics are read-only inputs, common to every
// comparison.
type ComparisonResult struct {
	Baseline  *CommandStatistics
	Candidate CommandStatistics

	Wall     Delta
	PeakRSS  Delta
	Counters map[types.CounterAlias]Delta
}

// Compare computes per-metric deltas of candidate against baseline. A
// counter metric is compared only when both sides measured it.
func Compare(baseline *CommandStatistics, candidate CommandStatistics) ComparisonResult {
	r := ComparisonResult{
		Baseline:  baseline,
		Candidate: candidate,
		Wall:      delta(baseline.Wall, candidate.Wall),
		PeakRSS:   delta(baseline.PeakRSS, candidate.PeakRSS),
		Counters:  make(map[types.CounterAlias]Delta),
	}
	for alias, bm := range baseline.Counters {
		if cm, ok := candidate.Counters[alias]; ok {
			r.Counters[alias] = delta(bm, cm)
		}
	}
	return r
}

func delta(baseline, candidate Metric) Delta {
	d := Delta{Absolute: candidate.Mean - baseline.Mean}
	if baseline.Mean != 0 {
		d.Relative = d.Absolute / baseline.Mean
	}
	return d
}
