package stats

import (
	"math"

	"github.com/ALEYI17/InfraSight_bench/pkg/types"
)

// Metric is the dispersion summary of one measured quantity.
type Metric struct {
	Mean   float64
	Stddev float64
	Min    float64
	Max    float64
	N      int
}

// CommandStatistics is the read-only summary of one command's sample
// sequence. Always recomputed in full from the samples, never updated in
// place.
type CommandStatistics struct {
	Command types.Command
	Samples int

	// Order is the caller's requested alias order; it defines the output
	// column order downstream.
	Order []types.CounterAlias

	Wall    Metric
	PeakRSS Metric

	// Counters holds one entry per alias that produced at least one
	// sample. An absent alias was unavailable, which is not a zero.
	Counters map[types.CounterAlias]Metric
}

// Summarize reduces the ordered sample sequence of one command. The alias
// order is the caller's request, carried through to presentation.
func Summarize(cmd types.Command, order []types.CounterAlias, samples []types.RunSample) CommandStatistics {
	cs := CommandStatistics{
		Command:  cmd,
		Samples:  len(samples),
		Order:    order,
		Counters: make(map[types.CounterAlias]Metric),
	}
	if len(samples) == 0 {
		return cs
	}

	walls := make([]float64, len(samples))
	rss := make([]float64, len(samples))
	for i, s := range samples {
		walls[i] = float64(s.WallTime)
		rss[i] = float64(s.PeakRSSBytes)
	}
	cs.Wall = summarize(walls)
	cs.PeakRSS = summarize(rss)

	for _, alias := range order {
		var vals []float64
		for _, s := range samples {
			if v, ok := s.Counters[alias]; ok {
				vals = append(vals, float64(v))
			}
		}
		if len(vals) > 0 {
			cs.Counters[alias] = summarize(vals)
		}
	}
	return cs
}

// summarize computes mean, population standard deviation and range.
func summarize(vals []float64) Metric {
	n := float64(len(vals))
	var sum float64
	min, max := vals[0], vals[0]
	for _, v := range vals {
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := sum / n

	var sq float64
	for _, v := range vals {
		d := v - mean
		sq += d * d
	}
	return Metric{Mean: mean, Stddev: math.Sqrt(sq / n), Min: min, Max: max, N: len(vals)}
}
