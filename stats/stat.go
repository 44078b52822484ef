// Package stats provides the reductions used to collapse sampled forecast
// trajectories into point estimates.
package stats

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrNoSamples         = errors.New("no sampled trajectories")
	ErrSampleLenMismatch = errors.New("sampled trajectories have inconsistent lengths")
)

// Median returns the median of y. The input is not mutated.
func Median(y []float64) float64 {
	yCopy := make([]float64, len(y))
	copy(yCopy, y)
	sort.Float64s(yCopy)
	return stat.Quantile(0.5, stat.Empirical, yCopy, nil)
}

// MedianTrajectory collapses a set of sampled trajectories into a single
// trajectory by taking the element-wise median across samples.
func MedianTrajectory(samples [][]float64) ([]float64, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	n := len(samples[0])
	for i, s := range samples {
		if len(s) != n {
			return nil, fmt.Errorf(
				"sample %d has %d steps but sample 0 has %d, %w",
				i, len(s), n, ErrSampleLenMismatch,
			)
		}
	}

	med := make([]float64, n)
	col := make([]float64, len(samples))
	for step := 0; step < n; step++ {
		for i, s := range samples {
			col[i] = s[step]
		}
		sort.Float64s(col)
		med[step] = stat.Quantile(0.5, stat.Empirical, col, nil)
	}
	return med, nil
}
