// Package classify labels extracted components as building blocks.
//
// Two policies exist, mirroring the two entry routines of the original
// tool: an adaptive policy that derives percentile thresholds from the
// image's own component population, and a legacy static policy that uses a
// fixed probability threshold from the configuration. The adaptive policy
// is the production default; absolute probability and size scales vary too
// much across images for a fixed cut to hold up.
package classify

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"blockseg/internal/segment"
)

// Policy selects how components are labeled.
type Policy int

const (
	// PolicyAdaptive uses per-image percentile thresholds on probability
	// and size.
	PolicyAdaptive Policy = iota
	// PolicyStatic uses the fixed probability threshold from the
	// configuration.
	PolicyStatic
)

func (p Policy) String() string {
	switch p {
	case PolicyAdaptive:
		return "adaptive"
	case PolicyStatic:
		return "static"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a user-facing policy name to a Policy.
func ParsePolicy(name string) (Policy, bool) {
	switch name {
	case "adaptive":
		return PolicyAdaptive, true
	case "static":
		return PolicyStatic, true
	}
	return PolicyAdaptive, false
}

// Probability percentile and size percentile used by the adaptive policy.
const (
	probabilityRank = 0.8
	sizeRank        = 0.9
)

// Thresholds holds the per-image cuts derived by the adaptive policy.
type Thresholds struct {
	Probability float64 // 80th percentile of component average probabilities
	MaxSize     int     // 90th percentile of component pixel counts
}

// Percentile returns the value at rank ceil(frac*N), clamped to the last
// index, of the ascending-sorted copy of values. An empty population
// yields 0.
func Percentile(values []float64, frac float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	idx := int(math.Ceil(frac * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// PercentileInt is Percentile over an integer population.
func PercentileInt(values []int, frac float64) int {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	idx := int(math.Ceil(frac * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// Adaptive derives the percentile thresholds from the full component
// population of one image and labels each component. A component is a
// building block iff its average probability reaches the probability
// threshold and its size does not exceed the size threshold.
func Adaptive(components []segment.Component) Thresholds {
	probs := make([]float64, len(components))
	sizes := make([]int, len(components))
	for i, c := range components {
		probs[i] = c.AvgProbability
		sizes[i] = c.Size
	}

	t := Thresholds{
		Probability: Percentile(probs, probabilityRank),
		MaxSize:     PercentileInt(sizes, sizeRank),
	}

	for i := range components {
		c := &components[i]
		c.BuildingBlock = c.AvgProbability >= t.Probability && c.Size <= t.MaxSize
	}
	return t
}

// Static labels each component against a fixed probability threshold.
func Static(components []segment.Component, threshold float64) {
	for i := range components {
		components[i].BuildingBlock = components[i].AvgProbability >= threshold
	}
}

// Summary reports the mean and standard deviation of the component
// average-probability population, for run logging.
func Summary(components []segment.Component) (mean, stddev float64) {
	if len(components) == 0 {
		return 0, 0
	}
	probs := make([]float64, len(components))
	for i, c := range components {
		probs[i] = c.AvgProbability
	}
	if len(probs) == 1 {
		return probs[0], 0
	}
	return stat.Mean(probs, nil), stat.StdDev(probs, nil)
}
