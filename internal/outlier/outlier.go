// Package outlier removes anomalous induction period readings before they
// bias the Arrhenius fit. Screening uses a robust z-score built on the median
// and the median absolute deviation of log-transformed values, so a single
// extreme reading cannot mask itself.
package outlier

import (
	"math"
	"sort"

	"github.com/foodkinetics/shelflife-go/internal/logging"
	"github.com/foodkinetics/shelflife-go/internal/measurement"
	"github.com/foodkinetics/shelflife-go/internal/product"
)

// Default tuning matching the established screening procedure.
const (
	DefaultZThreshold   = 3.5
	DefaultMinGroupSize = 6
)

// median returns the median of xs. It does not modify the input slice.
func median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// MAD returns the median absolute deviation of xs.
func MAD(xs []float64) float64 {
	m := median(xs)
	deviations := make([]float64, len(xs))
	for i, x := range xs {
		deviations[i] = math.Abs(x - m)
	}
	return median(deviations)
}

// RobustZ returns the robust z-score of each value, using the median and MAD
// in place of mean and standard deviation. If MAD is zero (all values
// identical) all scores are zero, so nothing gets flagged.
func RobustZ(xs []float64) []float64 {
	scores := make([]float64, len(xs))
	m := median(xs)
	mad := MAD(xs)
	if mad == 0 {
		return scores
	}
	for i, x := range xs {
		scores[i] = 0.6745 * (x - m) / mad
	}
	return scores
}

// FilterGroup returns a keep-mask for one (category, setpoint) group of
// induction period values. Scores are computed on the natural log of the
// values. Groups smaller than minN are kept whole, there are too few points
// to estimate dispersion robustly. This never fails, it degrades to a no-op
// on small or degenerate groups.
func FilterGroup(inductionHours []float64, zThreshold float64, minN int) []bool {
	keep := make([]bool, len(inductionHours))
	for i := range keep {
		keep[i] = true
	}
	if len(inductionHours) < minN {
		return keep
	}

	logged := make([]float64, len(inductionHours))
	for i, v := range inductionHours {
		logged[i] = math.Log(v)
	}

	for i, z := range RobustZ(logged) {
		if math.Abs(z) > zThreshold {
			keep[i] = false
		}
	}
	return keep
}

// Clean removes outliers from oxidation measurements, screening each
// (category, temperature setpoint) group independently. The result preserves
// category enumeration order and ascending setpoint order within a category.
func Clean(measurements []measurement.Oxidation, zThreshold float64, minN int) []measurement.Oxidation {
	groups := measurement.GroupOxidation(measurements)

	// Deterministic group order: category enumeration, then setpoint.
	keys := make([]measurement.OxidationGroupKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	order := make(map[product.Category]int, len(product.Categories()))
	for i, c := range product.Categories() {
		order[c] = i
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Category != keys[j].Category {
			return order[keys[i].Category] < order[keys[j].Category]
		}
		return keys[i].SetpointC < keys[j].SetpointC
	})

	cleaned := make([]measurement.Oxidation, 0, len(measurements))
	removed := 0
	for _, key := range keys {
		group := groups[key]
		values := make([]float64, len(group))
		for i, m := range group {
			values[i] = m.InductionHours
		}
		for i, keep := range FilterGroup(values, zThreshold, minN) {
			if keep {
				cleaned = append(cleaned, group[i])
			} else {
				removed++
			}
		}
	}

	if removed > 0 {
		logging.Debug("removed oxidation outliers", "removed", removed, "kept", len(cleaned))
	}
	return cleaned
}
