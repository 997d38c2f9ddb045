// Package fitmetrics computes fit-quality metrics shared by both fitters.
package fitmetrics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Metrics holds fit-quality metrics computed against the training sample.
// These report how well the curve fits the data it was fitted to, not
// generalization to held-out data.
type Metrics struct {
	R2   float64 // coefficient of determination
	RMSE float64 // root mean squared error
	MAE  float64 // mean absolute error
	RSS  float64 // residual sum of squares
}

// Compute returns fit-quality metrics for predicted values against observed
// values. Both slices must have the same nonzero length.
func Compute(observed, predicted []float64) Metrics {
	n := len(observed)
	if n == 0 || n != len(predicted) {
		return Metrics{R2: math.NaN(), RMSE: math.NaN(), MAE: math.NaN(), RSS: math.NaN()}
	}

	var rss, absSum float64
	for i := range observed {
		r := observed[i] - predicted[i]
		rss += r * r
		absSum += math.Abs(r)
	}

	return Metrics{
		R2:   stat.RSquaredFrom(predicted, observed, nil),
		RMSE: math.Sqrt(rss / float64(n)),
		MAE:  absSum / float64(n),
		RSS:  rss,
	}
}
