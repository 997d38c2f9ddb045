// Package gab fits the three-parameter GAB moisture sorption isotherm to
// observed (water activity, moisture content) pairs by nonlinear least
// squares.
package gab

import (
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/foodkinetics/shelflife-go/internal/errors"
	"github.com/foodkinetics/shelflife-go/internal/fitmetrics"
)

// DefaultMaxEvaluations is the function evaluation budget for the optimizer.
const DefaultMaxEvaluations = 10000

// initialGuess seeds the optimizer: W_m=0.05, C=10.0, K=0.8.
var initialGuess = []float64{0.05, 10.0, 0.8}

// Parameters holds the fitted GAB isotherm parameters for one category.
type Parameters struct {
	Wm      float64 // monolayer moisture content (g water / g dry solid)
	C       float64 // GAB constant
	K       float64 // GAB constant
	Metrics fitmetrics.Metrics
}

// Model evaluates the GAB isotherm
//
//	M(aw) = Wm·C·K·aw / ((1−K·aw)·(1−K·aw+C·K·aw))
//
// returning the equilibrium moisture content (g water / g dry solid).
func Model(aw, wm, c, k float64) float64 {
	kaw := k * aw
	return wm * c * kaw / ((1 - kaw) * (1 - kaw + c*kaw))
}

// Evaluate returns the fitted isotherm value at the given water activity.
func (p Parameters) Evaluate(aw float64) float64 {
	return Model(aw, p.Wm, p.C, p.K)
}

// Fit estimates (Wm, C, K) for one category by minimizing the residual sum
// of squares over the sample. maxEvaluations bounds the optimizer, a run
// exceeding the budget is reported as a convergence failure rather than
// stalling. Failures are local to the category, the caller continues with
// the remaining categories.
//
// The fit is accepted even where K·aw ≥ 1 over the data range; matching the
// established procedure, physical validity of the denominator is not an
// acceptance criterion.
func Fit(aw, moisture []float64, maxEvaluations int) (Parameters, error) {
	if len(aw) == 0 || len(aw) != len(moisture) {
		return Parameters{}, errors.Newf("need a non-empty sample of equal-length aw and moisture values, got %d and %d", len(aw), len(moisture)).
			Component("gab").
			Category(errors.CategoryValidation).
			Build()
	}
	if maxEvaluations <= 0 {
		maxEvaluations = DefaultMaxEvaluations
	}

	problem := optimize.Problem{
		Func: func(p []float64) float64 {
			var rss float64
			for i := range aw {
				r := moisture[i] - Model(aw[i], p[0], p[1], p[2])
				rss += r * r
			}
			if math.IsNaN(rss) {
				// NaN objective values stall the simplex, push it away instead.
				return math.Inf(1)
			}
			return rss
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-12,
			Iterations: 100,
		},
	}

	x0 := make([]float64, len(initialGuess))
	copy(x0, initialGuess)

	result, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil {
		return Parameters{}, errors.New(err).
			Component("gab").
			Category(errors.CategoryFitConvergence).
			Context("samples", len(aw)).
			Build()
	}

	switch result.Status {
	case optimize.FunctionEvaluationLimit, optimize.IterationLimit, optimize.RuntimeLimit, optimize.Failure:
		return Parameters{}, errors.Newf("optimizer did not converge: %s", result.Status).
			Component("gab").
			Category(errors.CategoryFitConvergence).
			Context("samples", len(aw)).
			Context("evaluations", result.FuncEvaluations).
			Build()
	}

	for _, v := range result.X {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Parameters{}, errors.Newf("optimizer produced non-finite parameters").
				Component("gab").
				Category(errors.CategoryFitConvergence).
				Build()
		}
	}

	params := Parameters{Wm: result.X[0], C: result.X[1], K: result.X[2]}

	predicted := make([]float64, len(aw))
	for i := range aw {
		predicted[i] = params.Evaluate(aw[i])
	}
	params.Metrics = fitmetrics.Compute(moisture, predicted)

	return params, nil
}
