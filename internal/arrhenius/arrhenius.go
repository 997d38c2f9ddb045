// Package arrhenius fits the temperature dependence of the lipid oxidation
// induction period using the linearized Arrhenius model
//
//	ln(1/IP) = a + b·(1/T_K)
//
// and recovers the apparent activation energy and pre-exponential factor.
package arrhenius

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/foodkinetics/shelflife-go/internal/errors"
	"github.com/foodkinetics/shelflife-go/internal/fitmetrics"
)

// Physical constants. Process-wide and immutable.
const (
	GasConstant    = 8.314  // J/mol·K
	ReferenceTempK = 298.15 // 25 °C in Kelvin
	KelvinOffset   = 273.15
	HoursPerDay    = 24.0
	ReferenceTempC = 25.0
)

// Parameters holds the fitted Arrhenius parameters for one category.
type Parameters struct {
	ActivationEnergy float64 // apparent activation energy E_a (kJ/mol)
	PreExponential   float64 // pre-exponential factor k_0 (1/h)
	InductionDays25C float64 // extrapolated induction period at 25 °C (days)
	Metrics          fitmetrics.Metrics
}

// Fit estimates the Arrhenius parameters from per-setpoint mean induction
// periods. The caller passes one mean induction period (hours) per distinct
// temperature setpoint (°C). Fewer than two distinct setpoints, or a fit
// producing non-finite values, yields an error; failure is isolated to the
// category.
func Fit(setpointsC, meanInductionHours []float64) (Parameters, error) {
	if len(setpointsC) != len(meanInductionHours) {
		return Parameters{}, errors.Newf("setpoint and induction slices differ in length: %d vs %d", len(setpointsC), len(meanInductionHours)).
			Component("arrhenius").
			Category(errors.CategoryValidation).
			Build()
	}
	if distinctCount(setpointsC) < 2 {
		return Parameters{}, errors.Newf("need at least two distinct temperature setpoints, got %d", distinctCount(setpointsC)).
			Component("arrhenius").
			Category(errors.CategoryFitConvergence).
			Context("setpoints", len(setpointsC)).
			Build()
	}

	// Linearize: x = 1/T_K, y = ln(1/IP)
	x := make([]float64, len(setpointsC))
	y := make([]float64, len(setpointsC))
	for i := range setpointsC {
		x[i] = 1 / (setpointsC[i] + KelvinOffset)
		y[i] = math.Log(1 / meanInductionHours[i])
	}

	a, b := stat.LinearRegression(x, y, nil, false)
	if !isFinite(a) || !isFinite(b) {
		return Parameters{}, errors.Newf("linear regression produced non-finite coefficients").
			Component("arrhenius").
			Category(errors.CategoryFitConvergence).
			Build()
	}

	params := Parameters{
		ActivationEnergy: -b * GasConstant / 1000, // kJ/mol
		PreExponential:   math.Exp(a),             // 1/h
	}
	params.InductionDays25C = params.InductionPeriodDays(ReferenceTempC)

	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = a + b*x[i]
	}
	params.Metrics = fitmetrics.Compute(y, predicted)

	return params, nil
}

// InductionPeriodDays extrapolates the induction period at the given storage
// temperature (°C) from the fitted parameters, converted to days. For fixed
// parameters the result strictly decreases as temperature increases.
func (p Parameters) InductionPeriodDays(tempC float64) float64 {
	tK := tempC + KelvinOffset
	rate := p.PreExponential * math.Exp(-p.ActivationEnergy*1000/(GasConstant*tK)) // 1/h
	return 1 / rate / HoursPerDay
}

func distinctCount(xs []float64) int {
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		seen[x] = struct{}{}
	}
	return len(seen)
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
