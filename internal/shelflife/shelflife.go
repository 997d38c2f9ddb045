// Package shelflife fuses the fitted moisture and oxidation models into a
// single conservative shelf-life estimate with an attributed dominant
// failure mechanism. It performs no fitting itself, only evaluation of
// already-fitted curves under caller-supplied scenario constants.
package shelflife

import (
	"math"

	"github.com/foodkinetics/shelflife-go/internal/arrhenius"
	"github.com/foodkinetics/shelflife-go/internal/gab"
	"github.com/foodkinetics/shelflife-go/internal/product"
)

// Mechanism labels the failure mode binding the shelf-life estimate.
type Mechanism string

const (
	MechanismMoisture  Mechanism = "moisture gain"
	MechanismOxidation Mechanism = "lipid oxidation"
	MechanismNone      Mechanism = "none"
)

// Scenario holds the storage and packaging constants for one prediction.
type Scenario struct {
	TemperatureC float64 // storage temperature (°C)
	DryWeight    float64 // dry solid weight W_s (g)
	Area         float64 // package area A (m²)
	WVTR         float64 // water vapour transmission rate (g/(m²·day))
}

// DefaultScenario returns the standard reporting scenario: 25 °C storage,
// 200 g dry weight, 0.1 m² package area, WVTR 0.5 g/(m²·day).
func DefaultScenario() Scenario {
	return Scenario{TemperatureC: 25, DryWeight: 200, Area: 0.1, WVTR: 0.5}
}

// Prediction is the fused shelf-life estimate for one category.
type Prediction struct {
	Category  product.Category
	Days      float64   // predicted shelf life in days, meaningless when !Available
	Available bool      // false when neither mechanism had fitted parameters
	Dominant  Mechanism // binding failure mechanism, MechanismNone when unavailable
}

// MoistureShelfLife computes the moisture-pathway shelf life in days:
//
//	t_s = (W_s / (A·WVTR)) · (M(aw_c) − M(aw_0))
//
// where M is the category's fitted GAB isotherm and (aw_c, aw_0) are the
// category's critical and initial water activities.
func MoistureShelfLife(p gab.Parameters, cat product.Category, sc Scenario) float64 {
	awCritical, awInitial := cat.AwValues()
	mCritical := p.Evaluate(awCritical)
	mInitial := p.Evaluate(awInitial)
	return (sc.DryWeight / (sc.Area * sc.WVTR)) * (mCritical - mInitial)
}

// OxidationShelfLife computes the oxidation-pathway shelf life in days: the
// induction period extrapolated to the scenario storage temperature.
func OxidationShelfLife(p arrhenius.Parameters, sc Scenario) float64 {
	return p.InductionPeriodDays(sc.TemperatureC)
}

// Combine converts the per-category fitted parameter tables into a single
// shelf-life estimate under the given scenario. If both pathways produce a
// finite value, the shorter one binds (whichever failure mode occurs first
// dominates); ties favor moisture gain. If only one pathway has fitted
// parameters, its value is returned unconditionally. If neither is
// available, the prediction is unavailable with mechanism "none".
//
// Combine is a pure function of its inputs: no shared state is read or
// mutated, so repeated calls with identical inputs yield identical results.
func Combine(
	cat product.Category,
	gabTable map[product.Category]gab.Parameters,
	oxTable map[product.Category]arrhenius.Parameters,
	sc Scenario,
) Prediction {
	moistureDays := math.NaN()
	if params, ok := gabTable[cat]; ok {
		moistureDays = MoistureShelfLife(params, cat, sc)
	}

	oxidationDays := math.NaN()
	if params, ok := oxTable[cat]; ok {
		oxidationDays = OxidationShelfLife(params, sc)
	}

	moistureOK := !math.IsNaN(moistureDays)
	oxidationOK := !math.IsNaN(oxidationDays)

	switch {
	case moistureOK && oxidationOK:
		if moistureDays <= oxidationDays {
			return Prediction{Category: cat, Days: moistureDays, Available: true, Dominant: MechanismMoisture}
		}
		return Prediction{Category: cat, Days: oxidationDays, Available: true, Dominant: MechanismOxidation}
	case moistureOK:
		return Prediction{Category: cat, Days: moistureDays, Available: true, Dominant: MechanismMoisture}
	case oxidationOK:
		return Prediction{Category: cat, Days: oxidationDays, Available: true, Dominant: MechanismOxidation}
	default:
		return Prediction{Category: cat, Days: math.NaN(), Available: false, Dominant: MechanismNone}
	}
}

// CombineAll evaluates Combine for every category in the fixed enumeration
// order under the given scenario.
func CombineAll(
	gabTable map[product.Category]gab.Parameters,
	oxTable map[product.Category]arrhenius.Parameters,
	sc Scenario,
) []Prediction {
	cats := product.Categories()
	predictions := make([]Prediction, 0, len(cats))
	for _, cat := range cats {
		predictions = append(predictions, Combine(cat, gabTable, oxTable, sc))
	}
	return predictions
}
