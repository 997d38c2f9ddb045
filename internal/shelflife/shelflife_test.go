package shelflife

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodkinetics/shelflife-go/internal/arrhenius"
	"github.com/foodkinetics/shelflife-go/internal/gab"
	"github.com/foodkinetics/shelflife-go/internal/product"
)

var testGAB = gab.Parameters{Wm: 0.05, C: 10, K: 0.8}

// oxidationParamsForDays builds temperature-independent Arrhenius parameters
// whose extrapolated induction period is close to the given number of days.
func oxidationParamsForDays(days float64) arrhenius.Parameters {
	return arrhenius.Parameters{ActivationEnergy: 0, PreExponential: 1 / (days * arrhenius.HoursPerDay)}
}

func TestMoistureShelfLife(t *testing.T) {
	sc := DefaultScenario()
	awCritical, awInitial := product.Crackers.AwValues()
	want := (sc.DryWeight / (sc.Area * sc.WVTR)) * (testGAB.Evaluate(awCritical) - testGAB.Evaluate(awInitial))

	got := MoistureShelfLife(testGAB, product.Crackers, sc)
	assert.Equal(t, want, got)
	assert.Positive(t, got)
}

func TestCombineShorterPathwayDominates(t *testing.T) {
	sc := DefaultScenario()
	moistureDays := MoistureShelfLife(testGAB, product.Crackers, sc)

	gabTable := map[product.Category]gab.Parameters{product.Crackers: testGAB}

	// Oxidation slower than moisture: moisture gain binds.
	oxTable := map[product.Category]arrhenius.Parameters{
		product.Crackers: oxidationParamsForDays(moistureDays * 10),
	}
	p := Combine(product.Crackers, gabTable, oxTable, sc)
	require.True(t, p.Available)
	assert.Equal(t, MechanismMoisture, p.Dominant)
	assert.Equal(t, moistureDays, p.Days)

	// Oxidation faster than moisture: lipid oxidation binds.
	oxTable[product.Crackers] = oxidationParamsForDays(moistureDays / 10)
	p = Combine(product.Crackers, gabTable, oxTable, sc)
	require.True(t, p.Available)
	assert.Equal(t, MechanismOxidation, p.Dominant)
	assert.Less(t, p.Days, moistureDays)
}

func TestCombineSinglePathwayIsUnconditional(t *testing.T) {
	sc := DefaultScenario()

	// Only oxidation parameters available.
	oxTable := map[product.Category]arrhenius.Parameters{
		product.SnackOil: oxidationParamsForDays(200),
	}
	p := Combine(product.SnackOil, nil, oxTable, sc)
	require.True(t, p.Available)
	assert.Equal(t, MechanismOxidation, p.Dominant)
	assert.InEpsilon(t, 200, p.Days, 1e-9)

	// Only moisture parameters available.
	gabTable := map[product.Category]gab.Parameters{product.SnackOil: testGAB}
	p = Combine(product.SnackOil, gabTable, nil, sc)
	require.True(t, p.Available)
	assert.Equal(t, MechanismMoisture, p.Dominant)
}

func TestCombineNeitherAvailable(t *testing.T) {
	p := Combine(product.SugarWafers, nil, nil, DefaultScenario())
	assert.False(t, p.Available)
	assert.Equal(t, MechanismNone, p.Dominant)
}

func TestCombineIsIdempotent(t *testing.T) {
	sc := DefaultScenario()
	gabTable := map[product.Category]gab.Parameters{product.Crackers: testGAB}
	oxTable := map[product.Category]arrhenius.Parameters{
		product.Crackers: oxidationParamsForDays(120),
	}

	first := Combine(product.Crackers, gabTable, oxTable, sc)
	second := Combine(product.Crackers, gabTable, oxTable, sc)
	assert.Equal(t, first, second)
}

func TestCombineAllCoversEnumeration(t *testing.T) {
	predictions := CombineAll(nil, nil, DefaultScenario())
	require.Len(t, predictions, len(product.Categories()))
	for i, cat := range product.Categories() {
		assert.Equal(t, cat, predictions[i].Category)
		assert.False(t, predictions[i].Available)
	}
}

func TestDefaultScenario(t *testing.T) {
	sc := DefaultScenario()
	assert.Equal(t, Scenario{TemperatureC: 25, DryWeight: 200, Area: 0.1, WVTR: 0.5}, sc)
}
