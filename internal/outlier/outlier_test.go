package outlier

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodkinetics/shelflife-go/internal/measurement"
	"github.com/foodkinetics/shelflife-go/internal/product"
)

func TestFilterGroupRemovesExtremeOutlier(t *testing.T) {
	// Seven readings clustered around 100 h plus one reading far outside the
	// cluster. In log space the extreme point sits well past 10 MAD units.
	values := []float64{97, 98, 99, 100, 101, 102, 103, 1000}

	keep := FilterGroup(values, DefaultZThreshold, DefaultMinGroupSize)

	require.Len(t, keep, 8)
	for i := 0; i < 7; i++ {
		assert.True(t, keep[i], "inlier %d should be kept", i)
	}
	assert.False(t, keep[7], "the extreme reading should be removed")
}

func TestFilterGroupBelowMinSizeIsNoOp(t *testing.T) {
	// Below the minimum group size nothing is removed, regardless of magnitude.
	values := []float64{100, 101, 99, 100, 1e6}

	keep := FilterGroup(values, DefaultZThreshold, DefaultMinGroupSize)

	require.Len(t, keep, 5)
	for i, k := range keep {
		assert.True(t, k, "value %d should be kept in a small group", i)
	}
}

func TestFilterGroupZeroMADFlagsNothing(t *testing.T) {
	values := []float64{50, 50, 50, 50, 50, 50, 50}

	keep := FilterGroup(values, DefaultZThreshold, DefaultMinGroupSize)

	for i, k := range keep {
		assert.True(t, k, "value %d should be kept when MAD is zero", i)
	}
}

func TestRobustZCentersOnMedian(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	scores := RobustZ(values)

	require.Len(t, scores, 5)
	assert.Zero(t, scores[2], "median value scores zero")
	assert.InDelta(t, -scores[0], scores[4], 1e-12, "symmetric values score symmetrically")
}

func TestMAD(t *testing.T) {
	assert.InDelta(t, 1.0, MAD([]float64{1, 2, 3, 4, 5}), 1e-12)
	assert.Zero(t, MAD([]float64{7, 7, 7}))
	assert.True(t, math.IsNaN(MAD(nil)))
}

func TestCleanScreensPerGroup(t *testing.T) {
	var ms []measurement.Oxidation

	// Category C at 60°C: eight readings with one extreme outlier.
	for _, v := range []float64{97, 98, 99, 100, 101, 102, 103, 1000} {
		ms = append(ms, measurement.Oxidation{Category: product.Crackers, SetpointC: 60, InductionHours: v})
	}
	// Category D at 60°C: five readings, below the minimum group size, so the
	// extreme value survives.
	for _, v := range []float64{200, 201, 199, 200, 1e6} {
		ms = append(ms, measurement.Oxidation{Category: product.SweetBiscuit, SetpointC: 60, InductionHours: v})
	}

	cleaned := Clean(ms, DefaultZThreshold, DefaultMinGroupSize)

	byCat := measurement.GroupOxidationByCategory(cleaned)
	assert.Len(t, byCat[product.Crackers], 7)
	assert.Len(t, byCat[product.SweetBiscuit], 5)
}
