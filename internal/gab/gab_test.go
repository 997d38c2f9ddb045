package gab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelKnownValue(t *testing.T) {
	// M(0.5) with Wm=0.05, C=10, K=0.8 is 0.2 / (0.6 × 4.6)
	got := Model(0.5, 0.05, 10, 0.8)
	assert.InDelta(t, 0.2/(0.6*4.6), got, 1e-12)
}

func TestModelZeroActivity(t *testing.T) {
	cases := []struct {
		name     string
		wm, c, k float64
	}{
		{"typical", 0.05, 10, 0.8},
		{"low monolayer", 0.01, 2, 0.3},
		{"high C", 0.1, 50, 0.9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Zero(t, Model(0, tc.wm, tc.c, tc.k))
		})
	}
}

func TestFitRecoversKnownParameters(t *testing.T) {
	const (
		wantWm = 0.06
		wantC  = 12.0
		wantK  = 0.75
	)

	// Noiseless synthetic isotherm over a realistic activity range.
	var aw, moisture []float64
	for a := 0.1; a < 0.95; a += 0.05 {
		aw = append(aw, a)
		moisture = append(moisture, Model(a, wantWm, wantC, wantK))
	}

	params, err := Fit(aw, moisture, DefaultMaxEvaluations)
	require.NoError(t, err)

	assert.InEpsilon(t, wantWm, params.Wm, 0.05)
	assert.InEpsilon(t, wantC, params.C, 0.05)
	assert.InEpsilon(t, wantK, params.K, 0.05)
	assert.Greater(t, params.Metrics.R2, 0.99)
}

func TestFitEvaluateMatchesModel(t *testing.T) {
	p := Parameters{Wm: 0.05, C: 10, K: 0.8}
	assert.Equal(t, Model(0.4, 0.05, 10, 0.8), p.Evaluate(0.4))
}

func TestFitRejectsEmptyAndMismatchedSamples(t *testing.T) {
	_, err := Fit(nil, nil, DefaultMaxEvaluations)
	assert.Error(t, err)

	_, err = Fit([]float64{0.3, 0.5}, []float64{0.04}, DefaultMaxEvaluations)
	assert.Error(t, err)
}
