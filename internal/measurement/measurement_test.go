package measurement

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodkinetics/shelflife-go/internal/errors"
	"github.com/foodkinetics/shelflife-go/internal/product"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadMoistureCSVSkipsInvalidRows(t *testing.T) {
	path := writeTempCSV(t, `category,water_activity,moisture_content
C,0.3,0.045
C,0.5,0.062
D,0.7,0.081
C,not-a-number,0.05
C,1.2,0.05
Z,0.5,0.05
C,0.6
`)

	ms, err := ReadMoistureCSV(path)
	require.NoError(t, err)
	require.Len(t, ms, 3)

	assert.Equal(t, product.Crackers, ms[0].Category)
	assert.Equal(t, 0.3, ms[0].WaterActivity)
	assert.Equal(t, product.SweetBiscuit, ms[2].Category)
}

func TestReadOxidationCSVSkipsInvalidRows(t *testing.T) {
	path := writeTempCSV(t, `category,set_point_t,ip_h
C,60,410
C,60,395
C,70,168
C,70,-5
F,60,abc
`)

	ms, err := ReadOxidationCSV(path)
	require.NoError(t, err)
	require.Len(t, ms, 3)
	assert.Equal(t, 410.0, ms[0].InductionHours)
}

func TestReadMissingFileIsNotFound(t *testing.T) {
	_, err := ReadMoistureCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestMeanInductionBySetpoint(t *testing.T) {
	ms := []Oxidation{
		{Category: product.Crackers, SetpointC: 70, InductionHours: 160},
		{Category: product.Crackers, SetpointC: 60, InductionHours: 400},
		{Category: product.Crackers, SetpointC: 70, InductionHours: 180},
		{Category: product.Crackers, SetpointC: 60, InductionHours: 420},
	}

	setpoints, means := MeanInductionBySetpoint(ms)
	require.Equal(t, []float64{60, 70}, setpoints)
	assert.Equal(t, []float64{410, 170}, means)
}

func TestGrouping(t *testing.T) {
	ms := []Oxidation{
		{Category: product.Crackers, SetpointC: 60, InductionHours: 400},
		{Category: product.SweetBiscuit, SetpointC: 60, InductionHours: 300},
		{Category: product.Crackers, SetpointC: 70, InductionHours: 170},
		{Category: product.Crackers, SetpointC: 60, InductionHours: 410},
	}

	byKey := GroupOxidation(ms)
	assert.Len(t, byKey, 3)
	assert.Len(t, byKey[OxidationGroupKey{Category: product.Crackers, SetpointC: 60}], 2)

	byCat := GroupOxidationByCategory(ms)
	assert.Len(t, byCat[product.Crackers], 3)
	assert.Len(t, byCat[product.SweetBiscuit], 1)
}
