package analysis

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodkinetics/shelflife-go/internal/arrhenius"
	"github.com/foodkinetics/shelflife-go/internal/artifact"
	"github.com/foodkinetics/shelflife-go/internal/conf"
	"github.com/foodkinetics/shelflife-go/internal/gab"
	"github.com/foodkinetics/shelflife-go/internal/product"
)

func testSettings(t *testing.T) *conf.Settings {
	t.Helper()
	dir := t.TempDir()

	settings := &conf.Settings{}
	settings.Input.MoisturePath = filepath.Join(dir, "moisture.csv")
	settings.Input.OxidationPath = filepath.Join(dir, "oxidation.csv")
	settings.Output.Path = filepath.Join(dir, "outputs")
	settings.Outlier.ZThreshold = 3.5
	settings.Outlier.MinGroupSize = 6
	settings.Fit.MaxEvaluations = 10000
	settings.Scenario = conf.ScenarioSettings{
		Category:     "C",
		TemperatureC: 25,
		DryWeight:    200,
		Area:         0.1,
		WVTR:         0.5,
	}
	return settings
}

// writeSyntheticData generates measurement tables from known model
// parameters: a GAB isotherm for category C and an Arrhenius law for
// category C, plus a single-setpoint category F that cannot be fitted.
func writeSyntheticData(t *testing.T, settings *conf.Settings) {
	t.Helper()

	var moisture strings.Builder
	moisture.WriteString("category,water_activity,moisture_content\n")
	for a := 0.1; a < 0.95; a += 0.05 {
		fmt.Fprintf(&moisture, "C,%g,%g\n", a, gab.Model(a, 0.06, 12, 0.75))
	}
	require.NoError(t, os.WriteFile(settings.Input.MoisturePath, []byte(moisture.String()), 0o644))

	var oxidation strings.Builder
	oxidation.WriteString("category,set_point_t,ip_h\n")
	for _, setpoint := range []float64{40, 50, 60} {
		rate := 1e9 * math.Exp(-80*1000/(arrhenius.GasConstant*(setpoint+arrhenius.KelvinOffset)))
		fmt.Fprintf(&oxidation, "C,%g,%g\n", setpoint, 1/rate)
	}
	oxidation.WriteString("F,60,500\n") // one setpoint only: Arrhenius fit must fail for F
	require.NoError(t, os.WriteFile(settings.Input.OxidationPath, []byte(oxidation.String()), 0o644))
}

func TestRunFitProducesArtifacts(t *testing.T) {
	settings := testSettings(t)
	writeSyntheticData(t, settings)

	require.NoError(t, RunFit(settings))

	gabTable, err := artifact.LoadGABParams(filepath.Join(settings.Output.Path, conf.MoistureOutputDir, conf.GABParamsFile))
	require.NoError(t, err)
	require.Contains(t, gabTable, product.Crackers)
	assert.InEpsilon(t, 0.06, gabTable[product.Crackers].Wm, 0.05)

	oxTable, err := artifact.LoadOxidationParams(filepath.Join(settings.Output.Path, conf.OxidationOutputDir, conf.OxidationParamsFile))
	require.NoError(t, err)
	require.Contains(t, oxTable, product.Crackers)
	assert.InEpsilon(t, 80, oxTable[product.Crackers].ActivationEnergy, 0.01)

	// Category F was attempted but has one setpoint: NaN row, no table entry.
	_, ok := oxTable[product.CreamFilling]
	assert.False(t, ok)
	data, err := os.ReadFile(filepath.Join(settings.Output.Path, conf.OxidationOutputDir, conf.OxidationParamsFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), "F,NaN,NaN,NaN")

	// The effective settings are snapshotted next to the artifacts.
	snapshot, err := os.ReadFile(filepath.Join(settings.Output.Path, conf.RunConfigFile))
	require.NoError(t, err)
	assert.Contains(t, string(snapshot), "outlier:")
	assert.Contains(t, string(snapshot), "scenario:")
}

func TestRunPredictWritesPredictionTable(t *testing.T) {
	settings := testSettings(t)
	writeSyntheticData(t, settings)
	require.NoError(t, RunFit(settings))

	require.NoError(t, RunPredict(settings))

	data, err := os.ReadFile(filepath.Join(settings.Output.Path, conf.PredictionsFile))
	require.NoError(t, err)
	content := string(data)

	// One row per enumerated category.
	lines := strings.Split(strings.TrimSpace(content), "\n")
	assert.Len(t, lines, 1+len(product.Categories()))

	// Crackers has both fits, so its prediction is available with a mechanism.
	assert.Contains(t, content, "C,Crackers,")
	assert.NotContains(t, strings.SplitN(content, "\n", 3)[1], "none")

	// Sugar Wafers has no data at all: unavailable with mechanism none.
	assert.Contains(t, content, "W,Sugar Wafers,NaN,none")
}

func TestRunPredictMissingArtifactsIsGraceful(t *testing.T) {
	settings := testSettings(t)
	// No fit stage has run: both parameter tables are absent.
	assert.NoError(t, RunPredict(settings))

	_, err := os.Stat(filepath.Join(settings.Output.Path, conf.PredictionsFile))
	assert.True(t, os.IsNotExist(err), "no prediction table may be written without parameter tables")
}

func TestRunPredictInvalidCategoryWritesNothing(t *testing.T) {
	settings := testSettings(t)
	writeSyntheticData(t, settings)
	require.NoError(t, RunFit(settings))

	settings.Scenario.Category = "Z"
	assert.NoError(t, RunPredict(settings))

	_, err := os.Stat(filepath.Join(settings.Output.Path, conf.PredictionsFile))
	assert.True(t, os.IsNotExist(err), "invalid category must not emit a prediction table")
}

func TestRunFitMissingInputFails(t *testing.T) {
	settings := testSettings(t)
	err := RunFit(settings)
	assert.Error(t, err)
}
