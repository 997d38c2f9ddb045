package analysis

import (
	"fmt"
	"path/filepath"

	"github.com/foodkinetics/shelflife-go/internal/artifact"
	"github.com/foodkinetics/shelflife-go/internal/conf"
	"github.com/foodkinetics/shelflife-go/internal/datastore"
	"github.com/foodkinetics/shelflife-go/internal/errors"
	"github.com/foodkinetics/shelflife-go/internal/logging"
	"github.com/foodkinetics/shelflife-go/internal/product"
	"github.com/foodkinetics/shelflife-go/internal/shelflife"
)

// RunPredict executes the fusion stage: load both parameter table artifacts,
// write the default-scenario prediction table for all categories and print a
// console report for the configured category under the scenario overrides.
//
// A missing parameter table is a recoverable precondition, RunPredict prints
// an instructive message and returns nil. An invalid category code is
// reported with the valid code set and no table is emitted for that run.
func RunPredict(settings *conf.Settings) error {
	log := logging.ForService("predict")

	// Validate the requested category before producing any output.
	cat, err := product.Parse(settings.Scenario.Category)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}

	gabPath := filepath.Join(settings.Output.Path, conf.MoistureOutputDir, conf.GABParamsFile)
	oxPath := filepath.Join(settings.Output.Path, conf.OxidationOutputDir, conf.OxidationParamsFile)

	gabTable, err := artifact.LoadGABParams(gabPath)
	if err != nil {
		return reportMissingArtifact(err, gabPath)
	}
	oxTable, err := artifact.LoadOxidationParams(oxPath)
	if err != nil {
		return reportMissingArtifact(err, oxPath)
	}

	// Full prediction table for all categories with the default scenario.
	defaults := shelflife.DefaultScenario()
	predictions := shelflife.CombineAll(gabTable, oxTable, defaults)

	predictionsPath := filepath.Join(settings.Output.Path, conf.PredictionsFile)
	if err := artifact.WritePredictions(predictionsPath, predictions); err != nil {
		return err
	}
	fmt.Println("Default predictions by category saved to", predictionsPath)

	if settings.Output.SQLite.Enabled {
		if err := savePredictions(settings, predictions, defaults); err != nil {
			// Database output is best effort, the CSV artifact is authoritative.
			log.Warn("failed to save predictions to database", "error", err)
		}
	}

	// Console report for the requested category under the scenario overrides.
	scenario := shelflife.Scenario{
		TemperatureC: settings.Scenario.TemperatureC,
		DryWeight:    settings.Scenario.DryWeight,
		Area:         settings.Scenario.Area,
		WVTR:         settings.Scenario.WVTR,
	}
	printReport(shelflife.Combine(cat, gabTable, oxTable, scenario), scenario)

	return nil
}

// reportMissingArtifact turns a missing parameter table into an instructive
// message rather than a failure trace. Other errors propagate.
func reportMissingArtifact(err error, path string) error {
	if errors.IsNotFound(err) {
		fmt.Printf("Missing parameter table: %s\n", path)
		fmt.Println("Run 'shelflife fit' first to produce the parameter tables.")
		return nil
	}
	return err
}

func savePredictions(settings *conf.Settings, predictions []shelflife.Prediction, sc shelflife.Scenario) error {
	store, err := datastore.Open(settings.Output.SQLite.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.SavePredictions(predictions, sc)
}

// printReport prints the per-category shelf-life report to the console.
func printReport(p shelflife.Prediction, sc shelflife.Scenario) {
	fmt.Println("\n--- Shelf Life Prediction ---")
	fmt.Printf("Category: %s (%s)\n", p.Category, p.Category.Name())
	fmt.Printf("Temperature: %g °C, W_s=%g g, A=%g m², WVTR=%g g/(m²·day)\n",
		sc.TemperatureC, sc.DryWeight, sc.Area, sc.WVTR)
	if p.Available {
		fmt.Printf("Shelf life: %.2f days\n", p.Days)
	} else {
		fmt.Println("Shelf life: unavailable")
	}
	fmt.Printf("Dominant model: %s\n\n", p.Dominant)
}
