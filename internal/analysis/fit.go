// Package analysis orchestrates the two stages of a shelf-life run: fitting
// the degradation models to measurement data, and fusing the fitted
// parameters into per-category predictions.
package analysis

import (
	"fmt"
	"path/filepath"

	"github.com/foodkinetics/shelflife-go/internal/arrhenius"
	"github.com/foodkinetics/shelflife-go/internal/artifact"
	"github.com/foodkinetics/shelflife-go/internal/chart"
	"github.com/foodkinetics/shelflife-go/internal/conf"
	"github.com/foodkinetics/shelflife-go/internal/gab"
	"github.com/foodkinetics/shelflife-go/internal/logging"
	"github.com/foodkinetics/shelflife-go/internal/measurement"
	"github.com/foodkinetics/shelflife-go/internal/outlier"
	"github.com/foodkinetics/shelflife-go/internal/product"
)

// RunFit executes the full fitting stage: read both measurement tables,
// screen oxidation outliers, fit both models per category and write the
// parameter table artifacts. Fit failures are isolated per category; only
// missing input files abort the run.
func RunFit(settings *conf.Settings) error {
	log := logging.ForService("fit")

	moisture, err := measurement.ReadMoistureCSV(settings.Input.MoisturePath)
	if err != nil {
		return err
	}
	oxidation, err := measurement.ReadOxidationCSV(settings.Input.OxidationPath)
	if err != nil {
		return err
	}

	log.Info("loaded measurement tables",
		"moisture_rows", len(moisture),
		"oxidation_rows", len(oxidation))

	// Screen oxidation outliers per (category, setpoint) group before fitting.
	cleaned := outlier.Clean(oxidation, settings.Outlier.ZThreshold, settings.Outlier.MinGroupSize)
	if removed := len(oxidation) - len(cleaned); removed > 0 {
		log.Info("removed oxidation outliers", "removed", removed)
	}

	gabTable, gabCats := fitGAB(settings, moisture)
	oxTable, oxCats := fitArrhenius(settings, cleaned)

	moistureDir := filepath.Join(settings.Output.Path, conf.MoistureOutputDir)
	oxidationDir := filepath.Join(settings.Output.Path, conf.OxidationOutputDir)

	gabPath := filepath.Join(moistureDir, conf.GABParamsFile)
	if err := artifact.WriteGABParams(gabPath, gabCats, gabTable); err != nil {
		return err
	}
	log.Info("GAB parameters saved", "path", gabPath)

	oxPath := filepath.Join(oxidationDir, conf.OxidationParamsFile)
	if err := artifact.WriteOxidationParams(oxPath, oxCats, oxTable); err != nil {
		return err
	}
	log.Info("Arrhenius parameters saved", "path", oxPath)

	// Snapshot the effective settings next to the artifacts so the fit stays
	// reproducible after config or flag changes.
	runConfigPath := filepath.Join(settings.Output.Path, conf.RunConfigFile)
	if err := conf.SaveSettings(settings, runConfigPath); err != nil {
		log.Warn("failed to save run configuration snapshot", "error", err)
	} else {
		log.Info("run configuration saved", "path", runConfigPath)
	}

	return nil
}

// fitGAB fits the GAB isotherm for every category present in the moisture
// data. It returns the fitted table and the ordered list of attempted
// categories; failed categories appear in the list but not in the table.
func fitGAB(settings *conf.Settings, moisture []measurement.Moisture) (map[product.Category]gab.Parameters, []product.Category) {
	log := logging.ForService("fit")
	groups := measurement.GroupMoistureByCategory(moisture)

	table := make(map[product.Category]gab.Parameters)
	var attempted []product.Category

	for _, cat := range product.Categories() {
		group, ok := groups[cat]
		if !ok {
			continue
		}
		attempted = append(attempted, cat)

		aw := make([]float64, len(group))
		mc := make([]float64, len(group))
		for i, m := range group {
			aw[i] = m.WaterActivity
			mc[i] = m.MoistureContent
		}

		params, err := gab.Fit(aw, mc, settings.Fit.MaxEvaluations)
		if err != nil {
			log.Warn("GAB fitting failed", "category", cat, "error", err)
			continue
		}
		table[cat] = params

		log.Info("fitted GAB isotherm",
			"category", cat,
			"W_m", fmt.Sprintf("%.4f", params.Wm),
			"C", fmt.Sprintf("%.4f", params.C),
			"K", fmt.Sprintf("%.4f", params.K),
			"R2", fmt.Sprintf("%.4f", params.Metrics.R2),
			"RMSE", fmt.Sprintf("%.4f", params.Metrics.RMSE),
			"MAE", fmt.Sprintf("%.4f", params.Metrics.MAE),
			"RSS", fmt.Sprintf("%.4f", params.Metrics.RSS))

		if settings.Output.Charts.Enabled {
			path := filepath.Join(settings.Output.Path, conf.MoistureOutputDir, fmt.Sprintf("gab_isotherm_%s.png", cat))
			if err := chart.SaveGABIsotherm(path, cat, params, aw, mc); err != nil {
				log.Warn("failed to render GAB chart", "category", cat, "error", err)
			}
		}
	}

	return table, attempted
}

// fitArrhenius fits the Arrhenius model for every category present in the
// cleaned oxidation data, averaging induction periods per setpoint first.
func fitArrhenius(settings *conf.Settings, cleaned []measurement.Oxidation) (map[product.Category]arrhenius.Parameters, []product.Category) {
	log := logging.ForService("fit")
	groups := measurement.GroupOxidationByCategory(cleaned)

	table := make(map[product.Category]arrhenius.Parameters)
	var attempted []product.Category

	for _, cat := range product.Categories() {
		group, ok := groups[cat]
		if !ok {
			continue
		}
		attempted = append(attempted, cat)

		setpoints, means := measurement.MeanInductionBySetpoint(group)
		params, err := arrhenius.Fit(setpoints, means)
		if err != nil {
			log.Warn("Arrhenius fitting failed", "category", cat, "error", err)
			continue
		}
		table[cat] = params

		log.Info("fitted Arrhenius model",
			"category", cat,
			"E_a_kJ_mol", fmt.Sprintf("%.4f", params.ActivationEnergy),
			"k_0_per_h", fmt.Sprintf("%.4e", params.PreExponential),
			"IP_25C_days", fmt.Sprintf("%.2f", params.InductionDays25C),
			"R2", fmt.Sprintf("%.4f", params.Metrics.R2),
			"RMSE", fmt.Sprintf("%.4f", params.Metrics.RMSE),
			"MAE", fmt.Sprintf("%.4f", params.Metrics.MAE),
			"RSS", fmt.Sprintf("%.4f", params.Metrics.RSS))

		if settings.Output.Charts.Enabled {
			path := filepath.Join(settings.Output.Path, conf.OxidationOutputDir, fmt.Sprintf("arrhenius_fit_%s.png", cat))
			if err := chart.SaveArrheniusLine(path, cat, params, setpoints, means); err != nil {
				log.Warn("failed to render Arrhenius chart", "category", cat, "error", err)
			}
		}
	}

	return table, attempted
}
