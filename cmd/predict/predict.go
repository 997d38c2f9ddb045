package predict

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/foodkinetics/shelflife-go/internal/analysis"
	"github.com/foodkinetics/shelflife-go/internal/conf"
	"github.com/foodkinetics/shelflife-go/internal/product"
)

// Command creates the predict command, which fuses the fitted parameter
// tables into shelf-life predictions.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict shelf life from fitted parameters",
		Long: `Loads the parameter tables produced by the fit command, writes the
default-scenario prediction table for all categories and prints a report for
the requested category under the given storage and packaging constants.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return analysis.RunPredict(settings)
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures flags specific to the predict command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().StringVarP(&settings.Scenario.Category, "category", "c", viper.GetString("scenario.category"),
		"Category code ("+product.CodeList()+")")
	cmd.Flags().Float64VarP(&settings.Scenario.TemperatureC, "temperature", "t", viper.GetFloat64("scenario.temperaturec"),
		"Storage temperature in °C (for oxidation model)")
	cmd.Flags().Float64VarP(&settings.Scenario.DryWeight, "dry-weight", "w", viper.GetFloat64("scenario.dryweight"),
		"Dry solid weight (g)")
	cmd.Flags().Float64VarP(&settings.Scenario.Area, "area", "a", viper.GetFloat64("scenario.area"),
		"Package area (m²)")
	cmd.Flags().Float64Var(&settings.Scenario.WVTR, "wvtr", viper.GetFloat64("scenario.wvtr"),
		"Packaging water vapour transmission rate (g/(m²·day))")
	cmd.Flags().BoolVar(&settings.Output.SQLite.Enabled, "sqlite", viper.GetBool("output.sqlite.enabled"),
		"Also save predictions to the SQLite database")
}
