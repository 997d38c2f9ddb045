package fit

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/foodkinetics/shelflife-go/internal/analysis"
	"github.com/foodkinetics/shelflife-go/internal/conf"
)

// Command creates the fit command, which fits both degradation models to the
// measurement tables and writes the parameter table artifacts.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit the GAB and Arrhenius models to measurement data",
		Long: `Reads the moisture and oxidation measurement tables, removes anomalous
oxidation readings, fits both degradation models per category and writes the
parameter tables used by the predict command.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return analysis.RunFit(settings)
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures flags specific to the fit command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().StringVar(&settings.Input.MoisturePath, "moisture-data", viper.GetString("input.moisturepath"), "Path to moisture measurements CSV")
	cmd.Flags().StringVar(&settings.Input.OxidationPath, "oxidation-data", viper.GetString("input.oxidationpath"), "Path to oxidation measurements CSV")
	cmd.Flags().BoolVar(&settings.Output.Charts.Enabled, "charts", viper.GetBool("output.charts.enabled"), "Render fitted curve charts as PNG")
	cmd.Flags().Float64Var(&settings.Outlier.ZThreshold, "z-threshold", viper.GetFloat64("outlier.zthreshold"), "Robust z-score threshold for outlier removal")
	cmd.Flags().IntVar(&settings.Outlier.MinGroupSize, "min-group", viper.GetInt("outlier.mingroupsize"), "Minimum group size for outlier screening")
}
