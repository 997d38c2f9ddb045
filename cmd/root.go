package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/foodkinetics/shelflife-go/cmd/fit"
	"github.com/foodkinetics/shelflife-go/cmd/predict"
	"github.com/foodkinetics/shelflife-go/internal/conf"
	"github.com/foodkinetics/shelflife-go/internal/logging"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shelflife",
		Short: "Shelf-life prediction for packaged baked goods",
		Long: `Fits moisture sorption (GAB isotherm) and lipid oxidation (Arrhenius
kinetics) models to experimental data and fuses them into a conservative
shelf-life estimate with an attributed dominant failure mechanism.`,
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, settings)

	// Add sub-commands to the root command.
	subcommands := []*cobra.Command{
		fit.Command(settings),
		predict.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Main.Debug, "debug", "d", viper.GetBool("main.debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVarP(&settings.Output.Path, "output", "o", viper.GetString("output.path"), "Path to output directory")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		logging.Error("failed to bind global flags", "error", err)
	}
}
