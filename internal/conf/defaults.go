package conf

import "github.com/spf13/viper"

// setDefaultConfig sets default values for each configuration parameter.
func setDefaultConfig() {
	// Main
	viper.SetDefault("main.name", "shelflife")
	viper.SetDefault("main.debug", false)
	viper.SetDefault("main.log.enabled", false)
	viper.SetDefault("main.log.path", "shelflife.log")
	viper.SetDefault("main.log.rotation", RotationDaily)
	viper.SetDefault("main.log.maxsize", 10*1024*1024)

	// Input measurement tables
	viper.SetDefault("input.moisturepath", "data/moisture.csv")
	viper.SetDefault("input.oxidationpath", "data/oxidation.csv")

	// Output artifacts
	viper.SetDefault("output.path", "outputs")
	viper.SetDefault("output.sqlite.enabled", false)
	viper.SetDefault("output.sqlite.path", "shelflife.db")
	viper.SetDefault("output.charts.enabled", false)

	// Outlier screen on oxidation induction periods
	viper.SetDefault("outlier.zthreshold", 3.5)
	viper.SetDefault("outlier.mingroupsize", 6)

	// Nonlinear optimizer budget
	viper.SetDefault("fit.maxevaluations", 10000)

	// Default prediction scenario
	viper.SetDefault("scenario.category", "C")
	viper.SetDefault("scenario.temperaturec", 25.0)
	viper.SetDefault("scenario.dryweight", 200.0)
	viper.SetDefault("scenario.area", 0.1)
	viper.SetDefault("scenario.wvtr", 0.5)
}
