package conf

// Log rotation policies.
const (
	RotationDaily  = "daily"
	RotationWeekly = "weekly"
	RotationSize   = "size"
)

// Names of the CSV artifacts produced by the fit stage and consumed by the
// predict stage. These match the original artifact layout so downstream
// tooling keeps working.
const (
	MoistureOutputDir  = "moisture"
	OxidationOutputDir = "oxidation"

	GABParamsFile       = "gab_params_by_category.csv"
	OxidationParamsFile = "oxidation_params_by_category.csv"
	PredictionsFile     = "shelf_life_predictions_by_category.csv"

	// RunConfigFile records the effective settings of a fit run so results
	// stay reproducible after config or flag changes.
	RunConfigFile = "run_config.yaml"
)
