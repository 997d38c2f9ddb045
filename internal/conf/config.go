// config.go: This file contains the configuration for the shelflife application.
// It defines the settings struct and functions to load and save the settings.
package conf

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var configFiles embed.FS

// LogConfig contains settings for the optional rotating log file.
type LogConfig struct {
	Enabled  bool   // true to enable file logging
	Path     string // path to log file
	Rotation string // rotation policy: daily, weekly or size
	MaxSize  int64  // max size in bytes for size rotation
}

// InputSettings contains paths to the experimental measurement tables.
type InputSettings struct {
	MoisturePath  string // moisture sorption measurements CSV
	OxidationPath string // oxidation induction period measurements CSV
}

// SQLiteSettings contains settings for optional SQLite output.
type SQLiteSettings struct {
	Enabled bool   // true to also save predictions to SQLite
	Path    string // path to SQLite database file
}

// OutputSettings contains settings for fit artifacts and prediction output.
type OutputSettings struct {
	Path   string         // base directory for output artifacts
	SQLite SQLiteSettings // SQLite output settings
	Charts struct {
		Enabled bool // true to render fitted curve charts as PNG
	}
}

// OutlierSettings tunes the robust outlier screen applied to oxidation data.
type OutlierSettings struct {
	ZThreshold   float64 // robust z-score threshold, observations above are discarded
	MinGroupSize int     // groups smaller than this are passed through unmodified
}

// FitSettings tunes the nonlinear optimizer.
type FitSettings struct {
	MaxEvaluations int // function evaluation budget for the GAB fit
}

// ScenarioSettings holds the storage and packaging constants for prediction.
type ScenarioSettings struct {
	Category     string  // category code for the console report
	TemperatureC float64 // storage temperature (°C)
	DryWeight    float64 // dry solid weight (g)
	Area         float64 // package area (m²)
	WVTR         float64 // water vapour transmission rate (g/(m²·day))
}

// Settings contains all application settings.
type Settings struct {
	Main struct {
		Name  string    // name of this node, used for logging
		Debug bool      // true to enable debug log output
		Log   LogConfig // log file settings
	}
	Input    InputSettings    // measurement table paths
	Output   OutputSettings   // artifact output settings
	Outlier  OutlierSettings  // outlier screen tuning
	Fit      FitSettings      // optimizer tuning
	Scenario ScenarioSettings // prediction scenario constants
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration into a new Settings struct and stores it as
// the process-wide instance.
func Load() (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	settings := &Settings{}

	// Initialize viper and read config
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	// Unmarshal the config into settings
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	// Validate settings
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// Setting returns the current process-wide settings instance.
// Returns nil if Load() has not been called.
func Setting() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Get OS specific config paths
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	// Assign config paths to Viper
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	// Read configuration file
	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig creates a default config file from the embedded template
// and writes it to the first default config path.
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")

	defaultConfig, err := configFiles.ReadFile("config.yaml")
	if err != nil {
		return fmt.Errorf("error reading embedded config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, defaultConfig, 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// SaveSettings writes the current settings to the given path as YAML.
func SaveSettings(settings *Settings, path string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("error writing settings to file: %w", err)
	}

	return nil
}

// ValidateSettings checks settings for values that would make a run meaningless.
func ValidateSettings(settings *Settings) error {
	if settings.Outlier.ZThreshold <= 0 {
		return fmt.Errorf("outlier z-threshold must be positive, got %v", settings.Outlier.ZThreshold)
	}
	if settings.Outlier.MinGroupSize < 1 {
		return fmt.Errorf("outlier minimum group size must be at least 1, got %d", settings.Outlier.MinGroupSize)
	}
	if settings.Fit.MaxEvaluations < 1 {
		return fmt.Errorf("fit evaluation budget must be at least 1, got %d", settings.Fit.MaxEvaluations)
	}
	if settings.Scenario.Area <= 0 || settings.Scenario.WVTR <= 0 {
		return fmt.Errorf("package area and WVTR must be positive")
	}
	return nil
}
