package config

import (
	"os"
	"path/filepath"
	"strings"

	"medviz/internal/errors"

	"github.com/joho/godotenv"
)

// Quantile methods accepted by QUANTILE_METHOD
const (
	QuantileLinear      = "linear"
	QuantileNearestRank = "nearest-rank"
	QuantileEmpirical   = "empirical"
)

// Config represents the complete application configuration
type Config struct {
	Data    DataConfig
	Output  OutputConfig
	Cohort  CohortConfig
	Logging LoggingConfig
}

// DataConfig holds input table settings
type DataConfig struct {
	InputFile string
	Delimiter string // empty means sniff from the header line
}

// OutputConfig holds where figures are written
type OutputConfig struct {
	Dir         string
	CatPlotFile string
	HeatMapFile string
}

// CohortConfig holds outlier filter settings
type CohortConfig struct {
	QuantileMethod string
}

// LoggingConfig holds log verbosity and encoding
type LoggingConfig struct {
	Level  string
	Format string
}

// CatPlotPath returns the full path of the categorical figure
func (c *Config) CatPlotPath() string {
	return filepath.Join(c.Output.Dir, c.Output.CatPlotFile)
}

// HeatMapPath returns the full path of the correlation figure
func (c *Config) HeatMapPath() string {
	return filepath.Join(c.Output.Dir, c.Output.HeatMapFile)
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Data: DataConfig{
			InputFile: "medical_examination.csv",
		},
		Output: OutputConfig{
			Dir:         ".",
			CatPlotFile: "catplot.png",
			HeatMapFile: "heatmap.png",
		},
		Cohort: CohortConfig{
			QuantileMethod: QuantileLinear,
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "console",
		},
	}
}

// Load reads an optional .env file, then environment variables, and validates the result
func Load() (*Config, error) {
	// A missing .env is normal; anything else is worth reporting
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(errors.WithCode(errors.CodeConfigInvalid, err), "failed to read .env")
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment only
func FromEnv() (*Config, error) {
	def := Default()
	config := &Config{
		Data: DataConfig{
			InputFile: getEnvOrDefault("MEDVIZ_INPUT", def.Data.InputFile),
			Delimiter: os.Getenv("MEDVIZ_DELIMITER"),
		},
		Output: OutputConfig{
			Dir:         getEnvOrDefault("MEDVIZ_OUTPUT_DIR", def.Output.Dir),
			CatPlotFile: getEnvOrDefault("MEDVIZ_CATPLOT_FILE", def.Output.CatPlotFile),
			HeatMapFile: getEnvOrDefault("MEDVIZ_HEATMAP_FILE", def.Output.HeatMapFile),
		},
		Cohort: CohortConfig{
			QuantileMethod: strings.ToLower(getEnvOrDefault("MEDVIZ_QUANTILE_METHOD", def.Cohort.QuantileMethod)),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", def.Logging.Level),
			Format: getEnvOrDefault("LOG_FORMAT", def.Logging.Format),
		},
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

// Validate checks a configuration assembled from env or flags
func Validate(config *Config) error {
	if strings.TrimSpace(config.Data.InputFile) == "" {
		return errors.ConfigInvalid("input file is required")
	}
	if len([]rune(config.Data.Delimiter)) > 1 {
		return errors.ConfigInvalid("delimiter must be a single character")
	}
	switch config.Cohort.QuantileMethod {
	case QuantileLinear, QuantileNearestRank, QuantileEmpirical:
	default:
		return errors.ConfigInvalid("unknown quantile method: " + config.Cohort.QuantileMethod)
	}
	for _, name := range []string{config.Output.CatPlotFile, config.Output.HeatMapFile} {
		if name == "" || filepath.Base(name) != name {
			return errors.ConfigInvalid("output file must be a bare file name: " + name)
		}
	}
	if config.Output.Dir == "" {
		config.Output.Dir = "."
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
