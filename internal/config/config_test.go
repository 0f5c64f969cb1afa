package config

import (
	"path/filepath"
	"testing"

	"medviz/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MEDVIZ_INPUT", "MEDVIZ_DELIMITER", "MEDVIZ_OUTPUT_DIR", "MEDVIZ_CATPLOT_FILE",
		"MEDVIZ_HEATMAP_FILE", "MEDVIZ_QUANTILE_METHOD", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "catplot.png", cfg.CatPlotPath())
	assert.Equal(t, "heatmap.png", cfg.HeatMapPath())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MEDVIZ_INPUT", "data/exams.xlsx")
	t.Setenv("MEDVIZ_DELIMITER", ";")
	t.Setenv("MEDVIZ_OUTPUT_DIR", "figures")
	t.Setenv("MEDVIZ_HEATMAP_FILE", "corr.png")
	t.Setenv("MEDVIZ_QUANTILE_METHOD", "Nearest-Rank")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "data/exams.xlsx", cfg.Data.InputFile)
	assert.Equal(t, ";", cfg.Data.Delimiter)
	assert.Equal(t, QuantileNearestRank, cfg.Cohort.QuantileMethod)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, filepath.Join("figures", "corr.png"), cfg.HeatMapPath())
	assert.Equal(t, filepath.Join("figures", "catplot.png"), cfg.CatPlotPath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty input", func(c *Config) { c.Data.InputFile = "  " }},
		{"long delimiter", func(c *Config) { c.Data.Delimiter = ";;" }},
		{"unknown quantile method", func(c *Config) { c.Cohort.QuantileMethod = "midpoint" }},
		{"output path with directory", func(c *Config) { c.Output.CatPlotFile = "sub/catplot.png" }},
		{"empty output name", func(c *Config) { c.Output.HeatMapFile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
		})
	}
}

func TestValidate_EmptyDirMeansCurrent(t *testing.T) {
	cfg := Default()
	cfg.Output.Dir = ""
	require.NoError(t, Validate(cfg))
	assert.Equal(t, ".", cfg.Output.Dir)
}
