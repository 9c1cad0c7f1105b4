package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every LIKE_* variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"LOGGING_LEVEL", "LOGGING_FORMAT", "LOGGING_OUTPUT", "LOGGING_FILE_PATH",
		"PATHS_OUTPUT_DIR", "PATHS_INPUT_DIR", "PATHS_LOGS_DIR",
		"REPORT_FILE_NAME_PATTERN", "REPORT_DECIMAL_SEPARATOR", "REPORT_PERCENT_SUFFIX",
		"REPORT_FORMAT", "REPORT_OVERWRITE", "REPORT_MIN_COLUMN_WIDTH", "REPORT_INPUT_DELIMITER",
		"TRACING_ENABLED", "TRACING_EXPORTER", "TRACING_SAMPLE_RATIO",
		"BATCH_MAX_CONCURRENCY", "CONFIG_FILE",
	}
	for _, key := range keys {
		name := EnvPrefix + "_" + key
		if old, ok := os.LookupEnv(name); ok {
			t.Cleanup(func() { os.Setenv(name, old) })
		}
		os.Unsetenv(name)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "likereport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults without env or file",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "both", cfg.Logging.Output)
				assert.Equal(t, DefaultFileNamePattern, cfg.Report.FileNamePattern)
				assert.Equal(t, ",", cfg.Report.DecimalSeparator)
				assert.Equal(t, "%", cfg.Report.PercentSuffix)
				assert.Equal(t, "xlsx", cfg.Report.Format)
				assert.True(t, cfg.Report.Overwrite)
				assert.Equal(t, 10, cfg.Report.MinColumnWidth)
				assert.Equal(t, ";", cfg.Report.InputDelimiter)
				assert.False(t, cfg.Tracing.Enabled)
				assert.Equal(t, 4, cfg.Batch.MaxConcurrency)
				assert.Equal(t, DefaultOutputFolder, filepath.Base(cfg.Paths.OutputDir))
				assert.True(t, filepath.IsAbs(cfg.Logging.FilePath))
			},
		},
		{
			name: "environment overrides defaults",
			env: map[string]string{
				"LIKE_LOGGING_LEVEL":            "debug",
				"LIKE_REPORT_DECIMAL_SEPARATOR": ".",
				"LIKE_BATCH_MAX_CONCURRENCY":    "8",
				"LIKE_PATHS_OUTPUT_DIR":         "/srv/reports",
				"LIKE_REPORT_OVERWRITE":         "false",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, ".", cfg.Report.DecimalSeparator)
				assert.Equal(t, 8, cfg.Batch.MaxConcurrency)
				assert.Equal(t, "/srv/reports", cfg.Paths.OutputDir)
				assert.False(t, cfg.Report.Overwrite)
			},
		},
		{
			name: "file values apply where env is unset",
			file: `
report:
  percent_suffix: " %"
  overwrite: false
batch:
  max_concurrency: 2
tracing:
  enabled: true
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, " %", cfg.Report.PercentSuffix)
				assert.False(t, cfg.Report.Overwrite)
				assert.Equal(t, 2, cfg.Batch.MaxConcurrency)
				assert.True(t, cfg.Tracing.Enabled)
				assert.Equal(t, ",", cfg.Report.DecimalSeparator)
			},
		},
		{
			name: "env wins over file",
			env:  map[string]string{"LIKE_BATCH_MAX_CONCURRENCY": "6"},
			file: "batch:\n  max_concurrency: 2\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 6, cfg.Batch.MaxConcurrency)
			},
		},
		{
			name:    "invalid report format rejected",
			env:     map[string]string{"LIKE_REPORT_FORMAT": "pdf"},
			wantErr: true,
		},
		{
			name:    "multi character separator rejected",
			file:    "report:\n  decimal_separator: \"::\"\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "report: [unclosed",
			wantErr: true,
		},
		{
			name:    "unparsable env value",
			env:     map[string]string{"LIKE_BATCH_MAX_CONCURRENCY": "many"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			var file string
			if tt.file != "" {
				file = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFrom(file)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoad_ExplicitConfigFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "logging:\n  level: warn\n")
	t.Setenv("LIKE_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate_NormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = ""
	cfg.Logging.Output = ""

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "both", cfg.Logging.Output)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "xlsx", cfg.Report.Format)
	assert.Equal(t, "stdout", cfg.Tracing.Exporter)
}

func TestReportFileName(t *testing.T) {
	cfg := Default()
	day := time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "20240307_Like_Auswertung", cfg.ReportFileName(day))

	cfg.Report.FileNamePattern = "2006-01-02_like"
	assert.Equal(t, "2024-03-07_like", cfg.ReportFileName(day))
}

func TestExpandHome(t *testing.T) {
	home := filepath.FromSlash("/home/alex")
	assert.Equal(t, home, expandHome("~", home))
	assert.Equal(t, filepath.Join(home, "out"), expandHome("~/out", home))
	assert.Equal(t, "/abs/path", expandHome("/abs/path", home))
	assert.Equal(t, "relative", expandHome("relative", home))
}
