package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "LIKE"

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Tracing TracingConfig `yaml:"tracing" envconfig:"TRACING"`
	Batch   BatchConfig   `yaml:"batch" envconfig:"BATCH"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"eq=json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/likereport.log"`
}

// PathsConfig contains file system paths configuration.
// Empty values are resolved by GetPaths.
type PathsConfig struct {
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	InputDir  string `yaml:"input_dir" envconfig:"INPUT_DIR"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// ReportConfig controls how the report is rendered and named.
type ReportConfig struct {
	// FileNamePattern is a Go time layout; the result is the workbook name.
	FileNamePattern  string `yaml:"file_name_pattern" envconfig:"FILE_NAME_PATTERN" default:"20060102_Like_Auswertung" validate:"required"`
	DecimalSeparator string `yaml:"decimal_separator" envconfig:"DECIMAL_SEPARATOR" default:"," validate:"required,len=1"`
	PercentSuffix    string `yaml:"percent_suffix" envconfig:"PERCENT_SUFFIX" default:"%"`
	Format           string `yaml:"format" envconfig:"FORMAT" default:"xlsx" validate:"oneof=xlsx csv both"`
	Overwrite        bool   `yaml:"overwrite" envconfig:"OVERWRITE" default:"true"`
	MinColumnWidth   int    `yaml:"min_column_width" envconfig:"MIN_COLUMN_WIDTH" default:"10" validate:"min=1,max=255"`
	InputDelimiter   string `yaml:"input_delimiter" envconfig:"INPUT_DELIMITER" default:";" validate:"required,len=1"`
}

// TracingConfig controls OpenTelemetry span export for pipeline steps.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled" envconfig:"ENABLED" default:"false"`
	Exporter    string  `yaml:"exporter" envconfig:"EXPORTER" default:"stdout" validate:"oneof=stdout none"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" default:"1" validate:"gte=0,lte=1"`
}

// BatchConfig controls concurrent processing of several run directories.
type BatchConfig struct {
	MaxConcurrency int `yaml:"max_concurrency" envconfig:"MAX_CONCURRENCY" default:"4" validate:"min=1,max=64"`
}

// Load loads configuration from a .env file, environment variables and config file
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is like Load but reads the YAML file at configFile when it is non-empty.
func LoadFrom(configFile string) (*Config, error) {
	// A missing .env is not an error
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileConfig, present, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = mergeConfigs(*fileConfig, cfg, func(key string) bool {
				return envSet(key) || !present[key]
			})
		}
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file. The returned set holds the
// env-style keys (SECTION_FIELD) that the file actually sets.
func loadFromFile(filePath string) (*Config, map[string]bool, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, err
	}

	var raw map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, nil, err
	}
	present := make(map[string]bool)
	for section, fields := range raw {
		for field := range fields {
			present[strings.ToUpper(section+"_"+field)] = true
		}
	}

	return &cfg, present, nil
}

// envSet reports whether the variable for key is present in the environment.
func envSet(key string) bool {
	_, ok := os.LookupEnv(EnvPrefix + "_" + key)
	return ok
}

// mergeConfigs merges file config with env config (env takes precedence).
// keep reports whether the env value for a key must be kept, either because
// the variable is set or because the file does not mention the key.
func mergeConfigs(fileConfig, envConfig Config, keep func(string) bool) Config {
	pickString := func(key string, env *string, file string) {
		if !keep(key) {
			*env = file
		}
	}

	pickString("LOGGING_LEVEL", &envConfig.Logging.Level, fileConfig.Logging.Level)
	pickString("LOGGING_FORMAT", &envConfig.Logging.Format, fileConfig.Logging.Format)
	pickString("LOGGING_OUTPUT", &envConfig.Logging.Output, fileConfig.Logging.Output)
	pickString("LOGGING_FILE_PATH", &envConfig.Logging.FilePath, fileConfig.Logging.FilePath)

	pickString("PATHS_OUTPUT_DIR", &envConfig.Paths.OutputDir, fileConfig.Paths.OutputDir)
	pickString("PATHS_INPUT_DIR", &envConfig.Paths.InputDir, fileConfig.Paths.InputDir)
	pickString("PATHS_LOGS_DIR", &envConfig.Paths.LogsDir, fileConfig.Paths.LogsDir)

	pickString("REPORT_FILE_NAME_PATTERN", &envConfig.Report.FileNamePattern, fileConfig.Report.FileNamePattern)
	pickString("REPORT_DECIMAL_SEPARATOR", &envConfig.Report.DecimalSeparator, fileConfig.Report.DecimalSeparator)
	pickString("REPORT_PERCENT_SUFFIX", &envConfig.Report.PercentSuffix, fileConfig.Report.PercentSuffix)
	pickString("REPORT_FORMAT", &envConfig.Report.Format, fileConfig.Report.Format)
	pickString("REPORT_INPUT_DELIMITER", &envConfig.Report.InputDelimiter, fileConfig.Report.InputDelimiter)
	if !keep("REPORT_MIN_COLUMN_WIDTH") {
		envConfig.Report.MinColumnWidth = fileConfig.Report.MinColumnWidth
	}
	if !keep("REPORT_OVERWRITE") {
		envConfig.Report.Overwrite = fileConfig.Report.Overwrite
	}

	if !keep("TRACING_ENABLED") {
		envConfig.Tracing.Enabled = fileConfig.Tracing.Enabled
	}
	pickString("TRACING_EXPORTER", &envConfig.Tracing.Exporter, fileConfig.Tracing.Exporter)
	if !keep("TRACING_SAMPLE_RATIO") {
		envConfig.Tracing.SampleRatio = fileConfig.Tracing.SampleRatio
	}

	if !keep("BATCH_MAX_CONCURRENCY") {
		envConfig.Batch.MaxConcurrency = fileConfig.Batch.MaxConcurrency
	}

	return envConfig
}

// resolvePaths fills empty directories from the centralized paths system
func (c *Config) resolvePaths() error {
	paths, err := GetPaths()
	if err != nil {
		return fmt.Errorf("failed to get paths: %w", err)
	}

	if c.Paths.OutputDir == "" {
		c.Paths.OutputDir = paths.OutputDir
	}
	if c.Paths.LogsDir == "" {
		c.Paths.LogsDir = paths.LogsDir
	}
	c.Paths.OutputDir = expandHome(c.Paths.OutputDir, paths.HomeDir)
	c.Paths.InputDir = expandHome(c.Paths.InputDir, paths.HomeDir)
	c.Paths.LogsDir = expandHome(c.Paths.LogsDir, paths.HomeDir)

	if c.Logging.FilePath != "" && !filepath.IsAbs(c.Logging.FilePath) {
		c.Logging.FilePath = filepath.Join(c.Paths.LogsDir, filepath.Base(c.Logging.FilePath))
	}

	return nil
}

// Validate checks struct constraints and normalizes logging per project policy.
func (c *Config) Validate() error {
	// JSON output and dual sinks are fixed policy
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "both"
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ReportFileName returns the workbook base name (without extension) for the given date layout.
func (c *Config) ReportFileName(now time.Time) string {
	return now.Format(c.Report.FileNamePattern)
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(home, path[2:])
	}
	return path
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG_FILE"); explicit != "" {
		return explicit
	}

	locations := []string{
		"likereport.yaml",
		"configs/likereport.yaml",
		"../configs/likereport.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	cfg := &Config{
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "both",
			FilePath: DefaultLogsDir + "/" + DefaultLogFile,
		},
		Report: ReportConfig{
			FileNamePattern:  DefaultFileNamePattern,
			DecimalSeparator: ",",
			PercentSuffix:    "%",
			Format:           "xlsx",
			Overwrite:        true,
			MinColumnWidth:   DefaultMinColumnWidth,
			InputDelimiter:   ";",
		},
		Tracing: TracingConfig{
			Exporter:    "stdout",
			SampleRatio: 1,
		},
		Batch: BatchConfig{
			MaxConcurrency: DefaultBatchConcurrency,
		},
	}
	if paths, err := GetPaths(); err == nil {
		cfg.Paths.OutputDir = paths.OutputDir
		cfg.Paths.LogsDir = paths.LogsDir
	}
	return cfg
}
