package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Duration wraps time.Duration so values like "10m" decode from both
// the YAML file and the environment.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Decode implements envconfig.Decoder.
func (d *Duration) Decode(value string) error {
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// Config is the complete application configuration. Values come from an
// optional YAML file overridden by THERM_* environment variables.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// PathsConfig contains file system paths configuration.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data_cleaned"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR" default:"logs"`
}

// PipelineConfig contains the tunable knobs of the reconciliation
// pipeline. Defaults reproduce the instrument deployment: 10-minute
// bins, 2 boxes of 16 sensors, end-of-data at 2 missing required
// columns.
type PipelineConfig struct {
	BinWidth            Duration `yaml:"bin_width" envconfig:"BIN_WIDTH" default:"10m"`
	TruncationThreshold int      `yaml:"truncation_threshold" envconfig:"TRUNCATION_THRESHOLD" default:"2"`
	MaxLag              Duration `yaml:"max_lag" envconfig:"MAX_LAG" default:"12h"`
	MinLagSamples       int      `yaml:"min_lag_samples" envconfig:"MIN_LAG_SAMPLES" default:"10"`
	ExpectedBoxes       int      `yaml:"expected_boxes" envconfig:"EXPECTED_BOXES" default:"2"`
	ExpectedSensors     int      `yaml:"expected_sensors" envconfig:"EXPECTED_SENSORS" default:"16"`
	MetadataLines       int      `yaml:"metadata_lines" envconfig:"METADATA_LINES" default:"14"`
}

// ExpectedCardinality is the full per-bin row count across all boxes.
func (p PipelineConfig) ExpectedCardinality() int {
	return p.ExpectedBoxes * p.ExpectedSensors
}

// Load loads configuration from the optional config file and the
// environment. Environment variables win over file values.
func Load() (*Config, error) {
	var cfg Config

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := envconfig.Process("THERM", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.Pipeline.BinWidth <= 0 {
		return fmt.Errorf("pipeline bin_width must be positive, got %s", c.Pipeline.BinWidth)
	}
	if c.Pipeline.TruncationThreshold < 1 {
		return fmt.Errorf("pipeline truncation_threshold must be at least 1, got %d", c.Pipeline.TruncationThreshold)
	}
	if c.Pipeline.MaxLag < 0 {
		return fmt.Errorf("pipeline max_lag must not be negative, got %s", c.Pipeline.MaxLag)
	}
	if c.Pipeline.MinLagSamples < 2 {
		return fmt.Errorf("pipeline min_lag_samples must be at least 2, got %d", c.Pipeline.MinLagSamples)
	}
	if c.Pipeline.ExpectedBoxes < 1 || c.Pipeline.ExpectedSensors < 1 {
		return fmt.Errorf("pipeline expected_boxes and expected_sensors must be positive")
	}
	if c.Pipeline.MetadataLines < 0 {
		return fmt.Errorf("pipeline metadata_lines must not be negative, got %d", c.Pipeline.MetadataLines)
	}
	switch c.Logging.Output {
	case "", "console", "file", "both":
	default:
		return fmt.Errorf("logging output must be console, file or both, got %q", c.Logging.Output)
	}
	return nil
}

// getConfigFilePath returns the config file location, overridable via
// THERM_CONFIG_FILE.
func getConfigFilePath() string {
	if path := os.Getenv("THERM_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// Default returns the built-in configuration, used when no file and no
// environment overrides are present.
func Default() *Config {
	var cfg Config
	// envconfig fills struct defaults when no variables are set; an
	// unknown prefix keeps the environment out of it.
	_ = envconfig.Process("THERM_DEFAULTS_ONLY", &cfg)
	return &cfg
}
