package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Input     InputConfig     `yaml:"input" envconfig:"INPUT"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
	Insights  InsightsConfig  `yaml:"insights" envconfig:"INSIGHTS"`
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// InputConfig controls how the tabular source is read
type InputConfig struct {
	// Delimiter separates fields in delimited text input
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
	// DateLayouts are Go time layouts tried in order before the format is inferred;
	// YAML only since layouts contain commas
	DateLayouts []string `yaml:"date_layouts" ignored:"true" validate:"dive,required"`
	// MissingLabel names the bucket for blank categorical cells
	MissingLabel string `yaml:"missing_label" envconfig:"MISSING_LABEL" validate:"required"`
}

// OutputConfig controls where artifacts are written
type OutputConfig struct {
	Dir          string `yaml:"dir" envconfig:"DIR" validate:"required"`
	ExportTables bool   `yaml:"export_tables" envconfig:"EXPORT_TABLES"`
	// ChartAssetsHost overrides where chart pages load their JavaScript from
	ChartAssetsHost string `yaml:"chart_assets_host" envconfig:"CHART_ASSETS_HOST" validate:"omitempty,url"`
}

// InsightsConfig holds the static advisory text and view limits
type InsightsConfig struct {
	TopLocations      int    `yaml:"top_locations" envconfig:"TOP_LOCATIONS" validate:"min=1"`
	PlatformFocus     string `yaml:"platform_focus" envconfig:"PLATFORM_FOCUS" validate:"required"`
	MediaDiversity    string `yaml:"media_diversity" envconfig:"MEDIA_DIVERSITY" validate:"required"`
	MediaPresence     string `yaml:"media_presence" envconfig:"MEDIA_PRESENCE" validate:"required"`
	LocationsKeyAreas string `yaml:"locations_key_areas" envconfig:"LOCATIONS_KEY_AREAS" validate:"required"`
	LocationsFollowUp string `yaml:"locations_follow_up" envconfig:"LOCATIONS_FOLLOW_UP" validate:"required"`
}

// ServerConfig contains the dashboard HTTP server configuration
type ServerConfig struct {
	Addr            string          `yaml:"addr" envconfig:"ADDR" validate:"required"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gt=0"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gt=0"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" validate:"gt=0"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" validate:"gt=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" validate:"min=1"`
}

// TelemetryConfig toggles tracing and metrics
type TelemetryConfig struct {
	ServiceName   string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	Tracing       bool   `yaml:"tracing" envconfig:"TRACING"`
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=stdout none"`
	Metrics       bool   `yaml:"metrics" envconfig:"METRICS"`
}

// Load builds the configuration from defaults, an optional YAML file and the environment.
// Precedence is env > file > defaults. An empty path falls back to IMID_CONFIG_FILE and
// the usual config locations.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = getConfigFilePath()
	}
	if path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields without a matching env var are left untouched
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML values on top of cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		return explicit
	}

	locations := []string{
		"imid.yaml",
		"configs/imid.yaml",
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
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "file",
			FilePath: DefaultLogFile,
		},
		Input: InputConfig{
			Delimiter:    ",",
			MissingLabel: DefaultMissingLabel,
		},
		Output: OutputConfig{
			Dir: DefaultOutputDir,
		},
		Insights: InsightsConfig{
			TopLocations:      DefaultTopLocations,
			PlatformFocus:     AdvisoryPlatformFocus,
			MediaDiversity:    AdvisoryMediaDiversity,
			MediaPresence:     AdvisoryMediaPresence,
			LocationsKeyAreas: AdvisoryLocationsKeyAreas,
			LocationsFollowUp: AdvisoryLocationsFollowUp,
		},
		Server: ServerConfig{
			Addr:            DefaultServerAddr,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimitRPS,
				Burst:   DefaultRateLimitBurst,
			},
		},
		Telemetry: TelemetryConfig{
			ServiceName:   "imid",
			Tracing:       false,
			TraceExporter: "none",
			Metrics:       true,
		},
	}
}

// LibraryDefault returns the defaults used when the pipeline is embedded rather than run
// from the CLI: artifacts land in LibraryOutputDir.
func LibraryDefault() *Config {
	cfg := Default()
	cfg.Output.Dir = LibraryOutputDir
	return cfg
}
