package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Parser    ParserConfig    `yaml:"parser" envconfig:"PARSER"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Chart     ChartConfig     `yaml:"chart" envconfig:"CHART"`
	Sheets    SheetsConfig    `yaml:"sheets" envconfig:"SHEETS"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system locations. Relative paths are resolved
// against the working directory.
type PathsConfig struct {
	InputDir    string `yaml:"input_dir" envconfig:"INPUT_DIR" validate:"required"`
	OutputDir   string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	HeaderImage string `yaml:"header_image" envconfig:"HEADER_IMAGE"`
	LogsDir     string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
}

// ParserConfig controls how student blocks are read
type ParserConfig struct {
	ExamsPerStudent int      `yaml:"exams_per_student" envconfig:"EXAMS_PER_STUDENT" validate:"min=1,max=12"`
	ExamNames       []string `yaml:"exam_names" envconfig:"EXAM_NAMES"`
	Scale           float64  `yaml:"scale" envconfig:"SCALE" validate:"gt=0"`
	DefaultTotal    float64  `yaml:"default_total" envconfig:"DEFAULT_TOTAL" validate:"gt=0"`
}

// ReportConfig holds the presentation settings of a rendered document
type ReportConfig struct {
	SchoolName     string `yaml:"school_name" envconfig:"SCHOOL_NAME"`
	ReportTitle    string `yaml:"report_title" envconfig:"REPORT_TITLE"`
	ClassPrefix    string `yaml:"class_prefix" envconfig:"CLASS_PREFIX"`
	OutputSuffix   string `yaml:"output_suffix" envconfig:"OUTPUT_SUFFIX" validate:"required"`
	Format         string `yaml:"format" envconfig:"FORMAT" validate:"oneof=xlsx pdf"`
	FontName       string `yaml:"font_name" envconfig:"FONT_NAME"`
	HighlightColor string `yaml:"highlight_color" envconfig:"HIGHLIGHT_COLOR" validate:"hexadecimal,len=6"`
	HeaderColor    string `yaml:"header_color" envconfig:"HEADER_COLOR" validate:"hexadecimal,len=6"`
	IncludeSummary bool   `yaml:"include_summary" envconfig:"INCLUDE_SUMMARY"`
}

// ChartConfig holds the grouped bar chart settings
type ChartConfig struct {
	Palette     []string `yaml:"palette" envconfig:"PALETTE" validate:"min=1,dive,hexcolor"`
	YMax        float64  `yaml:"y_max" envconfig:"Y_MAX" validate:"gt=0"`
	YLabel      string   `yaml:"y_label" envconfig:"Y_LABEL"`
	Width       float64  `yaml:"width" envconfig:"WIDTH" validate:"gt=0"`
	Height      float64  `yaml:"height" envconfig:"HEIGHT" validate:"gt=0"`
	RotateAfter int      `yaml:"rotate_after" envconfig:"ROTATE_AFTER" validate:"min=0"`
}

// SheetsConfig configures the Google Sheets source
type SheetsConfig struct {
	APIKey            string        `yaml:"api_key" envconfig:"API_KEY"`
	CredentialsFile   string        `yaml:"credentials_file" envconfig:"CREDENTIALS_FILE"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND" validate:"gt=0"`
	Burst             int           `yaml:"burst" envconfig:"BURST" validate:"min=1"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	ExportURL         string        `yaml:"export_url" envconfig:"EXPORT_URL"`
}

// TelemetryConfig configures tracing and run metrics
type TelemetryConfig struct {
	TracingEnabled bool   `yaml:"tracing_enabled" envconfig:"TRACING_ENABLED"`
	TraceFile      string `yaml:"trace_file" envconfig:"TRACE_FILE"`
	MetricsFile    string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
}

// Load builds the configuration from defaults, an optional YAML file and
// REPORTCARD_* environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := Default()

	if configFile := getConfigFilePath(); configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
		}
	}

	// Only variables that are set override; no default tags are used so the
	// file values survive.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays YAML configuration onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate normalizes and validates the configuration
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
	c.Report.Format = strings.ToLower(c.Report.Format)
	c.Report.HighlightColor = strings.TrimPrefix(c.Report.HighlightColor, "#")
	c.Report.HeaderColor = strings.TrimPrefix(c.Report.HeaderColor, "#")

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	if err := validator.New().Struct(c); err != nil {
		return err
	}

	if c.Telemetry.TracingEnabled && c.Telemetry.TraceFile == "" {
		return fmt.Errorf("telemetry trace file is required when tracing is enabled")
	}

	return nil
}

// getConfigFilePath returns the config file to read, or "" when none exists
func getConfigFilePath() string {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		return explicit
	}

	locations := []string{
		"reportcard.yaml",
		"configs/reportcard.yaml",
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
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Paths: PathsConfig{
			InputDir:    DefaultInputDir,
			OutputDir:   DefaultOutputDir,
			HeaderImage: DefaultHeaderImage,
			LogsDir:     DefaultLogsDir,
		},
		Parser: ParserConfig{
			ExamsPerStudent: DefaultExamsPerStudent,
			ExamNames:       append([]string(nil), DefaultExamNames...),
			Scale:           DefaultScale,
			DefaultTotal:    DefaultTotal,
		},
		Report: ReportConfig{
			SchoolName:     DefaultSchoolName,
			ReportTitle:    DefaultReportTitle,
			ClassPrefix:    DefaultClassPrefix,
			OutputSuffix:   DefaultOutputSuffix,
			Format:         "xlsx",
			FontName:       "Arial",
			HighlightColor: "CFE2F3",
			HeaderColor:    "EAD1DC",
			IncludeSummary: true,
		},
		Chart: ChartConfig{
			Palette:     append([]string(nil), DefaultPalette...),
			YMax:        DefaultChartYMax,
			YLabel:      "Marks (out of 80)",
			Width:       DefaultChartWidth,
			Height:      DefaultChartHeight,
			RotateAfter: DefaultRotateAfter,
		},
		Sheets: SheetsConfig{
			RequestsPerSecond: DefaultSheetsRPS,
			Burst:             DefaultSheetsBurst,
			Timeout:           DefaultSheetsTimeout,
			ExportURL:         DefaultSheetsExportURL,
		},
		Telemetry: TelemetryConfig{
			TraceFile: DefaultTraceFile,
		},
	}
}
