package config

import "time"

// Application constants
const (
	AppName    = "reportcard"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable (REPORTCARD_*)
	EnvPrefix = "REPORTCARD"

	// ConfigFileEnv names an explicit YAML config file
	ConfigFileEnv = "REPORTCARD_CONFIG_FILE"

	// Default directory and file names, relative to the working directory
	DefaultInputDir    = "CSV"
	DefaultOutputDir   = "output-docs"
	DefaultAssetsDir   = "assets"
	DefaultHeaderImage = "assets/Picture.png"
	DefaultLogsDir     = "logs"
	DefaultLogFile     = "logs/reportcard.log"
	DefaultTraceFile   = "logs/trace.json"

	ManifestFileName = "run_manifest.json"

	// Report text defaults
	DefaultSchoolName   = "PODAR WORLD SCHOOL, BADWAI BHOPAL"
	DefaultReportTitle  = "RESULT ANALYSIS 2025-26"
	DefaultClassPrefix  = "CLASS"
	DefaultOutputSuffix = "_Report"

	// Scoring defaults
	DefaultExamsPerStudent = 3
	DefaultScale           = 80.0
	DefaultTotal           = 80.0

	// Chart defaults
	DefaultChartYMax   = 90.0
	DefaultChartWidth  = 14.0 // inches
	DefaultChartHeight = 7.0  // inches
	DefaultRotateAfter = 8    // subjects before x labels are rotated

	// Sheets API defaults
	DefaultSheetsRPS     = 1.0
	DefaultSheetsBurst   = 1
	DefaultSheetsTimeout = 30 * time.Second

	// DefaultSheetsExportURL downloads a shared spreadsheet as xlsx without
	// credentials; %s is the spreadsheet ID
	DefaultSheetsExportURL = "https://docs.google.com/spreadsheets/d/%s/export?format=xlsx"
)

// DefaultExamNames are the positional fallback exam names for a student block
var DefaultExamNames = []string{"PT I", "TERM I", "PT II"}

// DefaultPalette is the series color cycle for charts
var DefaultPalette = []string{"#4285F4", "#EA4335", "#34A853", "#FBBC05"}
