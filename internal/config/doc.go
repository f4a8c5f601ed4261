// Package config provides configuration loading for the report card generator.
//
// # Configuration Sources
//
// Configuration is assembled from the following sources, later ones winning:
//
//  1. Default values (Default)
//  2. A YAML file: $REPORTCARD_CONFIG_FILE, reportcard.yaml or configs/reportcard.yaml
//  3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern REPORTCARD_<SECTION>_<FIELD>:
//
//	REPORTCARD_PATHS_INPUT_DIR=CSV
//	REPORTCARD_PARSER_EXAMS_PER_STUDENT=3
//	REPORTCARD_PARSER_EXAM_NAMES="PT I,TERM I,PT II"
//	REPORTCARD_REPORT_FORMAT=pdf
//	REPORTCARD_LOGGING_LEVEL=debug
//
// # Path Management
//
// Paths resolves the configured directories against the working directory:
//
//	paths, err := config.GetPaths(cfg.Paths)
//	out := paths.GetOutputPath("Grade 5_Report.xlsx")
package config
