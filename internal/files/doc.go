// Package files provides input discovery, output naming and basic file
// management for report runs.
//
// This package contains three components:
//
// Discovery: finds the score tables in an input directory (CSV files and
// xlsx workbooks) in a stable, name-sorted order.
//
// Naming: derives the class label and the report file name from an input's
// base name.
//
// Manager: writes files and ensures directories relative to a base path.
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.BaseDir)
//	inputs, err := discovery.FindInputs("CSV")
//
//	label := files.ClassLabel("Grade 5 - 5a", "CLASS") // "CLASS 5A"
//	name := files.OutputName("Grade 5 - 5a", "_Report", domain.ReportFormatXLSX)
package files
