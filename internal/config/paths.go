package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved file system locations for a run.
// This is the single source of truth for paths once configuration is loaded.
type Paths struct {
	BaseDir     string
	InputDir    string
	OutputDir   string
	HeaderImage string
	LogsDir     string
}

// GetPaths resolves cfg against the current working directory
func GetPaths(cfg PathsConfig) (*Paths, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return ResolvePaths(wd, cfg), nil
}

// ResolvePaths resolves every relative path in cfg against baseDir
func ResolvePaths(baseDir string, cfg PathsConfig) *Paths {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(baseDir, p)
	}

	return &Paths{
		BaseDir:     baseDir,
		InputDir:    resolve(cfg.InputDir),
		OutputDir:   resolve(cfg.OutputDir),
		HeaderImage: resolve(cfg.HeaderImage),
		LogsDir:     resolve(cfg.LogsDir),
	}
}

// EnsureDirectories creates the directories a run writes into.
// The input directory is never created: a missing input directory ends the run.
func (p *Paths) EnsureDirectories() error {
	directories := []string{p.OutputDir}
	if p.LogsDir != "" {
		directories = append(directories, p.LogsDir)
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetOutputPath returns the path for a generated report file
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetManifestPath returns the path of the run manifest
func (p *Paths) GetManifestPath() string {
	return filepath.Join(p.OutputDir, ManifestFileName)
}

// GetLogPath returns the path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// HasHeaderImage reports whether the optional header image is present
func (p *Paths) HasHeaderImage() bool {
	return p.HeaderImage != "" && FileExists(p.HeaderImage)
}

// LogPathResolution logs path resolution information for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Debug("Path resolution summary",
		slog.String("base", p.BaseDir),
		slog.String("input", p.InputDir),
		slog.String("output", p.OutputDir),
		slog.String("logs", p.LogsDir),
		slog.String("header_image", p.HeaderImage),
		slog.Bool("header_image_present", p.HasHeaderImage()))
}

// FileExists checks if a regular file exists at path
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// DirExists checks if a directory exists at path
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
