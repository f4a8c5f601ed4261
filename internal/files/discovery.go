package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/anaysharma/csv-xl-to-doc/internal/errors"
)

// InputKind identifies how an input file is read
type InputKind string

const (
	KindCSV      InputKind = "csv"
	KindWorkbook InputKind = "xlsx"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Kind    InputKind
	Size    int64
	ModTime time.Time
}

// BaseName returns the file name without its extension
func (f FileInfo) BaseName() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindInputs finds the CSV files and xlsx workbooks directly inside dir,
// sorted by name. Office lock files ("~$...") are ignored. A missing
// directory yields errors.ErrInputDirMissing.
func (d *Discovery) FindInputs(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrInputDirMissing, fullPath)
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		kind, ok := KindOf(name)
		if !ok || strings.HasPrefix(name, "~$") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Kind:    kind,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// Stat describes a single input file. Files that are neither CSV nor
// xlsx yield errors.ErrUnsupportedInput.
func (d *Discovery) Stat(path string) (FileInfo, error) {
	fullPath := d.resolve(path)

	kind, ok := KindOf(fullPath)
	if !ok {
		return FileInfo{}, fmt.Errorf("%w: %s", errors.ErrUnsupportedInput, filepath.Base(fullPath))
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to stat %s: %w", fullPath, err)
	}
	if info.IsDir() {
		return FileInfo{}, fmt.Errorf("%s is a directory", fullPath)
	}

	return FileInfo{
		Path:    fullPath,
		Name:    info.Name(),
		Kind:    kind,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// KindOf classifies a file name by extension, case-insensitively
func KindOf(name string) (InputKind, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return KindCSV, true
	case ".xlsx":
		return KindWorkbook, true
	default:
		return "", false
	}
}

func (d *Discovery) resolve(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
