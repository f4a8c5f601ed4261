package operations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/anaysharma/csv-xl-to-doc/pkg/contracts/domain"
)

// Run statuses
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	// RunStatusPartial means at least one input failed to render
	RunStatusPartial   = "partial"
	RunStatusCancelled = "cancelled"
)

// RunManifest records what a run did with every input table
type RunManifest struct {
	mu sync.RWMutex

	// Identity
	RunID     string              `json:"run_id"`
	Source    string              `json:"source"`
	OutputDir string              `json:"output_dir"`
	Format    domain.ReportFormat `json:"format"`
	StartTime time.Time           `json:"start_time"`
	EndTime   time.Time           `json:"end_time,omitempty"`
	Duration  string              `json:"duration,omitempty"`

	// Per-input outcomes in processing order
	Reports []domain.Report `json:"reports"`

	Completed int    `json:"completed"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
	Status    string `json:"status"`

	// output paths handed out by ClaimOutput, keyed case-insensitively
	claimed map[string]bool
}

// NewRunManifest creates a new run manifest
func NewRunManifest(runID, source, outputDir string, format domain.ReportFormat) *RunManifest {
	return &RunManifest{
		RunID:     runID,
		Source:    source,
		OutputDir: outputDir,
		Format:    format,
		StartTime: time.Now(),
		Reports:   []domain.Report{},
		Status:    RunStatusRunning,
	}
}

// Add records the outcome of one input table
func (m *RunManifest) Add(report domain.Report) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Reports = append(m.Reports, report)
	switch report.Status {
	case domain.ReportStatusCompleted:
		m.Completed++
	case domain.ReportStatusSkipped:
		m.Skipped++
	case domain.ReportStatusFailed:
		m.Failed++
	}
}

// ClaimOutput reserves path for one report of this run. When an earlier
// report already holds the same name, a numbered variant such as
// "X_Report (2).xlsx" is reserved and returned instead. Names are compared
// case-insensitively.
func (m *RunManifest) ClaimOutput(path string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.claimed == nil {
		m.claimed = make(map[string]bool)
	}

	candidate := path
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for n := 2; m.claimed[strings.ToLower(candidate)]; n++ {
		candidate = fmt.Sprintf("%s (%d)%s", stem, n, ext)
	}
	m.claimed[strings.ToLower(candidate)] = true
	return candidate
}

// Finish stamps the end time and derives the run status
func (m *RunManifest) Finish(cancelled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EndTime = time.Now()
	m.Duration = m.EndTime.Sub(m.StartTime).String()

	switch {
	case cancelled:
		m.Status = RunStatusCancelled
	case m.Failed > 0:
		m.Status = RunStatusPartial
	default:
		m.Status = RunStatusCompleted
	}
}

// Outputs returns the paths of the documents written by the run
func (m *RunManifest) Outputs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var paths []string
	for _, r := range m.Reports {
		if r.Status == domain.ReportStatusCompleted {
			paths = append(paths, r.FilePath)
		}
	}
	return paths
}

// Marshal encodes the manifest as indented JSON
func (m *RunManifest) Marshal() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	return data, nil
}

// LoadRunManifest loads a manifest from a JSON file
func LoadRunManifest(path string) (*RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var manifest RunManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &manifest, nil
}
