package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "preamble.dev/pkg/preamble/internal/model"
)

// ReportStore persists the outcome of a run.
type ReportStore interface {
	SaveReports(path m.Path, reports []m.Report, summary m.Summary) error
	LoadReports(path m.Path) (RunDocument, error)
}

// RunDocument is the on-disk shape of a saved run.
type RunDocument struct {
	Summary m.Summary   `yaml:"summary"`
	Files   []FileEntry `yaml:"files"`
}

// FileEntry is one processed file in a RunDocument.
type FileEntry struct {
	Path    string    `yaml:"path"`
	Outcome m.Outcome `yaml:"outcome"`
	Anchor  string    `yaml:"anchor,omitempty"`
	DryRun  bool      `yaml:"dry_run,omitempty"`
	Error   string    `yaml:"error,omitempty"`
}

type yamlReportStore struct{}

// NewReportStore returns a ReportStore writing YAML documents.
func NewReportStore() ReportStore {
	return &yamlReportStore{}
}

func (s *yamlReportStore) SaveReports(path m.Path, reports []m.Report, summary m.Summary) error {
	doc := RunDocument{
		Summary: summary,
		Files:   make([]FileEntry, 0, len(reports)),
	}

	for _, report := range reports {
		entry := FileEntry{
			Path:    string(report.File.FullPath),
			Outcome: report.Outcome,
			Anchor:  string(report.Anchor),
			DryRun:  report.DryRun,
		}
		if report.Err != nil {
			entry.Error = report.Err.Error()
		}

		doc.Files = append(doc.Files, entry)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

func (s *yamlReportStore) LoadReports(path m.Path) (RunDocument, error) {
	var doc RunDocument

	// #nosec G304 - report path is operator configuration
	data, err := os.ReadFile(string(path))
	if err != nil {
		return doc, fmt.Errorf("read report: %w", err)
	}

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("unmarshal report: %w", err)
	}

	return doc, nil
}
