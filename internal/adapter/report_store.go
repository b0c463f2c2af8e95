package adapter

import (
	"fmt"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/afero"
	m "gitsync.dev/pkg/gitsync/internal/model"
	"gopkg.in/yaml.v3"
)

// ReportStore persists status reports so they can be inspected later.
type ReportStore interface {
	SaveReport(path m.Path, report m.Report) error
	LoadReport(path m.Path) (m.Report, error)
}

// FileReportStore stores reports as json or yaml, chosen by file extension.
type FileReportStore struct {
	fs afero.Fs
}

// NewReportStore constructs a FileReportStore on the operating system filesystem.
func NewReportStore() *FileReportStore {
	return NewFileReportStore(afero.NewOsFs())
}

// NewFileReportStore constructs a FileReportStore backed by fs.
func NewFileReportStore(fs afero.Fs) *FileReportStore {
	return &FileReportStore{fs: fs}
}

// SaveReport encodes report and writes it to path.
func (s *FileReportStore) SaveReport(path m.Path, report m.Report) error {
	var (
		data []byte
		err  error
	)

	if isYAMLPath(path) {
		data, err = yaml.Marshal(report)
	} else {
		data, err = json.MarshalIndent(report, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	return afero.WriteFile(s.fs, string(path), data, 0o600)
}

// LoadReport reads a report previously written by SaveReport.
func (s *FileReportStore) LoadReport(path m.Path) (m.Report, error) {
	data, err := afero.ReadFile(s.fs, string(path))
	if err != nil {
		return m.Report{}, err
	}

	var report m.Report
	if isYAMLPath(path) {
		err = yaml.Unmarshal(data, &report)
	} else {
		err = json.Unmarshal(data, &report)
	}

	if err != nil {
		return m.Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}

func isYAMLPath(path m.Path) bool {
	ext := strings.ToLower(filepath.Ext(string(path)))
	return ext == ".yaml" || ext == ".yml"
}
