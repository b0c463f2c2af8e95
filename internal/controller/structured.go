package controller

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	m "gitsync.dev/pkg/gitsync/internal/model"
	"gopkg.in/yaml.v3"
)

// StructuredUI writes the report as json or yaml for scripts.
type StructuredUI struct {
	out    io.Writer
	format Format
}

// NewStructuredUI creates a StructuredUI for FormatJSON or FormatYAML.
func NewStructuredUI(out io.Writer, format Format) *StructuredUI {
	return &StructuredUI{out: out, format: format}
}

// Display writes the report.
func (s *StructuredUI) Display(report m.Report) error {
	if s.format == FormatYAML {
		encoder := yaml.NewEncoder(s.out)
		encoder.SetIndent(2)

		if err := encoder.Encode(report); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return encoder.Close()
	}

	encoder := json.NewEncoder(s.out)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}
