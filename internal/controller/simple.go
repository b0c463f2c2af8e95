package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	m "gitsync.dev/pkg/gitsync/internal/model"
)

const labelWidth = len("MODIFIED")

// SimpleUI prints one line per mapping:
//
//	SYNC    : (file hashes match) /src/a.txt > /dst/a.txt
type SimpleUI struct {
	out      io.Writer
	diff     ContentReader
	sync     lipgloss.Style
	modified lipgloss.Style
	fatal    lipgloss.Style
}

// NewSimpleUI creates a SimpleUI. Colours are only emitted when out is a
// colour-capable terminal. diff may be nil.
func NewSimpleUI(out io.Writer, diff ContentReader) *SimpleUI {
	renderer := lipgloss.NewRenderer(out)

	return &SimpleUI{
		out:      out,
		diff:     diff,
		sync:     renderer.NewStyle().Foreground(lipgloss.Color("2")),
		modified: renderer.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		fatal:    renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Display writes the report.
func (s *SimpleUI) Display(report m.Report) error {
	for _, repo := range report.Repos {
		if repo.Failed() {
			if err := s.printf("%s %s\n", s.fatal.Render("fatal:"), repo.Error); err != nil {
				return err
			}

			continue
		}

		for _, entry := range repo.Entries {
			if err := s.displayEntry(entry); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *SimpleUI) displayEntry(entry m.Entry) error {
	label := entry.Status.Label()

	style := s.sync
	if entry.Status.NeedsAttention() {
		style = s.modified
	}

	padding := strings.Repeat(" ", labelWidth-len(label))
	if err := s.printf("%s%s: (%s) %s > %s\n",
		style.Render(label), padding, entry.Status.Reason(), entry.SourcePath, entry.DestinationPath); err != nil {
		return err
	}

	if s.diff == nil || entry.Status != m.Modified {
		return nil
	}

	diff, err := UnifiedDiff(s.diff, entry.SourcePath, entry.DestinationPath)
	if err != nil {
		return err
	}

	return s.printf("%s", diff)
}

func (s *SimpleUI) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(s.out, format, args...)
	return err
}
