// Package controller renders status reports for the terminal.
package controller

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	m "gitsync.dev/pkg/gitsync/internal/model"
)

// Format selects how a report is rendered.
type Format string

// Available formats.
const (
	FormatText  Format = "text"
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(value string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(value)))
	switch format {
	case "":
		return FormatText, nil
	case FormatText, FormatTable, FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("unknown output format %q (must be text, table, json or yaml)", value)
	}
}

// ContentReader loads a file so modified pairs can be diffed.
type ContentReader func(path m.Path) ([]byte, error)

// DisplayOption is a functional option for DisplayReport.
type DisplayOption func(*DisplayConfig)

// DisplayConfig holds the rendering choices for one report.
type DisplayConfig struct {
	format      Format
	interactive bool
	diff        ContentReader
}

// WithFormat selects the output format.
func WithFormat(format Format) DisplayOption {
	return func(c *DisplayConfig) {
		c.format = format
	}
}

// WithInteractive browses the report in a full-screen table when the output is a terminal.
func WithInteractive() DisplayOption {
	return func(c *DisplayConfig) {
		c.interactive = true
	}
}

// WithDiff prints a unified diff under every modified pair using read.
func WithDiff(read ContentReader) DisplayOption {
	return func(c *DisplayConfig) {
		c.diff = read
	}
}

// UI displays status reports.
type UI interface {
	DisplayReport(ctx context.Context, report m.Report, options ...DisplayOption) error
}

type cobraUI struct {
	cmd *cobra.Command
	tty bool
}

// NewUI creates a UI writing to cmd's output. tty enables the interactive viewer.
func NewUI(cmd *cobra.Command, tty bool) UI {
	return &cobraUI{cmd: cmd, tty: tty}
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (u *cobraUI) DisplayReport(ctx context.Context, report m.Report, options ...DisplayOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg := &DisplayConfig{format: FormatText}
	for _, option := range options {
		option(cfg)
	}

	out := u.cmd.OutOrStdout()

	if cfg.interactive && u.tty {
		return NewTUI(out).Display(ctx, report)
	}

	switch cfg.format {
	case FormatTable:
		return NewTableUI(out).Display(report)
	case FormatJSON, FormatYAML:
		return NewStructuredUI(out, cfg.format).Display(report)
	default:
		return NewSimpleUI(out, cfg.diff).Display(report)
	}
}
