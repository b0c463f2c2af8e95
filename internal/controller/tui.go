package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	m "gitsync.dev/pkg/gitsync/internal/model"
)

const (
	tuiMinHeight    = 5
	tuiChromeHeight = 6
)

// TUI browses a report in a full-screen table.
type TUI struct {
	output io.Writer
}

// NewTUI creates a TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Display runs the viewer until the user quits.
func (t *TUI) Display(ctx context.Context, report m.Report) error {
	program := tea.NewProgram(
		newStatusModel(report),
		tea.WithOutput(t.output),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run status viewer: %w", err)
	}

	return nil
}

// statusRow keeps the entry behind each table row for the detail pane.
type statusRow struct {
	repo  string
	entry *m.Entry
	err   string
}

type statusModel struct {
	table    table.Model
	rows     []statusRow
	summary  string
	detail   lipgloss.Style
	quitting bool
}

func newStatusModel(report m.Report) statusModel {
	columns := []table.Column{
		{Title: "Repo", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Source", Width: 40},
		{Title: "Destination", Width: 40},
	}

	var (
		rows      []table.Row
		statusRef []statusRow
	)

	for _, repo := range report.Repos {
		if repo.Failed() {
			rows = append(rows, table.Row{repo.Name, "FATAL", string(repo.Root), ""})
			statusRef = append(statusRef, statusRow{repo: repo.Name, err: repo.Error})

			continue
		}

		for i := range repo.Entries {
			entry := &repo.Entries[i]
			rows = append(rows, table.Row{
				repo.Name,
				entry.Status.Label(),
				string(entry.SourcePath),
				string(entry.DestinationPath),
			})
			statusRef = append(statusRef, statusRow{repo: repo.Name, entry: entry})
		}
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(tuiMinHeight),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true)
	tbl.SetStyles(styles)

	summary := report.Summary()

	return statusModel{
		table: tbl,
		rows:  statusRef,
		summary: fmt.Sprintf("%d in sync · %d modified · %d failed repos",
			summary[m.InSync]+summary[m.MissingBoth],
			summary[m.Modified]+summary[m.MissingLocally]+summary[m.ModifiedRemoved],
			report.FailedRepos()),
		detail: lipgloss.NewStyle().Faint(true),
	}
}

func (sm statusModel) Init() tea.Cmd {
	return nil
}

func (sm statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := msg.Height - tuiChromeHeight
		if height < tuiMinHeight {
			height = tuiMinHeight
		}

		sm.table.SetHeight(height)

		return sm, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			sm.quitting = true
			return sm, tea.Quit
		}
	}

	var cmd tea.Cmd
	sm.table, cmd = sm.table.Update(msg)

	return sm, cmd
}

func (sm statusModel) View() string {
	if sm.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(sm.table.View())
	b.WriteString("\n")
	b.WriteString(sm.detail.Render(sm.selectedDetail()))
	b.WriteString("\n")
	b.WriteString(sm.summary)
	b.WriteString("  (↑/↓ move, q quit)\n")

	return b.String()
}

func (sm statusModel) selectedDetail() string {
	cursor := sm.table.Cursor()
	if cursor < 0 || cursor >= len(sm.rows) {
		return ""
	}

	row := sm.rows[cursor]
	if row.entry == nil {
		return "fatal: " + row.err
	}

	return fmt.Sprintf("%s: %s", row.entry.Status.Label(), row.entry.Status.Reason())
}
