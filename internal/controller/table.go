package controller

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	m "gitsync.dev/pkg/gitsync/internal/model"
)

// TableUI renders the report as a table with a per-status footer.
type TableUI struct {
	out io.Writer
}

// NewTableUI creates a TableUI.
func NewTableUI(out io.Writer) *TableUI {
	return &TableUI{out: out}
}

// Display writes the report.
func (t *TableUI) Display(report m.Report) error {
	table := tablewriter.NewWriter(t.out)
	table.SetHeader([]string{"Repo", "Status", "Source", "Destination", "Size"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)

	entries := 0

	for _, repo := range report.Repos {
		if repo.Failed() {
			table.Append([]string{repo.Name, "FATAL", string(repo.Root), repo.Error, ""})
			continue
		}

		for _, entry := range repo.Entries {
			table.Append([]string{
				repo.Name,
				entry.Status.Label() + " (" + entry.Status.String() + ")",
				string(entry.SourcePath),
				string(entry.DestinationPath),
				entrySize(entry),
			})

			entries++
		}
	}

	summary := report.Summary()
	table.SetFooter([]string{
		fmt.Sprintf("%d repos", len(report.Repos)),
		fmt.Sprintf("%d files", entries),
		fmt.Sprintf("%d in sync", summary[m.InSync]+summary[m.MissingBoth]),
		fmt.Sprintf("%d modified", summary[m.Modified]+summary[m.MissingLocally]+summary[m.ModifiedRemoved]),
		fmt.Sprintf("%d failed", report.FailedRepos()),
	})

	table.Render()

	return nil
}

func entrySize(entry m.Entry) string {
	if entry.SourceHash == "" {
		return "-"
	}

	return humanize.Bytes(uint64(entry.SourceSize))
}
