package cmd

import (
	"github.com/spf13/cobra"
	"gitsync.dev/pkg/gitsync/internal/controller"
	"gitsync.dev/pkg/gitsync/internal/domain"
	m "gitsync.dev/pkg/gitsync/internal/model"
)

var viewFormatFlag string
var viewInteractiveFlag bool

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view REPORT",
		Short: "View a report saved with status --report",
		Long:  "Display a json or yaml report previously written by 'gitsync status --report'.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := controller.ParseFormat(viewFormatFlag)
			if err != nil {
				return err
			}

			display := []controller.DisplayOption{controller.WithFormat(format)}
			if viewInteractiveFlag {
				display = append(display, controller.WithInteractive())
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{
				Report:  m.Path(args[0]),
				Display: display,
			})
		},
	}

	cmd.Flags().StringVarP(&viewFormatFlag, formatFlagName, "f", defaultFormat, "output format: text, table, json or yaml")
	cmd.Flags().BoolVarP(&viewInteractiveFlag, interactiveFlagName, "i", false, "browse the report in an interactive table")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
