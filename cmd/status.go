package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gitsync.dev/pkg/gitsync/internal/controller"
	"gitsync.dev/pkg/gitsync/internal/domain"
	m "gitsync.dev/pkg/gitsync/internal/model"
)

var statusPathFlag string
var statusSourceFlags []string
var statusFormatFlag string
var statusParallelFlag int
var statusDiffFlag bool
var statusInteractiveFlag bool
var statusReportFlag string

const statusLongDescription = `Compare every Sync mapping of the manifest with its source repository.

Each line reports one mapping:

  SYNC    : (file hashes match) SRC > DST
  MODIFIED: (file hashes DO NOT match) SRC > DST

Positional arguments of the form name=path override where a SourceRepo is
looked up, as does --source. The exit code is non-zero when the manifest
cannot be read or a SourceRepo does not exist; modified files alone do not
fail the command.`

// statusCmd represents the status command.
var statusCmd = newStatusCmd()

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "status [name=path...]",
		Short:         "Report the sync status of every mapped file",
		Long:          statusLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := collectOverrides(viper.GetStringMapString(reposConfigKey), statusSourceFlags, args)
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return err
			}

			format, err := controller.ParseFormat(viper.GetString(formatConfigKey))
			if err != nil {
				cmd.PrintErrln("Error:", err)
				return err
			}

			display := []controller.DisplayOption{controller.WithFormat(format)}
			if statusInteractiveFlag {
				display = append(display, controller.WithInteractive())
			}

			if statusDiffFlag {
				display = append(display, controller.WithDiff(fsAdapter.ReadFile))
			}

			manifest := viper.GetString(manifestConfigKey)

			err = workflow.Status(cmd.Context(), domain.StatusArgs{
				Start:     m.Path(statusPathFlag),
				Manifest:  manifest,
				Overrides: overrides,
				Parallel:  viper.GetInt(parallelConfigKey),
				Report:    m.Path(statusReportFlag),
				Display:   display,
			})
			if err != nil {
				reportStatusError(cmd, manifest, err)
			}

			return err
		},
	}

	configureStatusFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func configureStatusFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&statusPathFlag, pathFlagName, "C", ".", "directory inside the repository to check")
	cmd.Flags().StringArrayVarP(&statusSourceFlags, sourceFlagName, "s", nil, "override a SourceRepo location as name=path (can be repeated)")

	cmd.Flags().StringVarP(&statusFormatFlag, formatFlagName, "f", viper.GetString(formatConfigKey), "output format: text, table, json or yaml")
	bindFlagToConfig(cmd.Flags().Lookup(formatFlagName), formatConfigKey)

	cmd.Flags().IntVarP(&statusParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of file pairs hashed concurrently")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)

	cmd.Flags().BoolVar(&statusDiffFlag, diffFlagName, false, "print a unified diff for every modified file")
	cmd.Flags().BoolVarP(&statusInteractiveFlag, interactiveFlagName, "i", false, "browse the result in an interactive table")
	cmd.Flags().StringVar(&statusReportFlag, reportFlagName, "", "also write the report to FILE (.json, .yaml or .yml)")
}

// collectOverrides merges configured repos with --source flags and positional
// arguments. Later sources win.
func collectOverrides(configured map[string]string, flags, args []string) (map[string]string, error) {
	overrides := make(map[string]string, len(configured)+len(flags)+len(args))
	for name, path := range configured {
		overrides[name] = path
	}

	for _, arg := range append(append([]string{}, flags...), args...) {
		name, path, err := domain.ParseOverride(arg)
		if err != nil {
			return nil, err
		}

		overrides[name] = path
	}

	return overrides, nil
}

// reportStatusError prints one line for errors the report did not already show.
func reportStatusError(cmd *cobra.Command, manifest string, err error) {
	if errors.Is(err, domain.ErrSourceRootMissing) {
		return
	}

	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		location := ""
		if parseErr.Line > 0 {
			location = fmt.Sprintf(" line %d", parseErr.Line)
		}

		cmd.PrintErrf("Error in %s file%s: %s\n", manifest, location, parseErr.Message)

		return
	}

	cmd.PrintErrln("Error:", err)
}
