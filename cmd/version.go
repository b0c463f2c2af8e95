package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// buildVersion returns the module version, or "unknown" for builds without
// module information such as `go run`.
func buildVersion() (string, string) {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" {
		return "unknown", ""
	}

	return info.Main.Version, info.GoVersion
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version and active configuration",
		Long: `Displays the build version, the manifest file gitsync looks for and
where its configuration and log are read from and written to.`,
		Run: func(cmd *cobra.Command, _ []string) {
			version, goVersion := buildVersion()

			cmd.Printf("gitsync %s\n", version)

			if goVersion != "" {
				cmd.Printf("go:       %s\n", goVersion)
			}

			config := viper.ConfigFileUsed()
			if config == "" {
				config = configFileName + " (not found)"
			}

			cmd.Printf("manifest: %s\n", viper.GetString(manifestConfigKey))
			cmd.Printf("config:   %s\n", config)
			cmd.Printf("log:      %s\n", viper.GetString(logFilenameKey))
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
