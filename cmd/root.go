package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/tgx-android/tgxmeta/logging"
	"github.com/tgx-android/tgxmeta/logging/colors"
	"github.com/tgx-android/tgxmeta/version"
)

// cmdLogger is the logger used by the CLI until a project configuration is loaded, after which it is re-derived from
// logging.GlobalLogger.
var cmdLogger = logging.NewLogger(zerolog.InfoLevel, true).NewSubLogger("module", logging.CLI_SERVICE)

var rootCmd = &cobra.Command{
	Use:     "tgxmeta",
	Short:   "Derives the build metadata of the Telegram X Android application",
	Long:    "tgxmeta derives versions, provenance and build flags from a Telegram X checkout and emits them as generated build constants",
	Version: version.GetInfo().Short(),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor, err := cmd.Flags().GetBool("no-color"); err == nil && noColor {
			colors.DisableColor()
			cmdLogger = logging.NewLogger(zerolog.InfoLevel, true).NewSubLogger("module", logging.CLI_SERVICE)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored console output (also disabled by setting NO_COLOR)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
