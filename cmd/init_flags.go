package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tgx-android/tgxmeta/config"
)

// addInitFlags adds the various flags for the init command
func addInitFlags() error {
	// Output path for configuration
	initCmd.Flags().String("out", "", "output path for the new project configuration file (a .yaml or .yml extension writes YAML)")

	// Provenance backend
	initCmd.Flags().String("backend", "",
		fmt.Sprintf("how commit information is read, %q or %q", config.BackendExec, config.BackendGoGit))

	// Force overwrite
	initCmd.Flags().Bool("force", false, "overwrite an existing configuration file without prompting")

	return nil
}

// updateProjectConfigWithInitFlags will update the given projectConfig with any CLI arguments that were provided to the init command
func updateProjectConfigWithInitFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	// If --backend was used
	if cmd.Flags().Changed("backend") {
		backend, err := cmd.Flags().GetString("backend")
		if err != nil {
			return err
		}
		projectConfig.Provenance.Backend = backend
	}

	// The written configuration must be usable as is
	return projectConfig.Validate()
}
