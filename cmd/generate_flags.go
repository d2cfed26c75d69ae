package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tgx-android/tgxmeta/config"
	"github.com/tgx-android/tgxmeta/utils"
)

// addGenerateFlags adds the various flags for the generate command
func addGenerateFlags() error {
	// Get the default project config
	defaultConfig := config.GetDefaultProjectConfig()

	// Prevent alphabetical sorting of usage message
	generateCmd.Flags().SortFlags = false

	// Config file
	generateCmd.Flags().String("config", "", "path to config file")

	// Project root
	generateCmd.Flags().String("root", "",
		fmt.Sprintf("project root directory (unless a config file is provided, default is %q)", defaultConfig.Paths.Root))

	// Output directory
	generateCmd.Flags().String("out", "",
		fmt.Sprintf("directory the generated files are written to (unless a config file is provided, default is %q)", defaultConfig.Output.Directory))

	// Output formats
	formats := make([]string, 0, len(config.SupportedOutputFormats))
	for _, format := range config.SupportedOutputFormats {
		formats = append(formats, string(format))
	}
	generateCmd.Flags().StringSlice("format", []string{},
		fmt.Sprintf("output format(s) to generate, any of %s (unless a config file is provided, default is %v)",
			strings.Join(formats, ", "), defaultConfig.Output.Formats))

	// Build time
	generateCmd.Flags().Int64("build-time", 0,
		"unix time the build is stamped with. 0 means SOURCE_DATE_EPOCH or the current time is used")

	// Provenance backend
	generateCmd.Flags().String("backend", "",
		fmt.Sprintf("how commit information is read, %q or %q (unless a config file is provided, default is %q)",
			config.BackendExec, config.BackendGoGit, defaultConfig.Provenance.Backend))

	// Allowed hosts
	generateCmd.Flags().StringSlice("allow-host", []string{},
		fmt.Sprintf("code-hosting domain(s) the remote repository may be hosted on (unless a config file is provided, default is %v)",
			defaultConfig.Provenance.AllowedHosts))
	return nil
}

// updateProjectConfigWithGenerateFlags will update the given projectConfig with any CLI arguments that were provided
// to the generate command. Paths given on the command line are resolved against workingDirectory.
func updateProjectConfigWithGenerateFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig, workingDirectory string) error {
	var err error

	// If --root was used
	if cmd.Flags().Changed("root") {
		root, err := cmd.Flags().GetString("root")
		if err != nil {
			return err
		}
		projectConfig.Paths.Root = utils.ResolvePath(workingDirectory, root)
	}

	// If --out was used
	if cmd.Flags().Changed("out") {
		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}
		projectConfig.Output.Directory = utils.ResolvePath(workingDirectory, out)
	}

	// If --format was used
	if cmd.Flags().Changed("format") {
		formats, err := cmd.Flags().GetStringSlice("format")
		if err != nil {
			return err
		}
		projectConfig.Output.Formats = make([]config.OutputFormat, 0, len(formats))
		for _, format := range formats {
			projectConfig.Output.Formats = append(projectConfig.Output.Formats,
				config.OutputFormat(strings.ToLower(strings.TrimSpace(format))))
		}
	}

	// If --backend was used
	if cmd.Flags().Changed("backend") {
		projectConfig.Provenance.Backend, err = cmd.Flags().GetString("backend")
		if err != nil {
			return err
		}
	}

	// If --allow-host was used
	if cmd.Flags().Changed("allow-host") {
		projectConfig.Provenance.AllowedHosts, err = cmd.Flags().GetStringSlice("allow-host")
		if err != nil {
			return err
		}
	}
	return nil
}
