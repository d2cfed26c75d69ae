package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tgx-android/tgxmeta/abi"
	"github.com/tgx-android/tgxmeta/buildconfig"
	"github.com/tgx-android/tgxmeta/buildmeta"
	"github.com/tgx-android/tgxmeta/changesets"
	"github.com/tgx-android/tgxmeta/cmd/exitcodes"
	"github.com/tgx-android/tgxmeta/config"
	"github.com/tgx-android/tgxmeta/logging/colors"
	"github.com/tgx-android/tgxmeta/properties"
	"github.com/tgx-android/tgxmeta/provenance"
	"github.com/tgx-android/tgxmeta/utils"
	"github.com/tgx-android/tgxmeta/versioning"
)

// generateCmd represents the command provider for generate
var generateCmd = &cobra.Command{
	Use:               "generate",
	Short:             "Generates the build constants of a checkout",
	Long:              `Derives versions, provenance and build flags from a checkout and writes the generated build constants`,
	Args:              cmdValidateGenerateArgs,
	ValidArgsFunction: completeUnusedFlags,
	RunE:              cmdRunGenerate,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

// buildConfigErrors lists the failures caused by the checkout contents rather than by the tool itself.
var buildConfigErrors = []error{
	versioning.ErrInvalidVersionFormat,
	versioning.ErrUnstableRelease,
	versioning.ErrVersionNotFound,
	versioning.ErrInvalidBuildClock,
	provenance.ErrNotAGitCheckout,
	provenance.ErrUnsupportedHost,
	changesets.ErrMissingChangeSetMetadata,
	buildmeta.ErrMissingCredentials,
	abi.ErrUnsupportedAbiFilter,
	abi.ErrEmptyAbiFilterSet,
	properties.ErrMissingProperty,
}

func init() {
	// Add flags to generate command
	err := addGenerateFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the generate command", err)
	}

	// Add the generate command and its associated flags to the root command
	rootCmd.AddCommand(generateCmd)
}

// cmdValidateGenerateArgs makes sure that there are no positional arguments provided to the generate command
func cmdValidateGenerateArgs(cmd *cobra.Command, args []string) error {
	// Make sure we have no positional args
	if err := cobra.NoArgs(cmd, args); err != nil {
		cmdLogger.Error("Failed to validate args to the generate command", err)
		return err
	}
	return nil
}

// exitCodeForError maps a generate failure to the exit code the process terminates with.
func exitCodeForError(err error) int {
	for _, target := range buildConfigErrors {
		if errors.Is(err, target) {
			return exitcodes.ExitCodeBuildConfigError
		}
	}
	return exitcodes.ExitCodeHandledError
}

// loadProjectConfig reads the project configuration referenced by --config, or the one in the working directory.
// When neither exists, the default configuration is used. The project root of a loaded file is resolved against the
// directory containing it.
func loadProjectConfig(cmd *cobra.Command, workingDirectory string) (*config.ProjectConfig, error) {
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If --config was not used, look for the default config file in the working directory
	if !configFlagUsed {
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	} else {
		configPath = utils.ResolvePath(workingDirectory, configPath)
	}

	// Check to see if the file exists at configPath
	_, existenceError := os.Stat(configPath)
	if existenceError != nil {
		// An explicitly requested config must exist
		if configFlagUsed {
			return nil, existenceError
		}
		cmdLogger.Warn("No configuration file found, using the default configuration")
		projectConfig := config.GetDefaultProjectConfig()
		projectConfig.Paths.Root = workingDirectory
		return projectConfig, nil
	}

	cmdLogger.Info("Reading the configuration file at: ", colors.Bold, configPath, colors.Reset)
	projectConfig, err := config.ReadProjectConfigFromFile(configPath)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(projectConfig.Paths.Root) {
		projectConfig.Paths.Root = filepath.Join(filepath.Dir(configPath), projectConfig.Paths.Root)
	}
	return projectConfig, nil
}

// cmdRunGenerate runs the generate CLI command
func cmdRunGenerate(cmd *cobra.Command, args []string) error {
	workingDirectory, err := os.Getwd()
	if err != nil {
		cmdLogger.Error("Failed to run the generate command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	projectConfig, err := loadGenerateConfig(cmd, workingDirectory)
	if err != nil {
		cmdLogger.Error("Failed to run the generate command", err)
		return exitcodes.NewErrorWithExitCode(err, exitCodeForError(err))
	}

	// The log file stays open until the outcome below has been logged
	closeLogs, err := setupLogging(projectConfig.Logging, projectConfig.Paths.Root)
	defer closeLogs()
	if err != nil {
		cmdLogger.Error("Failed to run the generate command", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	paths, err := runGenerate(ctx, cmd, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the generate command", err)
		return exitcodes.NewErrorWithExitCode(err, exitCodeForError(err))
	}

	cmdLogger.Info("Generated ", len(paths), " file(s)")
	return nil
}

// loadGenerateConfig loads the project configuration, overlays the generate flags and validates the result.
func loadGenerateConfig(cmd *cobra.Command, workingDirectory string) (*config.ProjectConfig, error) {
	projectConfig, err := loadProjectConfig(cmd, workingDirectory)
	if err != nil {
		return nil, err
	}

	// Update the project configuration given whatever flags were set using the CLI
	err = updateProjectConfigWithGenerateFlags(cmd, projectConfig, workingDirectory)
	if err != nil {
		return nil, err
	}
	if err = projectConfig.Validate(); err != nil {
		return nil, err
	}
	return projectConfig, nil
}

// runGenerate derives the build metadata of the configured checkout and emits it.
// Returns the written paths.
func runGenerate(ctx context.Context, cmd *cobra.Command, projectConfig *config.ProjectConfig) ([]string, error) {
	buildTimeOverride, err := cmd.Flags().GetInt64("build-time")
	if err != nil {
		return nil, err
	}
	buildTime, err := versioning.BuildTime(buildTimeOverride)
	if err != nil {
		return nil, err
	}

	resolver, err := provenance.NewResolver(
		provenance.Backend(projectConfig.Provenance.Backend),
		projectConfig.Provenance.AllowedHosts,
		time.Duration(projectConfig.Provenance.TimeoutSeconds)*time.Second,
	)
	if err != nil {
		return nil, err
	}

	metadata, err := buildmeta.NewDeriver(projectConfig, resolver, buildTime).Derive(ctx)
	if err != nil {
		return nil, err
	}

	emitter := buildconfig.NewEmitter(projectConfig.Output, projectConfig.ResolvePath(projectConfig.Output.Directory))
	cmdLogger.Debug("Emitting build metadata with invocation id ", emitter.InvocationID())
	return emitter.Emit(metadata)
}
