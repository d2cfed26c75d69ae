package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tgx-android/tgxmeta/config"
	"github.com/tgx-android/tgxmeta/logging/colors"
)

// initCmd represents the command provider for init
var initCmd = &cobra.Command{
	Use:               "init",
	Short:             "Initializes a project configuration",
	Long:              `Initializes a project configuration`,
	Args:              cmdValidateInitArgs,
	ValidArgsFunction: completeUnusedFlags,
	RunE:              cmdRunInit,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add flags to init command
	err := addInitFlags()
	if err != nil {
		cmdLogger.Panic("Failed to initialize the init command", err)
	}

	// Add the init command and its associated flags to the root command
	rootCmd.AddCommand(initCmd)
}

// cmdValidateInitArgs validates CLI arguments
func cmdValidateInitArgs(cmd *cobra.Command, args []string) error {
	// Make sure we have no positional args
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = errors.Errorf("init does not accept positional arguments")
		cmdLogger.Error("Failed to validate args to the init command", err)
		return err
	}
	return nil
}

// confirmOverwrite asks whether the existing file at path may be replaced. Only "y" and "yes" confirm, in any case.
func confirmOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	fmt.Fprintf(out, "%s already exists. Overwrite? (y/n): ", path)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, err
		}
		return false, io.ErrUnexpectedEOF
	}
	response := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return response == "y" || response == "yes", nil
}

// cmdRunInit executes the init CLI command and writes the default project configuration, updated with any flags
func cmdRunInit(cmd *cobra.Command, args []string) error {
	outputPath, err := initOutputPath(cmd)
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}

	// Update the default project configuration given whatever flags were set using the CLI
	projectConfig := config.GetDefaultProjectConfig()
	if err = updateProjectConfigWithInitFlags(cmd, projectConfig); err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}
	if _, statErr := os.Stat(outputPath); statErr == nil && !force {
		confirmed, err := confirmOverwrite(cmd.InOrStdin(), cmd.OutOrStdout(), outputPath)
		if err != nil {
			cmdLogger.Error("Failed to read the overwrite confirmation", err)
			return err
		}
		if !confirmed {
			cmdLogger.Info("Keeping the existing configuration at: ", colors.Bold, outputPath, colors.Reset)
			return nil
		}
	}

	// Write our project configuration
	if err = projectConfig.WriteToFile(outputPath); err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}
	cmdLogger.Info("Project configuration successfully output to: ", colors.Bold, outputPath, colors.Reset)
	return nil
}

// initOutputPath returns the absolute path the configuration is written to. Without --out, the default configuration
// filename within the working directory is used.
func initOutputPath(cmd *cobra.Command) (string, error) {
	outputPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return "", err
	}
	if !cmd.Flags().Changed("out") || outputPath == "" {
		outputPath = DefaultProjectConfigFilename
	}
	return filepath.Abs(outputPath)
}
