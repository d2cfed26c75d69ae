package cmd

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tgx-android/tgxmeta/config"
	"github.com/tgx-android/tgxmeta/logging"
	"github.com/tgx-android/tgxmeta/utils"
)

// setupLogging replaces logging.GlobalLogger according to the logging configuration and re-derives cmdLogger from it.
// When a log directory is configured, structured logs are also written to a new file within it.
// Returns a function closing the log file, which must always be called. Once it has run, cmdLogger no longer writes to
// the file.
func setupLogging(loggingConfig config.LoggingConfig, root string) (func(), error) {
	logging.GlobalLogger = logging.NewLogger(loggingConfig.Level, loggingConfig.EnableConsoleLogging)
	cmdLogger = logging.GlobalLogger.NewSubLogger("module", logging.CLI_SERVICE)

	if loggingConfig.LogDirectory == "" {
		return func() {}, nil
	}

	logDirectory := utils.ResolvePath(root, loggingConfig.LogDirectory)
	if err := utils.MakeDirectory(logDirectory); err != nil {
		return func() {}, err
	}
	filename := "tgxmeta-" + strconv.FormatInt(time.Now().Unix(), 10) + ".log"
	file, err := os.Create(filepath.Join(logDirectory, filename))
	if err != nil {
		return func() {}, err
	}

	logging.GlobalLogger.AddWriter(file, logging.STRUCTURED)
	cmdLogger = logging.GlobalLogger.NewSubLogger("module", logging.CLI_SERVICE)
	return func() {
		logging.GlobalLogger.RemoveWriter(file)
		cmdLogger = logging.GlobalLogger.NewSubLogger("module", logging.CLI_SERVICE)
		file.Close()
	}, nil
}
