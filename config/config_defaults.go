package config

import (
	"github.com/rs/zerolog"
)

// DefaultProjectConfigFilename is the configuration file looked up in the working directory.
const DefaultProjectConfigFilename = "tgxmeta.json"

// GetDefaultProjectConfig obtains a default configuration for a Telegram X checkout.
func GetDefaultProjectConfig() *ProjectConfig {
	// Create a project configuration
	projectConfig := &ProjectConfig{
		Paths: PathsConfig{
			Root:              ".",
			LocalProperties:   "local.properties",
			SampleProperties:  "local.properties.sample",
			VersionProperties: "version.properties",
			OpenSSLHeader:     "tdlib/source/openssl/include/openssl/opensslv.h",
			TDLibCMakeLists:   "tdlib/source/td/CMakeLists.txt",
			TDLibCommitFile:   "tdlib/version.txt",
		},
		Provenance: ProvenanceConfig{
			Backend:        BackendExec,
			AllowedHosts:   []string{"github.com"},
			TimeoutSeconds: 30,
		},
		Output: OutputConfig{
			Directory:   "app/build/generated/tgxmeta",
			Formats:     []OutputFormat{FormatJava, FormatJSON},
			JavaPackage: "org.thunderdog.challegram",
			JavaClass:   "BuildConfig",
		},
		Logging: LoggingConfig{
			Level:                zerolog.InfoLevel,
			EnableConsoleLogging: true,
			LogDirectory:         "",
		},
	}

	// Return the project configuration
	return projectConfig
}
