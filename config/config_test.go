package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultProjectConfigIsValid ensures the defaults pass validation.
func TestDefaultProjectConfigIsValid(t *testing.T) {
	assert.NoError(t, GetDefaultProjectConfig().Validate())
}

// TestProjectConfigRoundTrip ensures a configuration survives being written and read back in both JSON and YAML.
func TestProjectConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()

	projectConfig := GetDefaultProjectConfig()
	projectConfig.Provenance.Backend = BackendGoGit
	projectConfig.Provenance.AllowedHosts = []string{"github.com", "codeberg.org"}
	projectConfig.Output.Formats = []OutputFormat{FormatJava, FormatJSON, FormatCBOR}
	projectConfig.Logging.Level = zerolog.DebugLevel

	for _, name := range []string{"tgxmeta.json", "tgxmeta.yaml", "tgxmeta.yml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, projectConfig.WriteToFile(path))

		read, err := ReadProjectConfigFromFile(path)
		require.NoError(t, err, name)
		assert.Equal(t, projectConfig, read, name)
	}
}

// TestReadPartialProjectConfig ensures fields absent from the file keep their defaults.
func TestReadPartialProjectConfig(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "tgxmeta.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"output": {"formats": ["cbor"]}, "logging": {"level": "warn"}}`), 0644))
	projectConfig, err := ReadProjectConfigFromFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []OutputFormat{FormatCBOR}, projectConfig.Output.Formats)
	assert.Equal(t, zerolog.WarnLevel, projectConfig.Logging.Level)
	assert.Equal(t, "BuildConfig", projectConfig.Output.JavaClass)
	assert.Equal(t, BackendExec, projectConfig.Provenance.Backend)

	yamlPath := filepath.Join(dir, "tgxmeta.yaml")
	yamlConfig := "paths:\n  root: ../tgx\nprovenance:\n  timeoutSeconds: 5\n"
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlConfig), 0644))
	projectConfig, err = ReadProjectConfigFromFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "../tgx", projectConfig.Paths.Root)
	assert.Equal(t, "version.properties", projectConfig.Paths.VersionProperties)
	assert.Equal(t, 5, projectConfig.Provenance.TimeoutSeconds)
	assert.Equal(t, filepath.Join("../tgx", "tdlib/version.txt"), projectConfig.ResolvePath(projectConfig.Paths.TDLibCommitFile))

	_, err = ReadProjectConfigFromFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"output": `), 0644))
	_, err = ReadProjectConfigFromFile(jsonPath)
	assert.Error(t, err)
}

// TestValidate ensures invalid configurations are rejected.
func TestValidate(t *testing.T) {
	tests := map[string]func(p *ProjectConfig){
		"missing version properties": func(p *ProjectConfig) { p.Paths.VersionProperties = "" },
		"unknown backend":            func(p *ProjectConfig) { p.Provenance.Backend = "svn" },
		"no allowed hosts":           func(p *ProjectConfig) { p.Provenance.AllowedHosts = nil },
		"no formats":                 func(p *ProjectConfig) { p.Output.Formats = nil },
		"unknown format":             func(p *ProjectConfig) { p.Output.Formats = []OutputFormat{"xml"} },
		"no output directory":        func(p *ProjectConfig) { p.Output.Directory = " " },
		"java without package":       func(p *ProjectConfig) { p.Output.JavaPackage = "" },
	}

	for name, mutate := range tests {
		projectConfig := GetDefaultProjectConfig()
		mutate(projectConfig)
		assert.Error(t, projectConfig.Validate(), name)
	}

	// A missing Java package is fine when no Java source is generated
	projectConfig := GetDefaultProjectConfig()
	projectConfig.Output.JavaPackage = ""
	projectConfig.Output.Formats = []OutputFormat{FormatJSON}
	assert.NoError(t, projectConfig.Validate())
	assert.False(t, projectConfig.Output.HasFormat(FormatJava))
	assert.True(t, projectConfig.Output.HasFormat(FormatJSON))
}
