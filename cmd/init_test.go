package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgx-android/tgxmeta/config"
	"github.com/tgx-android/tgxmeta/version"
)

func TestConfirmOverwrite(t *testing.T) {
	tests := map[string]bool{
		"y\n":     true,
		"YES\n":   true,
		"  y  \n": true,
		"n\n":     false,
		"\n":      false,
		"maybe\n": false,
	}
	for input, expected := range tests {
		var prompt bytes.Buffer
		confirmed, err := confirmOverwrite(strings.NewReader(input), &prompt, "tgxmeta.json")
		require.NoError(t, err, input)
		assert.Equal(t, expected, confirmed, input)
		assert.Contains(t, prompt.String(), "tgxmeta.json already exists")
	}

	_, err := confirmOverwrite(strings.NewReader(""), io.Discard, "tgxmeta.json")
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestInit(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "tgxmeta.yaml")

	require.NoError(t, runRoot(t, "init", "--out", outputPath, "--backend", "go-git"))
	projectConfig, err := config.ReadProjectConfigFromFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, config.BackendGoGit, projectConfig.Provenance.Backend)
	assert.Equal(t, config.GetDefaultProjectConfig().Output, projectConfig.Output)

	// Declining the prompt keeps the existing file
	rootCmd.SetIn(strings.NewReader("n\n"))
	t.Cleanup(func() { rootCmd.SetIn(nil) })
	require.NoError(t, runRoot(t, "init", "--out", outputPath))
	projectConfig, err = config.ReadProjectConfigFromFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, config.BackendGoGit, projectConfig.Provenance.Backend)

	// --force skips the prompt
	require.NoError(t, runRoot(t, "init", "--out", outputPath, "--force"))
	projectConfig, err = config.ReadProjectConfigFromFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, config.BackendExec, projectConfig.Provenance.Backend)

	assert.Error(t, runRoot(t, "init", "--out", outputPath, "--force", "--backend", "svn"))
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })

	require.NoError(t, runRoot(t, "version", "--json"))
	var decoded struct {
		Version   string `json:"version"`
		GoVersion string `json:"goVersion"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, version.Version, decoded.Version)
	assert.NotEmpty(t, decoded.GoVersion)

	out.Reset()
	require.NoError(t, runRoot(t, "version"))
	assert.Contains(t, out.String(), "tgxmeta version "+version.Version)
}
