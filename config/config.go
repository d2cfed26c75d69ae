package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/tgx-android/tgxmeta/utils"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// OutputFormat describes a kind of generated build metadata file.
type OutputFormat string

const (
	// FormatJava describes a BuildConfig-style Java source file.
	FormatJava OutputFormat = "java"

	// FormatJSON describes a JSON manifest.
	FormatJSON OutputFormat = "json"

	// FormatCBOR describes a canonically encoded CBOR manifest.
	FormatCBOR OutputFormat = "cbor"
)

// SupportedOutputFormats lists every OutputFormat that can be generated.
var SupportedOutputFormats = []OutputFormat{FormatJava, FormatJSON, FormatCBOR}

// Provenance backends accepted by ProvenanceConfig.Backend.
const (
	BackendExec  = "exec"
	BackendGoGit = "go-git"
)

// ProjectConfig describes the configuration of a build metadata derivation.
type ProjectConfig struct {
	// Paths describes where the inputs are located.
	Paths PathsConfig `json:"paths" yaml:"paths"`

	// Provenance describes how the commit the build is made from is determined.
	Provenance ProvenanceConfig `json:"provenance" yaml:"provenance"`

	// Output describes what is generated and where.
	Output OutputConfig `json:"output" yaml:"output"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// PathsConfig describes the location of every input file. Relative paths are resolved against Root.
type PathsConfig struct {
	// Root describes the project root directory. A relative root is resolved against the directory holding the
	// configuration file.
	Root string `json:"root" yaml:"root"`

	// LocalProperties describes the developer-specific properties file. It may be absent.
	LocalProperties string `json:"localProperties" yaml:"localProperties"`

	// SampleProperties describes the checked-in properties file consulted for keys absent from LocalProperties.
	SampleProperties string `json:"sampleProperties" yaml:"sampleProperties"`

	// VersionProperties describes the checked-in file holding the version and Android SDK configuration.
	VersionProperties string `json:"versionProperties" yaml:"versionProperties"`

	// OpenSSLHeader describes the header declaring OPENSSL_VERSION_NUMBER.
	OpenSSLHeader string `json:"opensslHeader" yaml:"opensslHeader"`

	// TDLibCMakeLists describes the TDLib top-level CMakeLists.txt declaring the TDLib version.
	TDLibCMakeLists string `json:"tdlibCMakeLists" yaml:"tdlibCMakeLists"`

	// TDLibCommitFile describes the file whose first line holds the TDLib commit hash.
	TDLibCommitFile string `json:"tdlibCommitFile" yaml:"tdlibCommitFile"`
}

// ProvenanceConfig describes how commit information is obtained.
type ProvenanceConfig struct {
	// Backend describes how the repository is queried, either "exec" or "go-git".
	Backend string `json:"backend" yaml:"backend"`

	// AllowedHosts describes the code-hosting domains the remote repository may be hosted on.
	AllowedHosts []string `json:"allowedHosts" yaml:"allowedHosts"`

	// TimeoutSeconds describes how long the repository query may run. Zero or negative values disable the timeout.
	TimeoutSeconds int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
}

// OutputConfig describes the generated files.
type OutputConfig struct {
	// Directory describes where generated files are written. Relative paths are resolved against the project root.
	Directory string `json:"directory" yaml:"directory"`

	// Formats describes which files are generated.
	Formats []OutputFormat `json:"formats" yaml:"formats"`

	// JavaPackage describes the package of the generated Java class.
	JavaPackage string `json:"javaPackage" yaml:"javaPackage"`

	// JavaClass describes the name of the generated Java class.
	JavaClass string `json:"javaClass" yaml:"javaClass"`
}

// LoggingConfig describes the configuration options used for logging
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or discarded.
	// Increasing level values represent more severe logs
	Level zerolog.Level `json:"level" yaml:"level"`

	// EnableConsoleLogging describes whether console logging is enabled
	EnableConsoleLogging bool `json:"enableConsoleLogging" yaml:"enableConsoleLogging"`

	// LogDirectory describes the directory where structured log _files_ will be outputted. If the string is empty, then
	// no log files are kept
	LogDirectory string `json:"logDirectory" yaml:"logDirectory"`
}

// isYAMLPath reports whether the configuration at path is YAML-serialized, judging by its extension.
func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ReadProjectConfigFromFile reads a JSON or YAML-serialized ProjectConfig from a provided file path. Fields absent
// from the file keep their default values.
// Returns the ProjectConfig if it succeeds, or an error if one occurs.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	// Read our project configuration file data
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Parse the project configuration over the defaults
	projectConfig := GetDefaultProjectConfig()
	if isYAMLPath(path) {
		err = yaml.Unmarshal(b, projectConfig)
	} else {
		err = json.Unmarshal(b, projectConfig)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", path)
	}

	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path, in YAML if the path has a YAML extension and JSON
// otherwise.
// Returns an error if one occurs.
func (p *ProjectConfig) WriteToFile(path string) error {
	// Serialize the configuration
	var (
		b   []byte
		err error
	)
	if isYAMLPath(path) {
		b, err = yaml.Marshal(p)
	} else {
		b, err = json.MarshalIndent(p, "", "\t")
	}
	if err != nil {
		return errors.WithStack(err)
	}

	// Save it to the provided output path and return the result
	return utils.WriteFile(path, b)
}

// Validate validates that the ProjectConfig meets certain requirements.
// Returns an error if one occurs.
func (p *ProjectConfig) Validate() error {
	// Verify every required input path is set
	required := map[string]string{
		"sampleProperties":  p.Paths.SampleProperties,
		"versionProperties": p.Paths.VersionProperties,
		"opensslHeader":     p.Paths.OpenSSLHeader,
		"tdlibCMakeLists":   p.Paths.TDLibCMakeLists,
		"tdlibCommitFile":   p.Paths.TDLibCommitFile,
	}
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			return errors.Errorf("paths.%s must be set", name)
		}
	}

	// Verify the provenance backend is known
	if p.Provenance.Backend != BackendExec && p.Provenance.Backend != BackendGoGit {
		return errors.Errorf("unsupported provenance backend %q (options: %s, %s)", p.Provenance.Backend,
			BackendExec, BackendGoGit)
	}
	if len(p.Provenance.AllowedHosts) == 0 {
		return errors.Errorf("at least one allowed host must be specified")
	}

	// Verify the output formats
	if len(p.Output.Formats) == 0 {
		return errors.Errorf("at least one output format must be specified")
	}
	for _, format := range p.Output.Formats {
		if !slices.Contains(SupportedOutputFormats, format) {
			return errors.Errorf("unsupported output format %q", format)
		}
	}
	if strings.TrimSpace(p.Output.Directory) == "" {
		return errors.Errorf("output directory must be set")
	}
	if slices.Contains(p.Output.Formats, FormatJava) {
		if p.Output.JavaPackage == "" || p.Output.JavaClass == "" {
			return errors.Errorf("java output requires a package and a class name")
		}
	}
	return nil
}

// HasFormat reports whether the given output format is enabled.
func (o *OutputConfig) HasFormat(format OutputFormat) bool {
	return slices.Contains(o.Formats, format)
}

// ResolvePath resolves a configured path against the project root.
func (p *ProjectConfig) ResolvePath(path string) string {
	return utils.ResolvePath(p.Paths.Root, path)
}
