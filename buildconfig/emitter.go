package buildconfig

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tgx-android/tgxmeta/buildmeta"
	"github.com/tgx-android/tgxmeta/config"
	"github.com/tgx-android/tgxmeta/logging"
	"github.com/tgx-android/tgxmeta/logging/colors"
	"github.com/tgx-android/tgxmeta/utils"
)

const (
	// JSONManifestFilename is the name of the JSON manifest within the output directory.
	JSONManifestFilename = "build-metadata.json"

	// CBORManifestFilename is the name of the CBOR manifest within the output directory.
	CBORManifestFilename = "build-metadata.cbor"
)

// Emitter writes the generated build metadata files.
type Emitter struct {
	// output describes which files are generated.
	output config.OutputConfig

	// directory describes where the files are written.
	directory string

	// invocationID describes the unique id stamped into manifests.
	invocationID string

	logger *logging.Logger
}

// NewEmitter creates an Emitter writing into directory. Every Emitter carries a fresh invocation id.
func NewEmitter(output config.OutputConfig, directory string) *Emitter {
	return &Emitter{
		output:       output,
		directory:    directory,
		invocationID: uuid.New().String(),
		logger:       logging.GlobalLogger.NewSubLogger("module", logging.BUILDCONFIG_SERVICE),
	}
}

// InvocationID returns the id stamped into the manifests written by this Emitter.
func (e *Emitter) InvocationID() string {
	return e.invocationID
}

// JavaSourcePath returns where the Java source is written.
func (e *Emitter) JavaSourcePath() string {
	packageDir := filepath.FromSlash(strings.ReplaceAll(e.output.JavaPackage, ".", "/"))
	return filepath.Join(e.directory, "java", packageDir, e.output.JavaClass+".java")
}

// Emit renders every configured output format and writes it to disk. Nothing is written unless every format renders.
// Returns the written paths.
func (e *Emitter) Emit(m *buildmeta.Metadata) ([]string, error) {
	fields := FromMetadata(m)
	manifest := NewManifest(m, fields, e.invocationID)

	type output struct {
		path string
		data []byte
	}
	var outputs []output

	if e.output.HasFormat(config.FormatJava) {
		data, err := RenderJava(e.output.JavaPackage, e.output.JavaClass, fields)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, output{e.JavaSourcePath(), data})
	}
	if e.output.HasFormat(config.FormatJSON) {
		data, err := MarshalJSONManifest(manifest)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, output{filepath.Join(e.directory, JSONManifestFilename), data})
	}
	if e.output.HasFormat(config.FormatCBOR) {
		data, err := MarshalCBORManifest(manifest)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, output{filepath.Join(e.directory, CBORManifestFilename), data})
	}

	paths := make([]string, 0, len(outputs))
	for _, o := range outputs {
		if err := utils.WriteFile(o.path, o.data); err != nil {
			return paths, err
		}
		e.logger.Info("Wrote ", colors.Bold, o.path, colors.Reset)
		paths = append(paths, o.path)
	}
	return paths, nil
}
