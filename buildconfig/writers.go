package buildconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/fxamacker/cbor"
	"github.com/pkg/errors"
	"github.com/tgx-android/tgxmeta/abi"
	"github.com/tgx-android/tgxmeta/buildmeta"
	"github.com/tgx-android/tgxmeta/changesets"
)

// ManifestSchemaVersion is bumped whenever the manifest layout changes incompatibly.
const ManifestSchemaVersion = 1

var (
	javaPackageRegex    = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)
	javaIdentifierRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// RenderJava renders the fields as a final class of public constants.
func RenderJava(javaPackage string, javaClass string, fields []Field) ([]byte, error) {
	if !javaPackageRegex.MatchString(javaPackage) {
		return nil, errors.Errorf("invalid java package %q", javaPackage)
	}
	if !javaIdentifierRegex.MatchString(javaClass) {
		return nil, errors.Errorf("invalid java class name %q", javaClass)
	}

	var b bytes.Buffer
	b.WriteString("/**\n * Automatically generated file. DO NOT MODIFY\n */\n")
	fmt.Fprintf(&b, "package %s;\n\n", javaPackage)
	fmt.Fprintf(&b, "public final class %s {\n", javaClass)
	for _, field := range fields {
		if !javaIdentifierRegex.MatchString(field.Name) {
			return nil, errors.Errorf("invalid java field name %q", field.Name)
		}
		literal, err := field.JavaLiteral()
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "  public static final %s %s = %s;\n", field.Type, field.Name, literal)
	}
	fmt.Fprintf(&b, "\n  private %s() {}\n}\n", javaClass)
	return b.Bytes(), nil
}

// Manifest describes the machine-readable form of the generated build metadata.
type Manifest struct {
	SchemaVersion int                      `json:"schemaVersion"`
	InvocationID  string                   `json:"invocationId"`
	BuildTime     time.Time                `json:"buildTime"`
	AppID         string                   `json:"appId"`
	Fields        []Field                  `json:"fields"`
	Version       buildmeta.Version        `json:"version"`
	Android       buildmeta.Android        `json:"android"`
	PullRequests  []changesets.PullRequest `json:"pullRequests"`
	Variants      []abi.Variant            `json:"variants"`
}

// NewManifest creates the manifest for the given metadata and generated fields.
func NewManifest(m *buildmeta.Metadata, fields []Field, invocationID string) *Manifest {
	return &Manifest{
		SchemaVersion: ManifestSchemaVersion,
		InvocationID:  invocationID,
		BuildTime:     m.Version.BuildTime.UTC(),
		AppID:         m.Settings.AppID,
		Fields:        fields,
		Version:       m.Version,
		Android:       m.Android,
		PullRequests:  m.PullRequests,
		Variants:      m.Variants,
	}
}

// MarshalJSONManifest serializes the manifest as indented JSON.
func MarshalJSONManifest(manifest *Manifest) ([]byte, error) {
	b, err := json.MarshalIndent(manifest, "", "\t")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return append(b, '\n'), nil
}

// MarshalCBORManifest serializes the manifest as canonical CBOR, with times encoded as RFC 3339 strings.
func MarshalCBORManifest(manifest *Manifest) ([]byte, error) {
	opts := cbor.CanonicalEncOptions()
	opts.TimeRFC3339 = true
	b, err := cbor.Marshal(manifest, opts)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}
