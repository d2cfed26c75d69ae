package properties

import (
	"io"
	"os"
	"strconv"
	"strings"

	javaprops "github.com/magiconair/properties"
	"github.com/pkg/errors"
)

// ErrMissingProperty indicates that a required key is absent from a properties file.
var ErrMissingProperty = errors.New("missing property")

// Properties describes a read-only set of key/value pairs loaded from a properties file. Lookups that miss in the
// store fall through to an optional fallback store.
type Properties struct {
	// source describes where the values were loaded from, for error reporting.
	source string

	// values describes the parsed key/value pairs.
	values map[string]string

	// fallback describes the store consulted when a key is absent from values.
	fallback *Properties
}

// Load reads the properties file at the provided path. The file must exist.
func Load(path string) (*Properties, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	props, err := Parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", path)
	}
	props.source = path
	return props, nil
}

// LoadOptional reads the properties file at the provided path. A missing file yields an empty store.
func LoadOptional(path string) (*Properties, error) {
	props, err := Load(path)
	if err != nil && errors.Is(err, os.ErrNotExist) {
		return &Properties{source: path, values: map[string]string{}}, nil
	}
	return props, err
}

// Parse reads properties in the java.util.Properties format: `=`, `:` or whitespace separators, `#` and `!` comments,
// backslash escapes and line continuations. Values are taken literally, `${...}` references are not expanded.
func Parse(r io.Reader) (*Properties, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	loader := javaprops.Loader{Encoding: javaprops.UTF8, DisableExpansion: true}
	parsed, err := loader.LoadBytes(b)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &Properties{source: "<input>", values: parsed.Map()}, nil
}

// FromMap creates a store over a copy of the provided values.
func FromMap(values map[string]string) *Properties {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &Properties{source: "<map>", values: copied}
}

// WithFallback returns a view of the store that resolves absent keys from the provided fallback store.
func (p *Properties) WithFallback(fallback *Properties) *Properties {
	return &Properties{source: p.source, values: p.values, fallback: fallback}
}

// Lookup returns the value for a key and whether it is present. An empty value still counts as present.
func (p *Properties) Lookup(key string) (string, bool) {
	if value, ok := p.values[key]; ok {
		return value, true
	}
	if p.fallback != nil {
		return p.fallback.Lookup(key)
	}
	return "", false
}

// Get returns the value for a key, or def if it is absent.
func (p *Properties) Get(key string, def string) string {
	if value, ok := p.Lookup(key); ok {
		return value
	}
	return def
}

// GetOrThrow returns the value for a key, or ErrMissingProperty if it is absent.
func (p *Properties) GetOrThrow(key string) (string, error) {
	value, ok := p.Lookup(key)
	if !ok {
		return "", p.missing(key)
	}
	return value, nil
}

// GetInt returns the integer value for a key, or def if it is absent.
func (p *Properties) GetInt(key string, def int) (int, error) {
	value, ok := p.Lookup(key)
	if !ok {
		return def, nil
	}
	return p.parseInt(key, value)
}

// GetIntOrThrow returns the integer value for a key, or ErrMissingProperty if it is absent.
func (p *Properties) GetIntOrThrow(key string) (int, error) {
	value, err := p.GetOrThrow(key)
	if err != nil {
		return 0, err
	}
	return p.parseInt(key, value)
}

// GetLongOrThrow returns the 64-bit integer value for a key, or ErrMissingProperty if it is absent.
func (p *Properties) GetLongOrThrow(key string) (int64, error) {
	value, err := p.GetOrThrow(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, errors.Errorf("property %s in %s is not a number: %q", key, p.source, value)
	}
	return n, nil
}

// GetBool reports whether the value for a key is exactly "true". Absent keys yield def.
func (p *Properties) GetBool(key string, def bool) bool {
	value, ok := p.Lookup(key)
	if !ok {
		return def
	}
	return value == "true"
}

func (p *Properties) parseInt(key string, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, errors.Errorf("property %s in %s is not a number: %q", key, p.source, value)
	}
	return n, nil
}

func (p *Properties) missing(key string) error {
	if p.fallback != nil {
		return errors.Wrapf(ErrMissingProperty, "%s is not set in %s or %s", key, p.source, p.fallback.source)
	}
	return errors.Wrapf(ErrMissingProperty, "%s is not set in %s", key, p.source)
}
