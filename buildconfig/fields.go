package buildconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tgx-android/tgxmeta/buildmeta"
	"github.com/tgx-android/tgxmeta/changesets"
)

// FieldType describes the Java type of a generated constant.
type FieldType string

const (
	TypeString      FieldType = "String"
	TypeLong        FieldType = "long"
	TypeInt         FieldType = "int"
	TypeBoolean     FieldType = "boolean"
	TypeLongArray   FieldType = "long[]"
	TypeStringArray FieldType = "String[]"
)

// Field describes a single generated constant. Value holds a *string for TypeString (nil renders as null), an int64
// for TypeLong, an int for TypeInt, a bool for TypeBoolean, an []int64 for TypeLongArray and a []string for
// TypeStringArray.
type Field struct {
	Name  string    `json:"name"`
	Type  FieldType `json:"type"`
	Value any       `json:"value"`
}

func stringField(name string, value string) Field {
	return Field{Name: name, Type: TypeString, Value: &value}
}

func nullableStringField(name string, value *string) Field {
	return Field{Name: name, Type: TypeString, Value: value}
}

// FromMetadata converts derived build metadata into the ordered list of generated constants.
func FromMetadata(m *buildmeta.Metadata) []Field {
	prs := changesets.ToColumns(m.PullRequests, m.Commit.PullRequestURL)

	return []Field{
		stringField("PROJECT_NAME", m.Settings.AppName),
		stringField("MARKET_URL", m.Settings.MarketURL()),
		nullableStringField("SAFETYNET_API_KEY", m.Settings.SafetyNetAPIKey),
		stringField("DOWNLOAD_URL", m.Settings.DownloadURL),

		stringField("OPENSSL_VERSION", m.OpenSSL.Short()),
		stringField("OPENSSL_VERSION_FULL", m.OpenSSL.Full()),
		stringField("TDLIB_VERSION", m.TDLib.String()),

		stringField("REMOTE_URL", m.Commit.RemoteURL),
		stringField("COMMIT_URL", m.Commit.CommitURL()),
		stringField("COMMIT", m.Commit.ShortHash),
		stringField("COMMIT_FULL", m.Commit.LongHash),
		{Name: "COMMIT_DATE", Type: TypeLong, Value: m.Commit.Timestamp},
		stringField("SOURCES_URL", m.SourcesURL()),

		{Name: "PULL_REQUEST_ID", Type: TypeLongArray, Value: prs.IDs},
		{Name: "PULL_REQUEST_COMMIT_DATE", Type: TypeLongArray, Value: prs.Dates},
		{Name: "PULL_REQUEST_COMMIT", Type: TypeStringArray, Value: prs.Commits},
		{Name: "PULL_REQUEST_COMMIT_FULL", Type: TypeStringArray, Value: prs.CommitsFull},
		{Name: "PULL_REQUEST_URL", Type: TypeStringArray, Value: prs.URLs},
		{Name: "PULL_REQUEST_AUTHOR", Type: TypeStringArray, Value: prs.Authors},

		{Name: "VERSION_CODE", Type: TypeInt, Value: m.Version.Code},
		stringField("VERSION_NAME", m.Version.Name()),
		{Name: "EXPERIMENTAL", Type: TypeBoolean, Value: m.Settings.Experimental},
	}
}

// JavaLiteral renders the field value as a Java expression.
func (f Field) JavaLiteral() (string, error) {
	switch f.Type {
	case TypeString:
		switch v := f.Value.(type) {
		case *string:
			if v == nil {
				return "null", nil
			}
			return quoteJava(*v), nil
		case string:
			return quoteJava(v), nil
		}
	case TypeLong:
		if v, ok := f.Value.(int64); ok {
			return strconv.FormatInt(v, 10) + "L", nil
		}
	case TypeInt:
		if v, ok := f.Value.(int); ok {
			return strconv.Itoa(v), nil
		}
	case TypeBoolean:
		if v, ok := f.Value.(bool); ok {
			return strconv.FormatBool(v), nil
		}
	case TypeLongArray:
		if v, ok := f.Value.([]int64); ok {
			items := make([]string, len(v))
			for i, n := range v {
				items[i] = strconv.FormatInt(n, 10) + "L"
			}
			return "{" + strings.Join(items, ", ") + "}", nil
		}
	case TypeStringArray:
		if v, ok := f.Value.([]string); ok {
			items := make([]string, len(v))
			for i, s := range v {
				items[i] = quoteJava(s)
			}
			return "{" + strings.Join(items, ", ") + "}", nil
		}
	}
	return "", errors.Errorf("field %s: value of type %T cannot be rendered as %s", f.Name, f.Value, f.Type)
}

// quoteJava renders s as a Java string literal.
func quoteJava(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			// Unicode escapes are translated before lexing, so control characters use octal escapes
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\%03o`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
