package versioning

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// StatusRelease is the status nibble carried by release builds in the MNNFFPPS layout.
const StatusRelease = 0xf

// PackedVersion describes a version number packed into a single 32-bit integer using the MNNFFPPS layout
// (major, minor, fix, patch, status), as found in OpenSSL headers.
type PackedVersion struct {
	// Raw is the textual form the version was decoded from.
	Raw string

	Major  uint32
	Minor  uint32
	Fix    uint32
	Patch  uint32
	Status uint32
}

// DecodePackedVersion decodes a packed version from either a 0x-prefixed hexadecimal literal or a bare decimal
// literal. Returns ErrInvalidVersionFormat if the value cannot be parsed and ErrUnstableRelease if the status nibble
// does not indicate a release.
func DecodePackedVersion(raw string) (PackedVersion, error) {
	value, err := parsePackedInteger(raw)
	if err != nil {
		return PackedVersion{}, err
	}

	v := PackedVersion{
		Raw:    raw,
		Major:  (value >> 28) & 0xf,
		Minor:  (value >> 20) & 0xff,
		Fix:    (value >> 12) & 0xff,
		Patch:  (value >> 4) & 0xff,
		Status: value & 0xf,
	}
	if v.Status != StatusRelease {
		return PackedVersion{}, errors.Wrapf(ErrUnstableRelease, "using non-stable version %s (status = %x)", raw, v.Status)
	}
	return v, nil
}

// parsePackedInteger parses the unsigned 32-bit integer behind a packed version literal.
func parsePackedInteger(raw string) (uint32, error) {
	literal := strings.TrimSpace(raw)
	base := 10
	if strings.HasPrefix(literal, "0x") || strings.HasPrefix(literal, "0X") {
		literal = literal[2:]
		base = 16
	}
	if literal == "" {
		return 0, errors.Wrapf(ErrInvalidVersionFormat, "empty version literal %q", raw)
	}

	value, err := strconv.ParseUint(literal, base, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidVersionFormat, "could not parse %q: %v", raw, err)
	}
	return uint32(value), nil
}

// PatchLetter returns the letter suffix for the patch field, or the empty string if there is no patch.
func (v PackedVersion) PatchLetter() string {
	if v.Patch == 0 {
		return ""
	}
	return string(rune('a' + v.Patch - 1))
}

// Short returns the "major.minor" form of the version.
func (v PackedVersion) Short() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Full returns the "major.minor.fix" form of the version followed by the patch letter, if any.
func (v PackedVersion) Full() string {
	return fmt.Sprintf("%d.%d.%d%s", v.Major, v.Minor, v.Fix, v.PatchLetter())
}

// String returns the full form of the version.
func (v PackedVersion) String() string {
	return v.Full()
}
