package versioning

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodePackedVersion tests decoding of packed versions into their individual fields and string forms.
func TestDecodePackedVersion(t *testing.T) {
	testCases := []struct {
		raw           string
		major         uint32
		minor         uint32
		fix           uint32
		patch         uint32
		expectedShort string
		expectedFull  string
	}{
		{"0x1000100F", 1, 0, 1, 0, "1.0", "1.0.1"},
		{"0x1000101F", 1, 0, 1, 1, "1.0", "1.0.1a"},
		{"0x1010107F", 1, 1, 1, 7, "1.1", "1.1.1g"},
		{"0x1010111F", 1, 1, 1, 17, "1.1", "1.1.1q"},
		{"0x30100020", 0, 0, 0, 0, "", ""},
		{"0x101010bf", 1, 1, 1, 11, "1.1", "1.1.1k"},
		{"0X3000000F", 3, 0, 0, 0, "3.0", "3.0.0"},
		// 0x1000101F in decimal
		{"268439583", 1, 0, 1, 1, "1.0", "1.0.1a"},
	}

	for _, tc := range testCases {
		v, err := DecodePackedVersion(tc.raw)
		if tc.expectedShort == "" {
			assert.True(t, errors.Is(err, ErrUnstableRelease), "expected unstable release for %s", tc.raw)
			continue
		}
		require.NoError(t, err, tc.raw)
		assert.EqualValues(t, tc.major, v.Major, tc.raw)
		assert.EqualValues(t, tc.minor, v.Minor, tc.raw)
		assert.EqualValues(t, tc.fix, v.Fix, tc.raw)
		assert.EqualValues(t, tc.patch, v.Patch, tc.raw)
		assert.EqualValues(t, StatusRelease, v.Status, tc.raw)
		assert.Equal(t, tc.expectedShort, v.Short(), tc.raw)
		assert.Equal(t, tc.expectedFull, v.Full(), tc.raw)
	}
}

// TestDecodePackedVersionShortMatchesReference checks random release values against plain shift arithmetic.
func TestDecodePackedVersionShortMatchesReference(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		value := (r.Uint32() &^ 0xf) | StatusRelease
		v, err := DecodePackedVersion(fmt.Sprintf("0x%08x", value))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("%d.%d", value>>28, (value>>20)&0xff), v.Short())
	}
}

// TestDecodePackedVersionRejectsNonRelease ensures every status nibble other than 0xf is rejected.
func TestDecodePackedVersionRejectsNonRelease(t *testing.T) {
	for status := uint32(0); status < StatusRelease; status++ {
		_, err := DecodePackedVersion(fmt.Sprintf("0x1010107%x", status))
		assert.True(t, errors.Is(err, ErrUnstableRelease), "status %x should be rejected", status)
	}
}

// TestDecodePackedVersionInvalidFormat ensures unparsable literals are reported as ErrInvalidVersionFormat.
func TestDecodePackedVersionInvalidFormat(t *testing.T) {
	for _, raw := range []string{"", "0x", "abc", "0xZZ", "1.0.1", "-1", "0x1FFFFFFFFF"} {
		_, err := DecodePackedVersion(raw)
		assert.True(t, errors.Is(err, ErrInvalidVersionFormat), "expected invalid format for %q, got %v", raw, err)
	}
}
