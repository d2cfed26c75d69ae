package versioning

import (
	"bufio"
	"os"
	"regexp"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
)

var (
	// openSSLVersionRegex matches the packed version declaration inside opensslv.h.
	openSSLVersionRegex = regexp.MustCompile(`^#\s*define\s+OPENSSL_VERSION_NUMBER\s*((?:0[xX][0-9a-fA-F]+)|[0-9]+)L?$`)

	// tdlibVersionRegex matches the project declaration inside TDLib's top-level CMakeLists.txt.
	tdlibVersionRegex = regexp.MustCompile(`^project\(TDLib VERSION (\d+\.\d+\.\d+) LANGUAGES CXX C\)$`)
)

// TDLibCommitLength is the length of the abbreviated TDLib commit appended to its version.
const TDLibCommitLength = 7

// TDLibVersion describes the detected TDLib version together with the commit it was built from.
type TDLibVersion struct {
	// Version is the semantic version declared by the TDLib project.
	Version *semver.Version

	// Commit is the abbreviated commit hash of the TDLib checkout.
	Commit string
}

// String returns the "{version}-{commit}" form of the TDLib version, with the version as written in CMakeLists.txt.
func (t TDLibVersion) String() string {
	return t.Version.Original() + "-" + t.Commit
}

// scanFirstMatch scans the file at path line by line and returns the first capture group of the first matching line.
func scanFirstMatch(path string, exp *regexp.Regexp) (string, bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", false, errors.WithStack(err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		match := exp.FindStringSubmatch(strings.TrimRight(scanner.Text(), "\r"))
		if match != nil {
			return match[1], true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, errors.WithStack(err)
	}
	return "", false, nil
}

// ReadOpenSSLVersion locates the OPENSSL_VERSION_NUMBER declaration in the provided header and decodes it.
// The first matching declaration wins.
func ReadOpenSSLVersion(headerPath string) (PackedVersion, error) {
	raw, found, err := scanFirstMatch(headerPath, openSSLVersionRegex)
	if err != nil {
		return PackedVersion{}, err
	}
	if !found {
		return PackedVersion{}, errors.Wrapf(ErrVersionNotFound, "OpenSSL not found in %s", headerPath)
	}
	return DecodePackedVersion(raw)
}

// ReadTDLibVersion locates the TDLib project declaration in the provided CMakeLists.txt and pairs it with the
// abbreviated commit read from the first line of the provided version file.
func ReadTDLibVersion(cmakePath string, commitPath string) (TDLibVersion, error) {
	commit, err := readTDLibCommit(commitPath)
	if err != nil {
		return TDLibVersion{}, err
	}

	raw, found, err := scanFirstMatch(cmakePath, tdlibVersionRegex)
	if err != nil {
		return TDLibVersion{}, err
	}
	if !found {
		return TDLibVersion{}, errors.Wrapf(ErrVersionNotFound, "TDLib not found in %s", cmakePath)
	}

	version, err := semver.NewVersion(raw)
	if err != nil {
		return TDLibVersion{}, errors.Wrapf(ErrInvalidVersionFormat, "TDLib version %q: %v", raw, err)
	}

	return TDLibVersion{Version: version, Commit: commit}, nil
}

// readTDLibCommit reads the first line of the TDLib version file and truncates it to TDLibCommitLength.
func readTDLibCommit(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", errors.WithStack(err)
	}

	line, _, _ := strings.Cut(string(b), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return "", errors.Wrapf(ErrVersionNotFound, "TDLib commit missing from %s", path)
	}
	if len(line) > TDLibCommitLength {
		line = line[:TDLibCommitLength]
	}
	return line, nil
}
