package buildmeta

import (
	"context"
	"strconv"
	"time"

	"github.com/tgx-android/tgxmeta/abi"
	"github.com/tgx-android/tgxmeta/changesets"
	"github.com/tgx-android/tgxmeta/config"
	"github.com/tgx-android/tgxmeta/logging"
	"github.com/tgx-android/tgxmeta/logging/colors"
	"github.com/tgx-android/tgxmeta/properties"
	"github.com/tgx-android/tgxmeta/provenance"
	"github.com/tgx-android/tgxmeta/versioning"
)

// Version describes the application version of the build.
type Version struct {
	// Code is the Android version code.
	Code int `json:"code"`

	// Major is the major version from version.properties.
	Major int `json:"major"`

	// Minor is the number of months elapsed between Creation and BuildTime.
	Minor int `json:"minor"`

	// Creation is the reference time the minor version counts from.
	Creation time.Time `json:"creation"`

	// BuildTime is the time the build is stamped with.
	BuildTime time.Time `json:"buildTime"`
}

// Name returns the "{major}.{minor}" version name.
func (v Version) Name() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
}

// Android describes the Android SDK configuration of the build.
type Android struct {
	CompileSdk int    `json:"compileSdk"`
	TargetSdk  int    `json:"targetSdk"`
	MinSdk     int    `json:"minSdk"`
	BuildTools string `json:"buildTools"`
	NDK        string `json:"ndk"`
}

// Metadata describes everything derived for a single build.
type Metadata struct {
	Settings     *Settings                `json:"settings"`
	Version      Version                  `json:"version"`
	Android      Android                  `json:"android"`
	OpenSSL      versioning.PackedVersion `json:"-"`
	TDLib        versioning.TDLibVersion  `json:"-"`
	Commit       *provenance.CommitInfo   `json:"commit"`
	PullRequests []changesets.PullRequest `json:"pullRequests"`
	Variants     []abi.Variant            `json:"variants"`
}

// SourcesURL returns the configured sources URL, defaulting to the remote repository URL.
func (m *Metadata) SourcesURL() string {
	if m.Settings.SourcesURL != "" {
		return m.Settings.SourcesURL
	}
	return m.Commit.RemoteURL
}

// CommitResolver obtains the provenance of a source tree.
type CommitResolver interface {
	Resolve(ctx context.Context, repoRoot string) (*provenance.CommitInfo, error)
}

// Deriver derives the Metadata of a project checkout.
type Deriver struct {
	// config describes the project configuration. Its paths are resolved against its root.
	config *config.ProjectConfig

	// resolver describes how the provenance of the checkout is obtained.
	resolver CommitResolver

	// buildTime describes the time the build is stamped with.
	buildTime time.Time

	logger *logging.Logger
}

// NewDeriver creates a Deriver for the given project configuration.
func NewDeriver(projectConfig *config.ProjectConfig, resolver CommitResolver, buildTime time.Time) *Deriver {
	return &Deriver{
		config:    projectConfig,
		resolver:  resolver,
		buildTime: buildTime,
		logger:    logging.GlobalLogger.NewSubLogger("module", logging.BUILDMETA_SERVICE),
	}
}

// Derive loads every input once and derives the build metadata. The first failure aborts the derivation.
func (d *Deriver) Derive(ctx context.Context) (*Metadata, error) {
	paths := d.config.Paths
	metadata := &Metadata{}

	// Settings and credentials
	local, err := properties.LoadOptional(d.config.ResolvePath(paths.LocalProperties))
	if err != nil {
		return nil, err
	}
	sample, err := properties.Load(d.config.ResolvePath(paths.SampleProperties))
	if err != nil {
		return nil, err
	}
	if metadata.Settings, err = NewSettings(local, sample); err != nil {
		return nil, err
	}
	d.logger.Debug("Derived settings for ", metadata.Settings.AppID, logging.StructuredLogInfo{
		"signing":      metadata.Settings.SigningEnabled,
		"experimental": metadata.Settings.Experimental,
		"example":      metadata.Settings.ExampleBuild,
	})

	// Version and Android SDK block
	versions, err := properties.Load(d.config.ResolvePath(paths.VersionProperties))
	if err != nil {
		return nil, err
	}
	if metadata.Version, err = d.deriveVersion(metadata.Settings, versions); err != nil {
		return nil, err
	}
	if metadata.Android, err = deriveAndroid(versions); err != nil {
		return nil, err
	}

	// Native library versions
	if metadata.OpenSSL, err = versioning.ReadOpenSSLVersion(d.config.ResolvePath(paths.OpenSSLHeader)); err != nil {
		return nil, err
	}
	metadata.TDLib, err = versioning.ReadTDLibVersion(d.config.ResolvePath(paths.TDLibCMakeLists),
		d.config.ResolvePath(paths.TDLibCommitFile))
	if err != nil {
		return nil, err
	}
	d.logger.Info("OpenSSL ", colors.Bold, metadata.OpenSSL.Full(), colors.Reset, ", TDLib ", colors.Bold,
		metadata.TDLib.String(), colors.Reset)

	// Provenance and change sets
	if metadata.Commit, err = d.resolver.Resolve(ctx, paths.Root); err != nil {
		return nil, err
	}
	if metadata.PullRequests, err = changesets.FromProperties(local); err != nil {
		return nil, err
	}
	if len(metadata.PullRequests) > 0 {
		d.logger.Info("Including ", len(metadata.PullRequests), " pull request(s)")
	}

	metadata.Variants = abi.Variants()

	d.logger.Info("Derived version ", colors.Bold, metadata.Version.Name(), colors.Reset, " (",
		metadata.Version.Code, ")")
	return metadata, nil
}

// deriveVersion computes the version code and name.
func (d *Deriver) deriveVersion(settings *Settings, versions *properties.Properties) (Version, error) {
	var (
		v   Version
		err error
	)
	if settings.VersionOverride > 0 {
		v.Code = settings.VersionOverride
	} else if v.Code, err = versions.GetIntOrThrow("version.app"); err != nil {
		return Version{}, err
	}
	if v.Major, err = versions.GetIntOrThrow("version.major"); err != nil {
		return Version{}, err
	}

	creation, err := versions.GetLongOrThrow("version.creation")
	if err != nil {
		return Version{}, err
	}
	v.Creation = time.UnixMilli(creation).UTC()
	v.BuildTime = d.buildTime.UTC()
	if v.Minor, err = versioning.MinorVersion(v.Creation, v.BuildTime); err != nil {
		return Version{}, err
	}
	return v, nil
}

// deriveAndroid reads the Android SDK configuration.
func deriveAndroid(versions *properties.Properties) (Android, error) {
	var (
		a   = Android{MinSdk: abi.MinSdkVersion}
		err error
	)
	if a.CompileSdk, err = versions.GetIntOrThrow("version.sdk_compile"); err != nil {
		return Android{}, err
	}
	if a.TargetSdk, err = versions.GetIntOrThrow("version.sdk_target"); err != nil {
		return Android{}, err
	}
	if a.BuildTools, err = versions.GetOrThrow("version.build_tools"); err != nil {
		return Android{}, err
	}
	if a.NDK, err = versions.GetOrThrow("version.ndk"); err != nil {
		return Android{}, err
	}
	return a, nil
}
