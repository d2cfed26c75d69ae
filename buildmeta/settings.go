package buildmeta

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/tgx-android/tgxmeta/properties"
)

// ErrMissingCredentials indicates that the Telegram API credentials are not configured.
var ErrMissingCredentials = errors.New(`telegram API credentials missing.

Set them in your local.properties file:
telegram.api_id=YOUR_API_ID_HERE
telegram.api_hash=YOUR_API_HASH_HERE

Obtain them at https://core.telegram.org/api/obtaining_api_id`)

// exampleAppIDPrefixes lists the application id prefixes reserved for example builds.
var exampleAppIDPrefixes = []string{"com.example.", "org.example."}

// Settings describes the build configuration derived from local.properties, with local.properties.sample supplying
// the application identity when it is not overridden locally.
type Settings struct {
	// AppID is the Android application id.
	AppID string `json:"appId"`

	// AppName is the user-facing project name.
	AppName string `json:"appName"`

	// DownloadURL is where users are pointed to download the application.
	DownloadURL string `json:"downloadUrl"`

	// VersionOverride replaces the version code from version.properties when positive.
	VersionOverride int `json:"versionOverride"`

	// SourcesURL is the configured sources URL. Empty means the remote repository URL is used.
	SourcesURL string `json:"sourcesUrl,omitempty"`

	// KeystoreFile is the path to the signing keystore description. Empty when no keystore is configured.
	KeystoreFile string `json:"-"`

	// SigningEnabled indicates that a keystore is configured and signing was not disabled.
	SigningEnabled bool `json:"signingEnabled"`

	// SafetyNetAPIKey is the SafetyNet key. Nil when signing is disabled.
	SafetyNetAPIKey *string `json:"-"`

	// ExampleBuild indicates that the application id is reserved for examples.
	ExampleBuild bool `json:"exampleBuild"`

	// Experimental indicates an example build, an unsigned build, or an explicitly experimental build.
	Experimental bool `json:"experimental"`

	// DontObfuscate indicates that release builds skip minification and resource shrinking.
	DontObfuscate bool `json:"dontObfuscate"`

	// TelegramAPIID and TelegramAPIHash are the Telegram API credentials.
	TelegramAPIID   string `json:"-"`
	TelegramAPIHash string `json:"-"`
}

// NewSettings derives the build settings. Keys that identify the application are resolved from local first and sample
// second; every other key is read from local only.
// Returns ErrMissingCredentials if the Telegram API credentials are not set in local.
func NewSettings(local *properties.Properties, sample *properties.Properties) (*Settings, error) {
	identity := local.WithFallback(sample)

	var err error
	s := &Settings{}
	if s.AppID, err = identity.GetOrThrow("app.id"); err != nil {
		return nil, err
	}
	if s.AppName, err = identity.GetOrThrow("app.name"); err != nil {
		return nil, err
	}
	if s.DownloadURL, err = identity.GetOrThrow("app.download_url"); err != nil {
		return nil, err
	}
	if s.VersionOverride, err = local.GetInt("app.version", 0); err != nil {
		return nil, err
	}

	s.TelegramAPIID = strings.TrimSpace(local.Get("telegram.api_id", ""))
	s.TelegramAPIHash = strings.TrimSpace(local.Get("telegram.api_hash", ""))
	if s.TelegramAPIID == "" || s.TelegramAPIHash == "" {
		return nil, ErrMissingCredentials
	}

	s.SourcesURL = local.Get("app.sources_url", "")
	s.KeystoreFile = local.Get("keystore.file", "")
	s.SigningEnabled = s.KeystoreFile != "" && !local.GetBool("app.disable_signing", false)
	if s.SigningEnabled {
		key := local.Get("safetynet.api_key", "")
		s.SafetyNetAPIKey = &key
	}

	for _, prefix := range exampleAppIDPrefixes {
		if strings.HasPrefix(s.AppID, prefix) {
			s.ExampleBuild = true
			break
		}
	}
	s.Experimental = s.ExampleBuild || !s.SigningEnabled || local.GetBool("app.experimental", false)
	s.DontObfuscate = s.ExampleBuild || local.GetBool("app.dontobfuscate", false)

	return s, nil
}

// MarketURL returns the store page of the application.
func (s *Settings) MarketURL() string {
	return "https://play.google.com/store/apps/details?id=" + s.AppID
}
