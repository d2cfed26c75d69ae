package buildmeta

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgx-android/tgxmeta/properties"
)

var sampleProperties = map[string]string{
	"app.id":           "org.thunderdog.challegram",
	"app.name":         "Telegram X",
	"app.download_url": "https://play.google.com/store/apps/details?id=org.thunderdog.challegram",
}

// localWith returns local properties holding valid credentials plus the provided values.
func localWith(values map[string]string) *properties.Properties {
	merged := map[string]string{
		"telegram.api_id":   "12345",
		"telegram.api_hash": "0123456789abcdef",
	}
	for k, v := range values {
		merged[k] = v
	}
	return properties.FromMap(merged)
}

// TestNewSettingsFallsBackToSample ensures the application identity comes from the sample unless overridden.
func TestNewSettingsFallsBackToSample(t *testing.T) {
	sample := properties.FromMap(sampleProperties)

	settings, err := NewSettings(localWith(nil), sample)
	require.NoError(t, err)
	assert.Equal(t, "org.thunderdog.challegram", settings.AppID)
	assert.Equal(t, "Telegram X", settings.AppName)
	assert.Equal(t, 0, settings.VersionOverride)
	assert.Equal(t, "https://play.google.com/store/apps/details?id=org.thunderdog.challegram", settings.MarketURL())

	settings, err = NewSettings(localWith(map[string]string{"app.id": "com.example.tgx", "app.version": "42"}), sample)
	require.NoError(t, err)
	assert.Equal(t, "com.example.tgx", settings.AppID)
	assert.Equal(t, "Telegram X", settings.AppName)
	assert.Equal(t, 42, settings.VersionOverride)

	// Keys absent from both stores are fatal
	_, err = NewSettings(localWith(nil), properties.FromMap(map[string]string{"app.id": "x"}))
	assert.True(t, errors.Is(err, properties.ErrMissingProperty))
}

// TestNewSettingsCredentials ensures both credentials are required and must be set locally.
func TestNewSettingsCredentials(t *testing.T) {
	sample := properties.FromMap(map[string]string{
		"app.id":            "org.thunderdog.challegram",
		"app.name":          "Telegram X",
		"app.download_url":  "https://example.org",
		"telegram.api_id":   "1",
		"telegram.api_hash": "sample",
	})

	tests := []map[string]string{
		{},
		{"telegram.api_id": "12345"},
		{"telegram.api_hash": "abcdef"},
		{"telegram.api_id": "", "telegram.api_hash": "abcdef"},
		{"telegram.api_id": "12345", "telegram.api_hash": "  "},
	}
	for _, values := range tests {
		_, err := NewSettings(properties.FromMap(values), sample)
		assert.True(t, errors.Is(err, ErrMissingCredentials), "%v", values)
	}
}

// TestNewSettingsFlags ensures signing, experimental, example and obfuscation flags are derived consistently.
func TestNewSettingsFlags(t *testing.T) {
	sample := properties.FromMap(sampleProperties)
	tests := []struct {
		name          string
		local         map[string]string
		signing       bool
		safetyNetKey  *string
		example       bool
		experimental  bool
		dontObfuscate bool
	}{
		{
			name:         "unsigned",
			local:        map[string]string{"safetynet.api_key": "key"},
			experimental: true,
		},
		{
			name:         "signed release",
			local:        map[string]string{"keystore.file": "/keys/tgx.properties", "safetynet.api_key": "key"},
			signing:      true,
			safetyNetKey: stringPtr("key"),
		},
		{
			name:         "signed without safetynet key",
			local:        map[string]string{"keystore.file": "/keys/tgx.properties"},
			signing:      true,
			safetyNetKey: stringPtr(""),
		},
		{
			name: "signing disabled",
			local: map[string]string{"keystore.file": "/keys/tgx.properties", "app.disable_signing": "true",
				"safetynet.api_key": "key"},
			experimental: true,
		},
		{
			name:          "explicitly experimental",
			local:         map[string]string{"keystore.file": "/keys/tgx.properties", "app.experimental": "true", "app.dontobfuscate": "true"},
			signing:       true,
			safetyNetKey:  stringPtr(""),
			experimental:  true,
			dontObfuscate: true,
		},
		{
			name:          "example build",
			local:         map[string]string{"app.id": "org.example.tgx", "keystore.file": "/keys/tgx.properties"},
			signing:       true,
			safetyNetKey:  stringPtr(""),
			example:       true,
			experimental:  true,
			dontObfuscate: true,
		},
		{
			name:         "example prefix must be a package",
			local:        map[string]string{"app.id": "com.examples.tgx", "keystore.file": "/keys/tgx.properties"},
			signing:      true,
			safetyNetKey: stringPtr(""),
		},
	}

	for _, test := range tests {
		settings, err := NewSettings(localWith(test.local), sample)
		require.NoError(t, err, test.name)
		assert.Equal(t, test.signing, settings.SigningEnabled, test.name)
		assert.Equal(t, test.safetyNetKey, settings.SafetyNetAPIKey, test.name)
		assert.Equal(t, test.example, settings.ExampleBuild, test.name)
		assert.Equal(t, test.experimental, settings.Experimental, test.name)
		assert.Equal(t, test.dontObfuscate, settings.DontObfuscate, test.name)
	}
}

func stringPtr(s string) *string {
	return &s
}
