package cmd

import "github.com/tgx-android/tgxmeta/config"

// DefaultProjectConfigFilename describes the default config filename for a given project folder.
const DefaultProjectConfigFilename = config.DefaultProjectConfigFilename
