package logging

// These constants are used to identify the various services that may do some logging
const (
	// CLI_SERVICE is the constant used to identify the cmd package
	CLI_SERVICE = "cli"
	// PROVENANCE_SERVICE is the constant used to identify the provenance package
	PROVENANCE_SERVICE = "provenance"
	// BUILDMETA_SERVICE is the constant used to identify the buildmeta package
	BUILDMETA_SERVICE = "buildmeta"
	// BUILDCONFIG_SERVICE is the constant used to identify the buildconfig package
	BUILDCONFIG_SERVICE = "buildconfig"
)
