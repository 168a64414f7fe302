package config

import "time"

// Application constants
const (
	AppName     = "I.M.I.D"
	AppLongName = "Interactive Media Intelligence Dashboard"

	// EnvPrefix namespaces every environment variable (IMID_LOGGING_LEVEL, ...)
	EnvPrefix = "IMID"

	// ConfigFileEnv points at an explicit YAML configuration file
	ConfigFileEnv = "IMID_CONFIG_FILE"

	// DefaultOutputDir is where the CLI writes charts and the recap
	DefaultOutputDir = "media_analysis_output"

	// LibraryOutputDir is the output directory used when a caller does not choose one
	LibraryOutputDir = "charts_and_recap"

	// RecapFileName is the recap document written next to the charts
	RecapFileName = "media_intelligence_recap.txt"

	// DefaultLogFile keeps structured logs off the interactive console
	DefaultLogFile = "logs/imid.log"

	// DefaultMissingLabel names the bucket for blank sentiment/media type cells
	DefaultMissingLabel = "missing"

	// DefaultTopLocations bounds the locations view
	DefaultTopLocations = 5

	// Server defaults
	DefaultServerAddr      = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultRateLimitRPS    = 20
	DefaultRateLimitBurst  = 40
)

// LimitPlaceholder in an advisory sentence is replaced by the configured top_locations.
const LimitPlaceholder = "{limit}"

// Advisory sentences appended to data-derived insights.
const (
	AdvisoryPlatformFocus     = "Platforms with lower engagement might indicate areas for strategic focus or different audience demographics."
	AdvisoryMediaDiversity    = "The diversity in media types suggests varied content strategies."
	AdvisoryMediaPresence     = "Consider analyzing why certain media types perform better or worse in terms of overall presence."
	AdvisoryLocationsKeyAreas = "The top {limit} locations represent key geographical areas for engagement."
	AdvisoryLocationsFollowUp = "Further analysis of these locations could reveal regional preferences or market opportunities."
)
