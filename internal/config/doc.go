// Package config provides configuration management for imid.
//
// # Configuration Sources
//
// Configuration is assembled in order of increasing precedence:
//
//  1. Default values (Default)
//  2. A YAML file (explicit path, IMID_CONFIG_FILE, imid.yaml or configs/imid.yaml)
//  3. Environment variables, optionally seeded from a .env file
//
// # Environment Variables
//
// All environment variables follow the pattern IMID_<SECTION>_<FIELD>:
//
//	IMID_LOGGING_LEVEL=debug
//	IMID_OUTPUT_DIR=reports
//	IMID_OUTPUT_EXPORT_TABLES=true
//	IMID_INSIGHTS_TOP_LOCATIONS=5
//	IMID_SERVER_ADDR=:9000
//
// Date layouts contain commas and are therefore only configurable from YAML.
//
// # Validation
//
// The assembled configuration is validated with go-playground/validator struct tags
// before it is returned.
package config
