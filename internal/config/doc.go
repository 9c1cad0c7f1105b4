// Package config provides centralized configuration management for the LIKE
// report tools. It loads configuration from multiple sources, validates it and
// resolves the directories the commands read from and write to.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A .env file in the working directory
//	3. YAML configuration file (likereport.yaml or LIKE_CONFIG_FILE)
//	4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern LIKE_* for namespacing:
//
//	LIKE_LOGGING_LEVEL=debug
//	LIKE_PATHS_OUTPUT_DIR=/srv/reports
//	LIKE_REPORT_DECIMAL_SEPARATOR=.
//	LIKE_BATCH_MAX_CONCURRENCY=8
//
// # Path Management
//
// GetPaths resolves the default output directory (~/Downloads/LIKE_Output)
// and the log directory next to the executable.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Tests use config.Default() which needs no environment.
package config
