// Package config handles configuration loading for the assistant CLI.
//
// # Overview
//
// Configuration is loaded from a YAML or TOML file (chosen by the .toml
// extension), with environment variable expansion and overrides.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from the --config flag
//  2. Path from ASSISTANT_CONFIG environment variable
//  3. $XDG_CONFIG_HOME/assistant/config.yaml
//  4. ~/.config/assistant/config.yaml
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	auth:
//	  jwt_secret: "${ASSISTANT_JWT_SECRET}"
//
// # Environment Overrides
//
// After the file is parsed, these variables replace file values when set:
//
//	ASSISTANT_BASE_URL, ASSISTANT_TIMEOUT,
//	ASSISTANT_JWT_SECRET, ASSISTANT_SUBJECT, ASSISTANT_TOKEN_TTL,
//	ASSISTANT_LOG_LEVEL, ASSISTANT_LOG_FORMAT
//
// # Configuration Sections
//
//	backend:
//	  base_url: "http://localhost:8080"
//	  timeout: "30s"
//	  headers:
//	    X-Client: "cli"
//
//	auth:
//	  jwt_secret: "${ASSISTANT_JWT_SECRET}"  # at least 32 bytes
//	  subject: "cli-user"
//	  token_ttl: "15m"
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// The same layout in TOML:
//
//	[backend]
//	base_url = "http://localhost:8080"
//	timeout = "30s"
//
//	[backend.headers]
//	X-Client = "cli"
package config
