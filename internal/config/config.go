// ABOUTME: Configuration loading and parsing for the assistant CLI
// ABOUTME: Supports YAML or TOML files with env var expansion, env overrides, and durations

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Netflix/go-env"
	"gopkg.in/yaml.v3"
)

// Config represents the complete assistant client configuration
type Config struct {
	Backend BackendConfig `yaml:"backend" toml:"backend"`
	Auth    AuthConfig    `yaml:"auth" toml:"auth"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// BackendConfig describes the assistant backend to talk to
type BackendConfig struct {
	BaseURL string            `yaml:"base_url" toml:"base_url"`
	Headers map[string]string `yaml:"headers" toml:"headers"`

	Timeout time.Duration `yaml:"-" toml:"-"`

	// Raw string value for YAML/TOML unmarshaling
	TimeoutRaw string `yaml:"timeout" toml:"timeout"`
}

// AuthConfig holds bearer token signing configuration
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" toml:"jwt_secret"`
	Subject   string `yaml:"subject" toml:"subject"`

	TokenTTL time.Duration `yaml:"-" toml:"-"`

	TokenTTLRaw string `yaml:"token_ttl" toml:"token_ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// envOverrides lists the environment variables that take precedence over the file.
type envOverrides struct {
	BaseURL   string `env:"ASSISTANT_BASE_URL"`
	Timeout   string `env:"ASSISTANT_TIMEOUT"`
	JWTSecret string `env:"ASSISTANT_JWT_SECRET"`
	Subject   string `env:"ASSISTANT_SUBJECT"`
	TokenTTL  string `env:"ASSISTANT_TOKEN_TTL"`
	LogLevel  string `env:"ASSISTANT_LOG_LEVEL"`
	LogFormat string `env:"ASSISTANT_LOG_FORMAT"`
}

const (
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	defaultTokenTTL  = 15 * time.Minute
)

// Default returns a Config with logging defaults and nothing else set.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

// Load reads a configuration file, applies environment overrides and
// validates the result. Files ending in .toml are parsed as TOML, anything
// else as YAML.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation, for callers that apply further overrides.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw content
	expanded := expandEnvVars(string(data))

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv builds a Config from defaults and ASSISTANT_* environment variables only.
func FromEnv() (*Config, error) {
	cfg := Default()
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish applies environment overrides and parses durations.
func (c *Config) finish() error {
	if err := c.applyEnv(); err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}
	if err := parseDurations(c); err != nil {
		return fmt.Errorf("parsing durations: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var o envOverrides
	if _, err := env.UnmarshalFromEnviron(&o); err != nil {
		return err
	}

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&c.Backend.BaseURL, o.BaseURL)
	override(&c.Backend.TimeoutRaw, o.Timeout)
	override(&c.Auth.JWTSecret, o.JWTSecret)
	override(&c.Auth.Subject, o.Subject)
	override(&c.Auth.TokenTTLRaw, o.TokenTTL)
	override(&c.Logging.Level, o.LogLevel)
	override(&c.Logging.Format, o.LogFormat)

	return nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("backend.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url must use http or https scheme")
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout must not be negative")
	}

	if c.Auth.JWTSecret != "" {
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("auth.jwt_secret must be at least 32 bytes")
		}
		if c.Auth.Subject == "" {
			return fmt.Errorf("auth.subject is required when auth.jwt_secret is set")
		}
	}
	if c.Auth.TokenTTL < 0 {
		return fmt.Errorf("auth.token_ttl must not be negative")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Backend.TimeoutRaw != "" {
		cfg.Backend.Timeout, err = time.ParseDuration(cfg.Backend.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing timeout %q: %w", cfg.Backend.TimeoutRaw, err)
		}
	}

	cfg.Auth.TokenTTL = defaultTokenTTL
	if cfg.Auth.TokenTTLRaw != "" {
		cfg.Auth.TokenTTL, err = time.ParseDuration(cfg.Auth.TokenTTLRaw)
		if err != nil {
			return fmt.Errorf("parsing token_ttl %q: %w", cfg.Auth.TokenTTLRaw, err)
		}
	}

	return nil
}
