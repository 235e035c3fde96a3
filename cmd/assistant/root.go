// ABOUTME: Root cobra command, global flags, and shared config/client setup
// ABOUTME: Resolves the config file, applies flag overrides, and builds the assistant client

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/2389/assistant-client/assistant"
	"github.com/2389/assistant-client/internal/auth"
	"github.com/2389/assistant-client/internal/config"
	"github.com/2389/assistant-client/internal/logging"
)

// GlobalOptions holds flags shared by every command.
type GlobalOptions struct {
	// ConfigPath overrides the config file location.
	ConfigPath string

	// BaseURL overrides backend.base_url from the config.
	BaseURL string
}

// NewRootCommand creates the assistant command with all subcommands.
func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   "assistant",
		Short: "Talk to an assistant backend over its chat API",
		Long: `assistant sends chat and cancel requests to an assistant backend.

Configuration is read from --config, $ASSISTANT_CONFIG, or
$XDG_CONFIG_HOME/assistant/config.yaml. ASSISTANT_* environment variables
override file values and --base-url overrides both.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			color.New(color.FgCyan).Fprint(cmd.OutOrStdout(), banner)
			fmt.Fprintln(cmd.OutOrStdout())
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "",
		"config file (YAML or .toml)")
	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", "",
		"backend base URL, overrides the config")

	cmd.AddCommand(
		NewChatCommand(opts),
		NewCancelCommand(opts),
		NewVersionCommand(),
	)

	return cmd
}

// getConfigPath returns the path to the CLI config file.
// Priority: ASSISTANT_CONFIG env var > XDG_CONFIG_HOME/assistant/config.yaml > ~/.config/assistant/config.yaml
func getConfigPath() string {
	if envPath := os.Getenv("ASSISTANT_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "assistant", "config.yaml")
}

// loadConfig reads the config file and applies flag overrides. A missing
// file at the default location is not an error; an explicit --config is.
func loadConfig(opts *GlobalOptions) (*config.Config, error) {
	path := opts.ConfigPath
	explicit := path != ""
	if !explicit {
		path = getConfigPath()
	}

	cfg, err := config.Read(path)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg, err = config.FromEnv()
		if err != nil {
			return nil, err
		}
	}

	if opts.BaseURL != "" {
		cfg.Backend.BaseURL = opts.BaseURL
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// newClient builds an assistant client from a validated config.
func newClient(cfg *config.Config, logger *slog.Logger) (*assistant.Client, error) {
	clientOpts := []assistant.Option{
		assistant.WithTimeout(cfg.Backend.Timeout),
		assistant.WithLogger(logger),
	}

	static := cfg.Backend.Headers
	if cfg.Auth.JWTSecret != "" {
		issuer, err := auth.NewTokenIssuer([]byte(cfg.Auth.JWTSecret), cfg.Auth.Subject, cfg.Auth.TokenTTL,
			auth.WithIssuerLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("creating token issuer: %w", err)
		}
		clientOpts = append(clientOpts, assistant.WithHeaders(authHeaders(static, issuer.Headers)))
	} else if len(static) > 0 {
		clientOpts = append(clientOpts, assistant.WithHeaders(assistant.StaticHeaders(static)))
	}

	return assistant.NewClient(cfg.Backend.BaseURL, clientOpts...), nil
}

// authHeaders merges a fresh token header over the static headers on every call.
func authHeaders(static map[string]string, token func() map[string]string) assistant.HeaderFunc {
	return func() map[string]string {
		tok := token()
		if tok == nil {
			return static
		}
		merged := make(map[string]string, len(static)+len(tok))
		for k, v := range static {
			merged[k] = v
		}
		for k, v := range tok {
			merged[k] = v
		}
		return merged
	}
}

// setup loads config and returns the client for a command.
func setup(cmd *cobra.Command, opts *GlobalOptions) (*assistant.Client, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	return newClient(cfg, logger)
}
