package cmd

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/iksnae/gitter-session/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	apiURL     string
	logFile    string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gitter-session",
	Short: "Follow and talk in Gitter chat rooms from the terminal",
	Long: `A terminal client for Gitter chat rooms.

A background sync engine polls the active room, reconciles new messages
against what was already shown, and posts what you type. The terminal UI
drains the engine on a fixed tick and raises a notification when a new
message mentions you.

Configuration is read from --config, $HOME/.gitter_gtk/config.yaml or
./config.yaml. GITTER_TOKEN and GITTER_API_URL (also from .env) override
the file.

Quick Start:
  gitter-session watch                      # Open the chat window
  gitter-session rooms                      # List joined rooms
  gitter-session show gitterHQ/gitter       # Print recent messages
  gitter-session send gitterHQ/gitter hi    # Post a message
  gitter-session export --format md         # Export transcripts`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $HOME/.gitter_gtk/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API root (default "+internal.DefaultAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append logs to this file while the chat window is open")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// loadConfig resolves the configuration and applies command-line overrides
func loadConfig() (*internal.Config, error) {
	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

func newClient(cfg *internal.Config) *internal.Client {
	return internal.NewClient(cfg.APIURL, &internal.ClientOptions{
		HTTPClient: &http.Client{Timeout: cfg.RequestTimeout},
	})
}

// redirectLogs sends log output to path, or discards it when path is empty.
// The returned func restores stderr.
func redirectLogs(path string) (func(), error) {
	if path == "" {
		internal.SetLogOutput(io.Discard)
		return func() { internal.SetLogOutput(os.Stderr) }, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	internal.SetLogOutput(f)
	return func() {
		internal.SetLogOutput(os.Stderr)
		_ = f.Close()
	}, nil
}

// connect loads config and fetches the user and room catalog
func connect(cmd *cobra.Command) (*internal.Config, *internal.Client, *internal.Directory, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	client := newClient(cfg)
	dir, err := internal.Bootstrap(cmd.Context(), client, cfg.Token)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to %s: %w", cfg.APIURL, err)
	}
	return cfg, client, dir, nil
}
