// Package cli implements the datagovuk command-line interface.
//
// This package provides commands for browsing the data.gov.uk catalogue:
// listing and searching organizations, fetching organization metadata, and
// listing the datasets and resources an organization publishes. The CLI is
// built using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - orgs: List, search, inspect, and interactively browse organizations
//   - datasets: List an organization's datasets, search the catalogue, and
//     inspect a single dataset and its resources
//   - completion: Generate shell completion scripts
//
// # Configuration
//
// An optional TOML file at ~/.config/datagovuk/config.toml can override
// the API base URL, request timeout, and User-Agent header.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ukopendata/datagovuk/pkg/buildinfo"
	"github.com/ukopendata/datagovuk/pkg/ckan"
)

// appName is the application name used for directories and display.
const appName = "datagovuk"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "datagovuk explores the data.gov.uk open data catalogue",
		Long:         `datagovuk is a client for the data.gov.uk CKAN API: list and search publishing organizations, and inspect the datasets and files they publish.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.orgsCommand())
	root.AddCommand(c.datasetsCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newClient builds a catalogue client from the config file (if present)
// and the CLI logger.
func (c *CLI) newClient() *ckan.Client {
	cfg, err := loadConfig(configPath())
	if err != nil {
		c.Logger.Warn("ignoring unreadable config file", "path", configPath(), "err", err)
		cfg = defaultConfig()
	}
	return ckan.New(ckan.Config{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.timeout(),
		UserAgent: cfg.UserAgent,
		Logger:    c.Logger,
	})
}

// configPath returns the config file location using XDG conventions
// (~/.config/datagovuk/config.toml).
func configPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
