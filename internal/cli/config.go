package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

// defaultTimeoutSeconds bounds each API request unless overridden.
const defaultTimeoutSeconds = 10

// config holds the optional settings read from config.toml.
//
// Example file:
//
//	base_url = "https://catalog.data.gov/api/3/action"
//	timeout_seconds = 30
//	user_agent = "my-pipeline/1.0"
type config struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	UserAgent      string `toml:"user_agent"`
}

func defaultConfig() config {
	return config{TimeoutSeconds: defaultTimeoutSeconds}
}

// loadConfig reads the TOML config at path. A missing file is not an
// error; it yields the defaults, so the CLI works out of the box.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return defaultConfig(), fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.TimeoutSeconds < 0 {
		return defaultConfig(), fmt.Errorf("parse %s: timeout_seconds must not be negative", path)
	}
	if cfg.TimeoutSeconds == 0 {
		cfg.TimeoutSeconds = defaultTimeoutSeconds
	}
	return cfg, nil
}

func (c config) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// writeExampleConfig writes a commented starter config to path, creating
// parent directories as needed.
func writeExampleConfig(path string) error {
	const example = `# datagovuk configuration
# All keys are optional.

# CKAN action API root. Any CKAN catalogue works.
#base_url = "https://data.gov.uk/api/3/action"

# Per-request timeout in seconds.
#timeout_seconds = 10

# Custom User-Agent header.
#user_agent = "datagovuk/1.0"
`
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(example), 0o644)
}

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the datagovuk configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(configPath())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a commented example configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath()
			if path == "" {
				return fmt.Errorf("cannot resolve config directory")
			}
			if _, err := os.Stat(path); err == nil {
				printWarning("Config already exists: %s", path)
				return nil
			}
			if err := writeExampleConfig(path); err != nil {
				return fmt.Errorf("write config: %w", err)
			}
			printSuccess("Wrote %s", path)
			return nil
		},
	})

	return cmd
}
