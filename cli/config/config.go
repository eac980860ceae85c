package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultFileName is looked up in the working directory when no --config
// flag is given.
const DefaultFileName = "hashcloud.yaml"

// Config represents a hashcloud.yaml configuration file.
// All values are optional and act as defaults for hashcloud flags.
// CLI flags always override config values.
type Config struct {
	APIURL         string   `yaml:"api_url"`
	Keyfile        string   `yaml:"keyfile"`
	SignatureCache string   `yaml:"signature_cache"`
	DownloadDir    string   `yaml:"download_dir"`
	Timeout        Duration `yaml:"timeout"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// Validate checks that the settings every command needs are present.
// The keyfile is checked separately because read-only commands still
// need it: every operation against the service is signed.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required (config file or --api-url)")
	}
	if c.Keyfile == "" {
		return fmt.Errorf("keyfile is required (config file or --keyfile)")
	}
	return nil
}

// CachePath returns the signature cache location, defaulting to
// ~/.hashcloud/signatures when unset.
func (c *Config) CachePath() string {
	if c.SignatureCache != "" {
		return c.SignatureCache
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hashcloud-signatures"
	}
	return filepath.Join(home, ".hashcloud", "signatures")
}
