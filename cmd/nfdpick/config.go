package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenPeeDeeP/xdg"
	"gopkg.in/yaml.v3"
)

const configFileName = "config.yml"

// Config holds the defaults nfdpick uses when a flag is not given. Keys in
// config.yml are camelCase.
type Config struct {
	// Backend names the dialog implementation, e.g. "zenity" or "prompt".
	// Empty selects the library default.
	Backend string `yaml:"backend,omitempty"`

	// Filter is a filter list such as "png,jpg;pdf".
	Filter string `yaml:"filter,omitempty"`

	// DefaultPath is the directory the dialog starts in.
	DefaultPath string `yaml:"defaultPath,omitempty"`

	CopyToClipboard bool `yaml:"copyToClipboard,omitempty"`

	// NullSeparated ends every printed path with a NUL instead of a newline.
	NullSeparated bool `yaml:"nullSeparated,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{}
}

// configDir returns $NFDPICK_CONFIG_DIR, or the XDG config directory.
func configDir() string {
	if dir := os.Getenv("NFDPICK_CONFIG_DIR"); dir != "" {
		return dir
	}
	return xdg.New("leonwijng", "nfdpick").ConfigHome()
}

// LoadConfig reads config.yml from dir on top of the defaults. A missing
// file is not an error.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()

	content, err := os.ReadFile(filepath.Join(dir, configFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", configFileName, err)
	}
	return cfg, nil
}

// Encode renders cfg as YAML.
func (c Config) Encode() (string, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// flagOverrides are the flags that switch a config.yml setting back off.
type flagOverrides struct {
	NoCopy bool
	NoNull bool
}

func (o flagOverrides) apply(cfg *Config) {
	if o.NoCopy {
		cfg.CopyToClipboard = false
	}
	if o.NoNull {
		cfg.NullSeparated = false
	}
}
