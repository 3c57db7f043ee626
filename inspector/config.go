package inspector

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hazyhaar/domscope/compref"
	"github.com/hazyhaar/domscope/domreg"
)

// Config is the top-level inspector configuration.
type Config struct {
	// BoundaryPrefix is the tag-name prefix of container boundary elements.
	// The prefix is a contract owned by the hosting container, so it is
	// configuration, not a constant of the algorithm.
	BoundaryPrefix string `yaml:"boundary_prefix"`

	// NodeIDAttr / UIIDAttr name the snapshot annotation attributes the
	// registry scanner reads.
	NodeIDAttr string `yaml:"node_id_attr"`
	UIIDAttr   string `yaml:"ui_id_attr"`

	Server  ServerConfig  `yaml:"server"`
	Browser BrowserConfig `yaml:"browser"`
	Fetch   FetchConfig   `yaml:"fetch"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// BrowserConfig controls live capture through Chrome.
type BrowserConfig struct {
	Remote  string `yaml:"remote"`  // ws:// URL of an external Chrome; empty = launch local
	Stealth bool   `yaml:"stealth"` // apply stealth evasions
}

// FetchConfig controls plain HTTP acquisition.
type FetchConfig struct {
	UserAgent string        `yaml:"user_agent"`
	Timeout   time.Duration `yaml:"timeout"`
}

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inspector: read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("inspector: parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.BoundaryPrefix == "" {
		c.BoundaryPrefix = compref.DefaultContainerPrefix
	}
	if c.NodeIDAttr == "" {
		c.NodeIDAttr = domreg.DefaultNodeIDAttr
	}
	if c.UIIDAttr == "" {
		c.UIIDAttr = domreg.DefaultUIIDAttr
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8470"
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = 30 * time.Second
	}
}
