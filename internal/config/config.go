package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/forjex/forjex/internal/util"
)

// Config holds all application configuration. It is passed down explicitly
// so the sync and classification core never reads ambient process state.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Vercel   VercelConfig   `yaml:"vercel"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Verbose  bool           `yaml:"-"` // Set via CLI only
}

// GitHubConfig holds repository hosting credentials
type GitHubConfig struct {
	Token string `yaml:"token"`
}

// VercelConfig holds deployment credentials
type VercelConfig struct {
	Token string `yaml:"token"`
}

// DefaultsConfig holds per-user defaults for new projects
type DefaultsConfig struct {
	Private bool   `yaml:"private"`
	Branch  string `yaml:"branch"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Private: false,
			Branch:  "main",
		},
	}
}

// DefaultPath returns the standard config file location
func DefaultPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "forjex", "config.yaml")
}

// Load reads configuration from file and merges with defaults
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil // Use defaults if can't find home
		}
	}
	path = util.ExpandPath(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Use defaults if file doesn't exist
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path, creating parent directories as
// needed. An empty path targets the default location.
func (c *Config) Save(path string) error {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return fmt.Errorf("cannot determine config path")
		}
	}
	path = util.ExpandPath(path)

	if err := util.EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks that credentials exist for the requested actions, filling
// them from the environment when the config file leaves them empty
func (c *Config) Validate(needHosting, needDeploy bool) error {
	if c.GitHub.Token == "" {
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			c.GitHub.Token = token
		}
	}
	if c.Vercel.Token == "" {
		if token := os.Getenv("VERCEL_TOKEN"); token != "" {
			c.Vercel.Token = token
		}
	}

	if needHosting && c.GitHub.Token == "" {
		return fmt.Errorf("github token is required (config file or GITHUB_TOKEN)")
	}
	if needDeploy && c.Vercel.Token == "" {
		return fmt.Errorf("vercel token is required (config file or VERCEL_TOKEN)")
	}

	if c.Defaults.Branch == "" {
		c.Defaults.Branch = "main"
	}

	return nil
}
