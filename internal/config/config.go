// Package config loads game settings from <library>/config.yaml with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dpshade/fill-in-the-blank/internal/errors"
	"gopkg.in/yaml.v3"
)

const (
	// EnvDir overrides the library directory
	EnvDir = "FILL_IN_THE_BLANK_DIR"
	// EnvWidth overrides the line width
	EnvWidth = "FILL_IN_THE_BLANK_WIDTH"

	DefaultLineWidth = 70
	configFileName   = "config.yaml"
)

// Config holds the settings for a game session
type Config struct {
	StoryDir  string `yaml:"story_dir,omitempty"`
	LineWidth int    `yaml:"line_width"`
	Style     string `yaml:"style,omitempty"` // glamour style: auto, dark, light, notty
	Verbose   bool   `yaml:"verbose,omitempty"`

	rootDir     string
	widthLocked bool
}

// RootDir returns the library directory: $FILL_IN_THE_BLANK_DIR or
// ~/.fill-in-the-blank
func RootDir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".fill-in-the-blank"), nil
}

// Default returns the configuration used when no file exists
func Default(rootDir string) *Config {
	return &Config{
		StoryDir:  filepath.Join(rootDir, "stories"),
		LineWidth: DefaultLineWidth,
		Style:     "auto",
		rootDir:   rootDir,
	}
}

// Load reads <rootDir>/config.yaml over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(rootDir string) (*Config, error) {
	cfg := Default(rootDir)

	data, err := os.ReadFile(cfg.Path())
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.StorageError("read config", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeInvalidArgument, "Invalid config file").
				WithDetails(cfg.Path())
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.StoryDir == "" {
		cfg.StoryDir = filepath.Join(rootDir, "stories")
	} else if !filepath.IsAbs(cfg.StoryDir) {
		cfg.StoryDir = filepath.Join(rootDir, cfg.StoryDir)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvWidth); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return errors.InvalidArgumentError(fmt.Sprintf("%s must be an integer, got %q", EnvWidth, v))
		}
		c.SetLineWidth(width)
	}
	return nil
}

// SetLineWidth fixes the wrap width for every story, overriding any width a
// story asks for in its frontmatter.
func (c *Config) SetLineWidth(width int) {
	c.LineWidth = width
	c.widthLocked = true
}

// WidthLocked reports whether the width came from the environment or a flag
func (c *Config) WidthLocked() bool {
	return c.widthLocked
}

// Validate rejects settings the game cannot run with
func (c *Config) Validate() error {
	if c.LineWidth <= 0 {
		return errors.InvalidArgumentError(fmt.Sprintf("line_width must be positive, got %d", c.LineWidth))
	}
	switch c.Style {
	case "", "auto", "dark", "light", "notty":
	default:
		return errors.InvalidArgumentError(fmt.Sprintf("unknown style %q", c.Style))
	}
	return nil
}

// RootDir returns the library directory this config belongs to
func (c *Config) RootDir() string {
	return c.rootDir
}

// LogDir returns the directory error logs are written to
func (c *Config) LogDir() string {
	return filepath.Join(c.rootDir, "logs")
}

// Path returns the config file location
func (c *Config) Path() string {
	return filepath.Join(c.rootDir, configFileName)
}

// Save writes the config file, creating the library directory if needed
func (c *Config) Save() error {
	if err := os.MkdirAll(c.rootDir, 0755); err != nil {
		return errors.StorageError("create library directory", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.StorageError("encode config", err)
	}

	if err := os.WriteFile(c.Path(), data, 0644); err != nil {
		return errors.StorageError("write config", err)
	}
	return nil
}
