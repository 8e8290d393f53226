package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const appName = "mdreveal"

type Config struct {
	Reveal RevealConfig `mapstructure:"reveal" yaml:"reveal"`
	Render RenderConfig `mapstructure:"render" yaml:"render"`
	Replay ReplayConfig `mapstructure:"replay" yaml:"replay"`
	Theme  ThemeConfig  `mapstructure:"theme" yaml:"theme"`
}

// RevealConfig paces the reveal scheduler
type RevealConfig struct {
	MinInterval   time.Duration `mapstructure:"min_interval" yaml:"min_interval"`     // minimum time between reveals
	FrameInterval time.Duration `mapstructure:"frame_interval" yaml:"frame_interval"` // tick cadence
}

// RenderConfig configures glamour output
type RenderConfig struct {
	Style    string `mapstructure:"style" yaml:"style"`         // "theme" or a glamour style (dark, light, notty, ...)
	Theme    string `mapstructure:"theme" yaml:"theme"`         // preset palette for the "theme" style
	WordWrap int    `mapstructure:"word_wrap" yaml:"word_wrap"` // 0 = terminal width
}

// ReplayConfig shapes the simulated token stream of the replay command
type ReplayConfig struct {
	MinChunk int           `mapstructure:"min_chunk" yaml:"min_chunk"`
	MaxChunk int           `mapstructure:"max_chunk" yaml:"max_chunk"`
	Delay    time.Duration `mapstructure:"delay" yaml:"delay"`
}

// ThemeConfig allows customization of UI colors on top of the preset
// Colors can be ANSI color numbers (0-255) or hex codes (#RRGGBB)
type ThemeConfig struct {
	Primary   string `mapstructure:"primary" yaml:"primary,omitempty"`
	Secondary string `mapstructure:"secondary" yaml:"secondary,omitempty"`
	Success   string `mapstructure:"success" yaml:"success,omitempty"`
	Error     string `mapstructure:"error" yaml:"error,omitempty"`
	Warning   string `mapstructure:"warning" yaml:"warning,omitempty"`
	Muted     string `mapstructure:"muted" yaml:"muted,omitempty"`
	Text      string `mapstructure:"text" yaml:"text,omitempty"`
	Spinner   string `mapstructure:"spinner" yaml:"spinner,omitempty"`
}

// Load reads the config. When file is empty the XDG config directory and
// the working directory are searched for config.yaml; a missing file is not
// an error. An explicit file must exist.
func Load(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
	} else {
		configPath, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get config dir: %w", err)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configPath)
		v.AddConfigPath(".")
	}

	// Read config file (optional when searching)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("reveal.min_interval", 10*time.Millisecond)
	v.SetDefault("reveal.frame_interval", 16*time.Millisecond)
	v.SetDefault("render.style", "theme")
	v.SetDefault("render.theme", "gruvbox")
	v.SetDefault("render.word_wrap", 80)
	v.SetDefault("replay.min_chunk", 1)
	v.SetDefault("replay.max_chunk", 8)
	v.SetDefault("replay.delay", 20*time.Millisecond)
}

// Validate rejects values the reveal pipeline cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Reveal.MinInterval <= 0:
		return fmt.Errorf("reveal.min_interval must be positive, got %s", c.Reveal.MinInterval)
	case c.Reveal.FrameInterval <= 0:
		return fmt.Errorf("reveal.frame_interval must be positive, got %s", c.Reveal.FrameInterval)
	case c.Render.WordWrap < 0:
		return fmt.Errorf("render.word_wrap must not be negative, got %d", c.Render.WordWrap)
	case c.Replay.MinChunk < 1:
		return fmt.Errorf("replay.min_chunk must be at least 1, got %d", c.Replay.MinChunk)
	case c.Replay.MaxChunk < c.Replay.MinChunk:
		return fmt.Errorf("replay.max_chunk (%d) is below replay.min_chunk (%d)", c.Replay.MaxChunk, c.Replay.MinChunk)
	case c.Replay.Delay < 0:
		return fmt.Errorf("replay.delay must not be negative, got %s", c.Replay.Delay)
	}
	return nil
}

// GetConfigDir returns the XDG config directory for mdreveal.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, appName), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

// GetConfigPath returns the path where the config file should be located
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}

// Exists returns true if a config file exists
func Exists() bool {
	path, err := GetConfigPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// Save writes the config to the default path
func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config as commented YAML to path
func SaveTo(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	content := fmt.Sprintf(`reveal:
  # Minimum time between two reveals
  min_interval: %s
  # How often the reveal loop wakes up
  frame_interval: %s

render:
  # "theme" uses the palette below; any glamour style works too
  # (dark, light, notty, ascii, dracula, pink)
  style: %s
  # gruvbox, dracula, nord, solarized, monokai, classic
  theme: %s
  # Wrap width for rendered blocks, 0 = terminal width
  word_wrap: %d

replay:
  # Simulated token stream: chunk sizes in bytes and the pause between chunks
  min_chunk: %d
  max_chunk: %d
  delay: %s

# theme:
#   primary: "#b8bb26"
#   secondary: "#83a598"
`, cfg.Reveal.MinInterval, cfg.Reveal.FrameInterval,
		cfg.Render.Style, cfg.Render.Theme, cfg.Render.WordWrap,
		cfg.Replay.MinChunk, cfg.Replay.MaxChunk, cfg.Replay.Delay)

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
