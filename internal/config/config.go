// Package config handles the XDG configuration directory and environment settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application directory name.
	AppName = "todo"

	// EnvFile is the optional dotenv file inside the config directory.
	EnvFile = ".env"

	// LogFile receives TUI debug logs.
	LogFile = "todo.log"

	// EnvPrefix namespaces every environment variable the app reads.
	EnvPrefix = "TODO"

	// DefaultTitle is the list heading shown by the TUI.
	DefaultTitle = "My Tasks"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Title is the heading of the task list screen.
	Title string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFormat is text or json.
	LogFormat string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/todo or $HOME/.config/todo.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{
		Dir:       dir,
		Title:     DefaultTitle,
		LogLevel:  "info",
		LogFormat: "text",
	}, nil
}

// Load creates a Config for configDir, loads the dotenv file found there
// (if any) and applies TODO_* environment variables on top of the defaults.
// Variables already present in the environment win over the dotenv file.
func Load(configDir string) (*Config, error) {
	cfg, err := New(configDir)
	if err != nil {
		return nil, err
	}
	if err := cfg.loadDotenv(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// EnvPath returns the path to the dotenv file.
func (c *Config) EnvPath() string {
	return filepath.Join(c.Dir, EnvFile)
}

// LogPath returns the path to the TUI log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasEnvFile checks if the dotenv file exists.
func (c *Config) HasEnvFile() bool {
	_, err := os.Stat(c.EnvPath())
	return err == nil
}

// EffectiveLogLevel returns the log level, forced to debug when Debug is set.
func (c *Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}

func (c *Config) loadDotenv() error {
	err := godotenv.Load(c.EnvPath())
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", c.EnvPath(), err)
}

func (c *Config) applyEnv() error {
	if v, ok := lookup("TITLE"); ok && strings.TrimSpace(v) != "" {
		c.Title = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok {
		level := strings.ToLower(strings.TrimSpace(v))
		switch level {
		case "debug", "info", "warn", "error":
			c.LogLevel = level
		default:
			return fmt.Errorf("invalid %s: %s", Key("LOG_LEVEL"), v)
		}
	}
	if v, ok := lookup("LOG_FORMAT"); ok {
		if err := c.SetLogFormat(v); err != nil {
			return fmt.Errorf("invalid %s: %s", Key("LOG_FORMAT"), v)
		}
	}
	if v, ok := lookup("DEBUG"); ok && v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", Key("DEBUG"), v)
		}
		c.Debug = debug
	}
	return nil
}

// SetLogFormat validates and sets the log format (text or json).
func (c *Config) SetLogFormat(format string) error {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "text", "json":
		c.LogFormat = f
		return nil
	default:
		return fmt.Errorf("unknown log format: %s", format)
	}
}

// Key returns the prefixed environment variable name for key.
func Key(key string) string {
	return EnvPrefix + "_" + key
}

func lookup(key string) (string, bool) {
	return os.LookupEnv(Key(key))
}
