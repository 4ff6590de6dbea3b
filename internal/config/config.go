// Package config handles the XDG configuration directory, its files, and
// the user settings in config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the application directory name.
	AppName = "gid"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"

	// SettingsFile is the user settings filename.
	SettingsFile = "config.toml"

	// DefaultList selects the first list when no --list is given.
	DefaultList = "0"

	// DefaultTableStyle is the table border style.
	DefaultTableStyle = "rounded"
)

// ErrMalformed is returned by LoadSettings when config.toml cannot be parsed.
// Defaults are still applied.
var ErrMalformed = errors.New("malformed config file")

// Settings are the user-editable values from config.toml.
type Settings struct {
	// DefaultList is the name-or-index selector used when --list is absent.
	DefaultList string `toml:"default_list"`

	// TableStyle names the table border style.
	TableStyle string `toml:"table_style"`
}

// DefaultSettings returns the settings used when config.toml is absent.
func DefaultSettings() Settings {
	return Settings{
		DefaultList: DefaultList,
		TableStyle:  DefaultTableStyle,
	}
}

// Config holds configuration paths and settings for one invocation.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// BaseURL overrides the API endpoint. Empty uses the library default.
	BaseURL string

	// UserAgent is sent with every request.
	UserAgent string

	Settings
}

// New creates a new Config with the default or specified config directory
// and default settings.
// If configDir is empty, uses XDG_CONFIG_HOME/gid or $HOME/.config/gid.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	return &Config{Dir: dir, Settings: DefaultSettings()}, nil
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

// LoadSettings reads config.toml into c.Settings.
// A missing file is not an error. A malformed file leaves the defaults in
// place and returns an error wrapping ErrMalformed. Fields left empty in
// the file keep their defaults.
func (c *Config) LoadSettings() error {
	c.Settings = DefaultSettings()

	data, err := os.ReadFile(c.SettingsPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", SettingsFile, err)
	}

	var s Settings
	if err := toml.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if s.DefaultList != "" {
		c.DefaultList = s.DefaultList
	}
	if s.TableStyle != "" {
		c.TableStyle = s.TableStyle
	}
	return nil
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// SettingsPath returns the path to config.toml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
