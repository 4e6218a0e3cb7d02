package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config represents the application configuration
type Config struct {
	Strava      StravaConfig      `json:"strava"`
	Preferences PreferencesConfig `json:"preferences"`
	Log         LogConfig         `json:"log"`
}

// StravaConfig holds Strava API credentials
type StravaConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// PreferencesConfig holds the user-facing preferences consumed by the core
type PreferencesConfig struct {
	Units       UnitOption        `json:"units"`
	TimeRange   TimeRangeOption   `json:"time_range"`
	Sort        ShoesSortOption   `json:"sort"`
	ArchiveSort ArchiveSortOption `json:"archive_sort"`
	Theme       ThemeOption       `json:"theme"`
	Locale      string            `json:"locale"` // BCP 47, e.g. "en-US"
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// dirName is the per-user data directory under $HOME
const dirName = ".shoes"

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Preferences: PreferencesConfig{
			Units:       UnitsSystem,
			TimeRange:   TimeRange30Days,
			Sort:        SortDaysRemaining,
			ArchiveSort: ArchiveSortAge,
			Theme:       ThemeSystem,
			Locale:      LocaleFromEnv(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the configuration from ~/.shoes/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from an explicit path
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Preferences.Units == "" {
		c.Preferences.Units = defaults.Preferences.Units
	}
	if c.Preferences.TimeRange == "" {
		c.Preferences.TimeRange = defaults.Preferences.TimeRange
	}
	if c.Preferences.Sort == "" {
		c.Preferences.Sort = defaults.Preferences.Sort
	}
	if c.Preferences.ArchiveSort == "" {
		c.Preferences.ArchiveSort = defaults.Preferences.ArchiveSort
	}
	if c.Preferences.Theme == "" {
		c.Preferences.Theme = defaults.Preferences.Theme
	}
	if c.Preferences.Locale == "" {
		c.Preferences.Locale = defaults.Preferences.Locale
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
}

// Save writes the configuration to ~/.shoes/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}
	return SaveFile(path, cfg)
}

// SaveFile writes the configuration to an explicit path
func SaveFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Strava = StravaConfig{
		ClientID:     "YOUR_CLIENT_ID",
		ClientSecret: "YOUR_CLIENT_SECRET",
	}

	return Save(&example)
}

// Validate checks that every preference is a recognized option.
// Strava credentials are checked separately by ValidateStrava, since
// most commands work without them.
func (c *Config) Validate() error {
	if !c.Preferences.Units.Valid() {
		return fmt.Errorf("preferences.units must be one of %s, got %q", joinOptions(UnitOptions()), c.Preferences.Units)
	}
	if !c.Preferences.TimeRange.Valid() {
		return fmt.Errorf("preferences.time_range must be one of %s, got %q", joinOptions(TimeRangeOptions()), c.Preferences.TimeRange)
	}
	if !c.Preferences.Sort.Valid() {
		return fmt.Errorf("preferences.sort must be one of %s, got %q", joinOptions(ShoesSortOptions()), c.Preferences.Sort)
	}
	if !c.Preferences.ArchiveSort.Valid() {
		return fmt.Errorf("preferences.archive_sort must be one of %s, got %q", joinOptions(ArchiveSortOptions()), c.Preferences.ArchiveSort)
	}
	if !c.Preferences.Theme.Valid() {
		return fmt.Errorf("preferences.theme must be one of %s, got %q", joinOptions(ThemeOptions()), c.Preferences.Theme)
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}

	return nil
}

// ValidateStrava checks that Strava credentials have been filled in
func (c *Config) ValidateStrava() error {
	if c.Strava.ClientID == "" || c.Strava.ClientID == "YOUR_CLIENT_ID" {
		return errors.New("strava.client_id is required - get it from https://www.strava.com/settings/api")
	}
	if c.Strava.ClientSecret == "" || c.Strava.ClientSecret == "YOUR_CLIENT_SECRET" {
		return errors.New("strava.client_secret is required - get it from https://www.strava.com/settings/api")
	}
	return nil
}

// LocaleFromEnv derives a BCP 47 tag from the POSIX locale environment.
// "de_DE.UTF-8" becomes "de-DE"; an unset or "C" locale yields "en-US".
func LocaleFromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_MEASUREMENT", "LANG"} {
		v := os.Getenv(key)
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		return strings.ReplaceAll(v, "_", "-")
	}
	return "en-US"
}

func joinOptions[T ~string](opts []T) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = string(o)
	}
	return strings.Join(parts, ", ")
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// LogPath returns the configured log file, falling back to ~/.shoes/shoes.log
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "shoes.log"), nil
}
