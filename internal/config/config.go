package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "focusplay"

type Config struct {
	Playback PlaybackConfig `koanf:"playback"`
	Focus    FocusConfig    `koanf:"focus"`
	Log      LogConfig      `koanf:"log"`
	MPRIS    MPRISConfig    `koanf:"mpris"`
	Notify   NotifyConfig   `koanf:"notify"`

	// Cookies seeded into the transport credential source for remote URIs.
	Cookies []CookieConfig `koanf:"cookies"`
}

// PlaybackConfig holds the initial status applied to a freshly loaded URI.
// Pointer fields distinguish "unset" from a meaningful zero.
type PlaybackConfig struct {
	UpdateIntervalMS *int     `koanf:"update_interval_ms"` // progress report cadence, <= 0 disables (default: 500)
	Volume           *float64 `koanf:"volume"`             // 0.0-1.0 (default: 1.0)
	Rate             float64  `koanf:"rate"`               // > 0 (default: 1.0)
	CorrectPitch     *bool    `koanf:"correct_pitch"`      // default: true
	Looping          bool     `koanf:"looping"`
	Resume           *bool    `koanf:"resume"` // restore the saved session for the URI (default: true)
}

// FocusConfig holds the audio focus request parameters.
type FocusConfig struct {
	Gain            string   `koanf:"gain"`         // "gain", "gain_transient", "gain_transient_may_duck", "gain_transient_exclusive"
	Usage           string   `koanf:"usage"`        // "media", "game", "voice_communication", ...
	ContentType     string   `koanf:"content_type"` // "music", "movie", "speech", "sonification", "unknown"
	PauseWhenDucked bool     `koanf:"pause_when_ducked"`
	AcceptDelayed   *bool    `koanf:"accept_delayed"` // default: true
	DuckFactor      *float64 `koanf:"duck_factor"`    // volume multiplier while ducked (default: 0.5)
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level      string `koanf:"level"` // "debug", "info", "warn", "error" (default: "info")
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`  // default: 10
	MaxBackups int    `koanf:"max_backups"`  // default: 3
	MaxAgeDays int    `koanf:"max_age_days"` // default: 28
	Compress   bool   `koanf:"compress"`
}

// MPRISConfig holds D-Bus media controls settings.
type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// NotifyConfig holds desktop notification settings.
type NotifyConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// CookieConfig is one cookie sent to the hosts matching URL.
type CookieConfig struct {
	URL   string `koanf:"url"`
	Name  string `koanf:"name"`
	Value string `koanf:"value"`
}

// Load reads the configuration. An explicit path replaces the default
// search and must exist.
func Load(explicit string) (*Config, error) {
	if explicit != "" {
		explicit = expandPath(explicit)
		if _, err := os.Stat(explicit); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		return loadFrom([]string{explicit})
	}
	return loadFrom(getConfigPaths())
}

func loadFrom(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Last wins.
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
	for i := range cfg.Cookies {
		cfg.Cookies[i].URL = strings.TrimSpace(cfg.Cookies[i].URL)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/focusplay/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// PlaybackSettings is PlaybackConfig with defaults applied.
type PlaybackSettings struct {
	UpdateIntervalMS int
	Volume           float64
	Rate             float64
	CorrectPitch     bool
	Looping          bool
	Resume           bool
}

// GetPlaybackSettings returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackSettings() PlaybackSettings {
	p := c.Playback
	s := PlaybackSettings{
		UpdateIntervalMS: 500,
		Volume:           1,
		Rate:             p.Rate,
		CorrectPitch:     boolOr(p.CorrectPitch, true),
		Looping:          p.Looping,
		Resume:           boolOr(p.Resume, true),
	}
	if p.UpdateIntervalMS != nil {
		s.UpdateIntervalMS = *p.UpdateIntervalMS
	}
	if p.Volume != nil && *p.Volume >= 0 && *p.Volume <= 1 {
		s.Volume = *p.Volume
	}
	if s.Rate <= 0 {
		s.Rate = 1
	}
	return s
}

// GetFocusConfig returns the focus configuration with defaults applied.
func (c *Config) GetFocusConfig() FocusConfig {
	cfg := c.Focus
	if cfg.Gain == "" {
		cfg.Gain = "gain"
	}
	if cfg.Usage == "" {
		cfg.Usage = "media"
	}
	if cfg.ContentType == "" {
		cfg.ContentType = "music"
	}
	if cfg.AcceptDelayed == nil {
		cfg.AcceptDelayed = ptr(true)
	}
	if cfg.DuckFactor == nil || *cfg.DuckFactor < 0 || *cfg.DuckFactor > 1 {
		cfg.DuckFactor = ptr(0.5)
	}
	return cfg
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "error":
		cfg.Level = strings.ToLower(cfg.Level)
	default:
		cfg.Level = "info"
	}
	if cfg.File == "" {
		cfg.File = filepath.Join(xdg.StateHome, appName, appName+".log")
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 28
	}
	return cfg
}

// MPRISEnabled returns true unless MPRIS is explicitly disabled.
func (c *Config) MPRISEnabled() bool {
	return boolOr(c.MPRIS.Enabled, true)
}

// NotificationsEnabled returns true unless desktop notifications are
// explicitly disabled.
func (c *Config) NotificationsEnabled() bool {
	return boolOr(c.Notify.Enabled, true)
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

func ptr[T any](v T) *T { return &v }
