// Package config loads the device configuration from YAML with environment
// overrides on top.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/quarterface/quarterface/internal/watch"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "/etc/quarterface/config.yaml"

	// EnvPrefix is prepended to every environment override, e.g. QUARTERFACE_THEME.
	EnvPrefix = "QUARTERFACE"
)

// Config is the on-disk configuration. Enum values use the same words as
// the settings API: theme black|white, interval second|minute, hour_digit show|hide.
type Config struct {
	// Listen is the HTTP address of the settings API. Empty disables it.
	Listen string `yaml:"listen" json:"listen" envconfig:"LISTEN"`

	// Timezone is an IANA zone name; empty or unknown means the system zone.
	Timezone string `yaml:"timezone" json:"timezone" envconfig:"TIMEZONE"`

	Framebuffer  string `yaml:"framebuffer" json:"framebuffer" envconfig:"FRAMEBUFFER"`
	CanvasWidth  int    `yaml:"canvas_width" json:"canvas_width" envconfig:"CANVAS_WIDTH"`
	CanvasHeight int    `yaml:"canvas_height" json:"canvas_height" envconfig:"CANVAS_HEIGHT"`

	Theme     string `yaml:"theme" json:"theme" envconfig:"THEME"`
	Interval  string `yaml:"interval" json:"interval" envconfig:"INTERVAL"`
	HourDigit string `yaml:"hour_digit" json:"hour_digit" envconfig:"HOUR_DIGIT"`

	// SettingsURL is encoded into the settings QR code.
	SettingsURL string `yaml:"settings_url" json:"settings_url" envconfig:"SETTINGS_URL"`

	// Dev enables permissive CORS on the API.
	Dev bool `yaml:"dev" json:"dev" envconfig:"DEV"`
}

func DefaultConfig() *Config {
	return &Config{
		Listen:       "127.0.0.1:8080",
		Framebuffer:  "/dev/fb0",
		CanvasWidth:  144,
		CanvasHeight: 168,
		Theme:        "white",
		Interval:     "second",
		HourDigit:    "hide",
		SettingsURL:  "http://quarterface.local:8080/",
	}
}

// Normalize fills zero values and replaces unknown enum values with defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Framebuffer == "" {
		c.Framebuffer = def.Framebuffer
	}
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		c.CanvasWidth, c.CanvasHeight = def.CanvasWidth, def.CanvasHeight
	}
	if _, err := watch.ThemeByName(c.Theme); err != nil {
		c.Theme = def.Theme
	}
	if _, err := watch.ParseGranularity(c.Interval); err != nil {
		c.Interval = def.Interval
	}
	switch strings.ToLower(c.HourDigit) {
	case "show", "hide":
		c.HourDigit = strings.ToLower(c.HourDigit)
	default:
		c.HourDigit = def.HourDigit
	}
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.Interval = strings.ToLower(strings.TrimSpace(c.Interval))
	if c.SettingsURL == "" {
		c.SettingsURL = def.SettingsURL
	}
}

// Face converts the enum strings into the face options.
func (c *Config) Face() watch.Config {
	theme, _ := watch.ThemeByName(c.Theme)
	g, _ := watch.ParseGranularity(c.Interval)
	return watch.Config{Theme: theme, Granularity: g, ShowHourBadge: c.HourDigit == "show"}
}

// Location resolves Timezone, falling back to the system zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Load reads path, writing defaults there on first run, then applies
// QUARTERFACE_* environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := loadFile(path)
	if cfg == nil {
		return nil, err
	}
	if envErr := ApplyEnv(cfg); envErr != nil {
		return cfg, envErr
	}
	return cfg, err
}

func loadFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

// ApplyEnv overrides fields whose QUARTERFACE_* variable is set.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return err
	}
	cfg.Normalize()
	return nil
}

// Save writes cfg to path atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".quarterface-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
