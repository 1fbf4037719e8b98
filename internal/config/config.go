// Package config loads viewer settings from YAML or TOML files and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"pagoda/internal/diorama"
)

var (
	ErrUnknownTheme  = errors.New("unknown theme")
	ErrUnknownFormat = errors.New("unknown config format")
)

type Config struct {
	Theme    string `yaml:"theme" toml:"theme"`
	Blossoms int    `yaml:"blossoms" toml:"blossoms"`
	Seed     uint64 `yaml:"seed" toml:"seed"` // 0 = seed from the clock
	LogLevel string `yaml:"log_level" toml:"log_level"`

	Window WindowConfig `yaml:"window" toml:"window"`
	Audio  AudioConfig  `yaml:"audio" toml:"audio"`
}

type WindowConfig struct {
	Width   int    `yaml:"width" toml:"width"`
	Height  int    `yaml:"height" toml:"height"`
	Title   string `yaml:"title" toml:"title"`
	Samples int    `yaml:"samples" toml:"samples"` // MSAA, 0 disables
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled" toml:"enabled"`
	Volume  float64 `yaml:"volume" toml:"volume"`
}

func Default() Config {
	return Config{
		Theme:    diorama.Day.String(),
		Blossoms: diorama.DefaultBlossoms,
		LogLevel: "info",
		Window: WindowConfig{
			Width:   1280,
			Height:  800,
			Title:   "Pagoda Garden",
			Samples: 4,
		},
		Audio: AudioConfig{Enabled: true, Volume: 0.35},
	}
}

// Load reads path over the defaults. The format follows the extension:
// .yaml/.yml or .toml. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data in the format named by ext into cfg. Fields absent
// from data keep their current values.
func Decode(data []byte, ext string, cfg *Config) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("parse yaml: %w", err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("parse toml: %w", err)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, ext)
	}
	return nil
}

// ApplyEnv overrides fields from PAGODA_SEED and PAGODA_THEME.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if s := getenv("PAGODA_SEED"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("PAGODA_SEED: %w", err)
		}
		c.Seed = v
	}
	if s := getenv("PAGODA_THEME"); s != "" {
		c.Theme = s
	}
	return nil
}

// Scene converts to a scene request. Blossoms are clamped to the
// interactive range.
func (c Config) Scene() (diorama.SceneConfig, error) {
	theme, ok := diorama.ParseTheme(c.Theme)
	if !ok {
		return diorama.SceneConfig{}, fmt.Errorf("%w %q", ErrUnknownTheme, c.Theme)
	}
	return diorama.SceneConfig{
		Theme:          theme,
		BlossomDensity: diorama.ClampUIDensity(c.Blossoms),
		Seed:           c.Seed,
	}, nil
}

func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}
