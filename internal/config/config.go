// Package config loads the collage settings from the environment.
package config

import (
	"fmt"
	"image"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/destel/collage"
)

// Config holds the collage settings.
type Config struct {
	LibraryDir    string        `env:"COLLAGE_LIBRARY_DIR"    envDefault:"./library"`
	PreviewWidth  int           `env:"COLLAGE_PREVIEW_WIDTH"  envDefault:"1200"`
	PreviewHeight int           `env:"COLLAGE_PREVIEW_HEIGHT" envDefault:"800"`
	Throttle      time.Duration `env:"COLLAGE_THROTTLE"       envDefault:"500ms"`
	Fingerprint   string        `env:"COLLAGE_FINGERPRINT"    envDefault:"length"`
	Workers       int           `env:"COLLAGE_DECODE_WORKERS" envDefault:"4"`
	LogLevel      string        `env:"COLLAGE_LOG_LEVEL"      envDefault:"info"`
}

// Load reads the configuration from environment variables and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.LibraryDir == "":
		return fmt.Errorf("library dir is empty")
	case c.PreviewWidth <= 0 || c.PreviewHeight <= 0:
		return fmt.Errorf("invalid preview size %dx%d", c.PreviewWidth, c.PreviewHeight)
	case c.Throttle <= 0:
		return fmt.Errorf("throttle must be positive, got %v", c.Throttle)
	case c.Workers <= 0:
		return fmt.Errorf("decode workers must be positive, got %d", c.Workers)
	}

	if _, err := c.Fingerprinter(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

func (c Config) PreviewSize() image.Point {
	return image.Pt(c.PreviewWidth, c.PreviewHeight)
}

// Fingerprinter maps the fingerprint setting to a duplicate detector:
// "length" for the encoded length proxy, "content" for a hash of the pixels.
func (c Config) Fingerprinter() (collage.Fingerprinter, error) {
	switch strings.ToLower(c.Fingerprint) {
	case "length":
		return collage.EncodedLength, nil
	case "content":
		return collage.ContentHash, nil
	default:
		return nil, fmt.Errorf("unknown fingerprint %q, want length or content", c.Fingerprint)
	}
}

func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
