// Package config provides YAML-based configuration loading for boxpush.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config is the full boxpush configuration.
type Config struct {
	Game     GameConfig     `yaml:"game"`
	Window   WindowConfig   `yaml:"window"`
	Assets   AssetsConfig   `yaml:"assets"`
	Terminal TerminalConfig `yaml:"terminal"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
}

// GameConfig defines the simulation clock.
type GameConfig struct {
	TickRate      int     `yaml:"tick_rate"`
	MaxCatchUp    int     `yaml:"max_catch_up"`
	TileWidth     int     `yaml:"tile_width"`
	TileHeight    int     `yaml:"tile_height"`
	AnimationStep float64 `yaml:"animation_step"`
}

// WindowConfig defines the desktop window.
type WindowConfig struct {
	Title string  `yaml:"title"`
	Scale float64 `yaml:"scale"`
}

// AssetsConfig maps asset and sound names to files under Dir.
type AssetsConfig struct {
	Dir    string            `yaml:"dir"`
	Images map[string]string `yaml:"images"`
	Sounds map[string]string `yaml:"sounds"`
}

// TerminalConfig defines how the terminal host draws and beeps.
type TerminalConfig struct {
	Glyphs map[string]GlyphConfig `yaml:"glyphs"`
	Tones  map[string]ToneConfig  `yaml:"tones"`
}

// GlyphConfig is the terminal stand-in for one image asset.
type GlyphConfig struct {
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"`
}

// ToneConfig is the terminal stand-in for one sound.
type ToneConfig struct {
	Frequency float64       `yaml:"frequency"`
	Duration  time.Duration `yaml:"duration"`
}

// StorageConfig locates the solve records database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address     string `yaml:"address"`
	HostKeyPath string `yaml:"host_key_path"`
}

// TickDuration returns the fixed simulation step.
func (c GameConfig) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Validate reports every setting that would leave the game unplayable,
// joined into a single error.
func (c *Config) Validate() error {
	var errs []error
	if c.Game.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("game.tick_rate must be positive, got %d", c.Game.TickRate))
	}
	if c.Game.MaxCatchUp < 0 {
		errs = append(errs, fmt.Errorf("game.max_catch_up must not be negative, got %d", c.Game.MaxCatchUp))
	}
	if c.Game.TileWidth <= 0 || c.Game.TileHeight <= 0 {
		errs = append(errs, fmt.Errorf("game tile size must be positive, got %dx%d", c.Game.TileWidth, c.Game.TileHeight))
	}
	if c.Window.Scale <= 0 {
		errs = append(errs, fmt.Errorf("window.scale must be positive, got %v", c.Window.Scale))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
