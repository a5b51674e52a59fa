// Package config loads swipe's TOML configuration file.
//
// A missing file is not an error: every field has a default, and values
// present in the file override only what they name.
//
//	[spring]
//	stiffness = 230
//	damping = 30
//
//	[presets.gentle]
//	stiffness = 120
//	damping = 22
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is returned by Validate for out-of-range values.
var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Spring  Spring            `toml:"spring"`
	Gesture Gesture           `toml:"gesture"`
	Display Display           `toml:"display"`
	Presets map[string]Preset `toml:"presets"`
}

type Spring struct {
	Stiffness float64 `toml:"stiffness"`
	Damping   float64 `toml:"damping"`
	Mass      float64 `toml:"mass"`
}

type Gesture struct {
	FlickVelocity float64 `toml:"flick_velocity"` // columns per second
	Overshoot     float64 `toml:"overshoot"`
	IdleReset     float64 `toml:"idle_reset"` // ms
	Smoothing     float64 `toml:"smoothing"`
}

type Display struct {
	FPS        int     `toml:"fps"`
	MinOpacity float64 `toml:"min_opacity"`
	Color      string  `toml:"color"`
}

// Preset is a named spring feel the user can cycle through at runtime.
type Preset struct {
	Stiffness float64 `toml:"stiffness"`
	Damping   float64 `toml:"damping"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Spring: Spring{Stiffness: 230, Damping: 30, Mass: 1},
		Gesture: Gesture{
			FlickVelocity: 40,
			Overshoot:     0.35,
			IdleReset:     120,
			Smoothing:     0.5,
		},
		Display: Display{FPS: 60, MinOpacity: 0.35, Color: "auto"},
		Presets: map[string]Preset{
			"snappy": {Stiffness: 400, Damping: 40},
			"gentle": {Stiffness: 120, Damping: 22},
			"wobbly": {Stiffness: 180, Damping: 12},
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/swipe/config.toml or the platform
// equivalent. It returns "" when no config directory is known.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "swipe", "config.toml")
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case !(c.Spring.Mass > 0):
		return fmt.Errorf("%w: spring.mass must be positive (got %v)", ErrInvalid, c.Spring.Mass)
	case !(c.Spring.Stiffness > 0):
		return fmt.Errorf("%w: spring.stiffness must be positive (got %v)", ErrInvalid, c.Spring.Stiffness)
	case !(c.Spring.Damping >= 0):
		return fmt.Errorf("%w: spring.damping must not be negative (got %v)", ErrInvalid, c.Spring.Damping)
	case !(c.Gesture.FlickVelocity >= 0):
		return fmt.Errorf("%w: gesture.flick_velocity must not be negative (got %v)", ErrInvalid, c.Gesture.FlickVelocity)
	case !(c.Gesture.Overshoot >= 0 && c.Gesture.Overshoot <= 1):
		return fmt.Errorf("%w: gesture.overshoot must be within [0, 1] (got %v)", ErrInvalid, c.Gesture.Overshoot)
	case !(c.Gesture.IdleReset >= 0):
		return fmt.Errorf("%w: gesture.idle_reset must not be negative (got %v)", ErrInvalid, c.Gesture.IdleReset)
	case !(c.Gesture.Smoothing >= 0 && c.Gesture.Smoothing < 1):
		return fmt.Errorf("%w: gesture.smoothing must be within [0, 1) (got %v)", ErrInvalid, c.Gesture.Smoothing)
	case c.Display.FPS < 1 || c.Display.FPS > 240:
		return fmt.Errorf("%w: display.fps must be within [1, 240] (got %d)", ErrInvalid, c.Display.FPS)
	case !(c.Display.MinOpacity >= 0 && c.Display.MinOpacity <= 1):
		return fmt.Errorf("%w: display.min_opacity must be within [0, 1] (got %v)", ErrInvalid, c.Display.MinOpacity)
	}
	for name, p := range c.Presets {
		if !(p.Stiffness > 0) || !(p.Damping >= 0) {
			return fmt.Errorf("%w: preset %q needs positive stiffness and non-negative damping", ErrInvalid, name)
		}
	}
	return nil
}

// PresetNames returns the preset names in a stable order, with "default"
// (the [spring] section) first.
func (c Config) PresetNames() []string {
	names := make([]string, 0, len(c.Presets)+1)
	for name := range c.Presets {
		if name != "default" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{"default"}, names...)
}

// Preset resolves a name from PresetNames. "default" maps to [spring].
func (c Config) Preset(name string) (Preset, bool) {
	if name == "default" {
		return Preset{Stiffness: c.Spring.Stiffness, Damping: c.Spring.Damping}, true
	}
	p, ok := c.Presets[name]
	return p, ok
}
