package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Spring.Stiffness != 230 || cfg.Spring.Damping != 30 || cfg.Spring.Mass != 1 {
		t.Fatalf("unexpected spring defaults: %+v", cfg.Spring)
	}
	if cfg.Display.FPS != 60 {
		t.Fatalf("expected 60 fps, got %d", cfg.Display.FPS)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesOnlyNamedFields(t *testing.T) {
	path := writeConfig(t, `
[spring]
stiffness = 300

[display]
color = "256"

[presets.stiff]
stiffness = 900
damping = 60
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Spring.Stiffness != 300 {
		t.Fatalf("expected stiffness 300, got %v", cfg.Spring.Stiffness)
	}
	if cfg.Spring.Damping != 30 {
		t.Fatalf("expected default damping to survive, got %v", cfg.Spring.Damping)
	}
	if cfg.Display.Color != "256" || cfg.Display.FPS != 60 {
		t.Fatalf("unexpected display section: %+v", cfg.Display)
	}
	p, ok := cfg.Preset("stiff")
	if !ok || p.Stiffness != 900 || p.Damping != 60 {
		t.Fatalf("expected stiff preset, got %+v (ok=%v)", p, ok)
	}
}

func TestLoadSyntaxError(t *testing.T) {
	path := writeConfig(t, "[spring\nstiffness = ")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadInvalidValue(t *testing.T) {
	path := writeConfig(t, "[spring]\nmass = 0\n")
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero stiffness", func(c *Config) { c.Spring.Stiffness = 0 }},
		{"negative damping", func(c *Config) { c.Spring.Damping = -1 }},
		{"negative mass", func(c *Config) { c.Spring.Mass = -2 }},
		{"negative flick", func(c *Config) { c.Gesture.FlickVelocity = -1 }},
		{"overshoot above one", func(c *Config) { c.Gesture.Overshoot = 1.5 }},
		{"smoothing of one", func(c *Config) { c.Gesture.Smoothing = 1 }},
		{"negative idle reset", func(c *Config) { c.Gesture.IdleReset = -5 }},
		{"zero fps", func(c *Config) { c.Display.FPS = 0 }},
		{"huge fps", func(c *Config) { c.Display.FPS = 1000 }},
		{"opacity above one", func(c *Config) { c.Display.MinOpacity = 2 }},
		{"bad preset", func(c *Config) { c.Presets["broken"] = Preset{Stiffness: 0, Damping: 1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestPresetNames(t *testing.T) {
	cfg := Default()
	got := cfg.PresetNames()
	want := []string{"default", "gentle", "snappy", "wobbly"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PresetNames() = %v, want %v", got, want)
	}

	p, ok := cfg.Preset("default")
	if !ok || p.Stiffness != cfg.Spring.Stiffness || p.Damping != cfg.Spring.Damping {
		t.Fatalf("default preset should mirror [spring], got %+v", p)
	}
	if _, ok := cfg.Preset("missing"); ok {
		t.Fatal("expected unknown preset to be absent")
	}
}
