package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v, want nil", err)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
population = 12
honey_cap = 40
raid_threshold = 20
hunt_min = "100ms"
hunt_max = "2s"
recovery = "1500ms"
events_file = "out.jsonl"
seed = 7
`)

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if cfg.Population != 12 {
		t.Errorf("Population = %d, want 12", cfg.Population)
	}
	if cfg.HoneyCap != 40 {
		t.Errorf("HoneyCap = %d, want 40", cfg.HoneyCap)
	}
	if cfg.RaidThreshold != 20 {
		t.Errorf("RaidThreshold = %d, want 20", cfg.RaidThreshold)
	}
	if cfg.HuntMin.Duration != 100*time.Millisecond {
		t.Errorf("HuntMin = %v, want 100ms", cfg.HuntMin.Duration)
	}
	if cfg.HuntMax.Duration != 2*time.Second {
		t.Errorf("HuntMax = %v, want 2s", cfg.HuntMax.Duration)
	}
	if cfg.Recovery.Duration != 1500*time.Millisecond {
		t.Errorf("Recovery = %v, want 1.5s", cfg.Recovery.Duration)
	}
	if cfg.EventsFile != "out.jsonl" {
		t.Errorf("EventsFile = %q, want out.jsonl", cfg.EventsFile)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}

	// Unset fields keep their defaults.
	if cfg.RaidGuard != Default().RaidGuard {
		t.Errorf("RaidGuard = %d, want default %d", cfg.RaidGuard, Default().RaidGuard)
	}
}

func TestParseBadDuration(t *testing.T) {
	if _, err := Parse([]byte(`hunt_min = "fast"`)); err == nil {
		t.Error("expected error for unparseable duration")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"population too small", func(c *Config) { c.Population = 1 }},
		{"zero honey cap", func(c *Config) { c.HoneyCap = 0 }},
		{"threshold above cap", func(c *Config) { c.RaidThreshold = c.HoneyCap + 1 }},
		{"zero threshold", func(c *Config) { c.RaidThreshold = 0 }},
		{"zero raid guard", func(c *Config) { c.RaidGuard = 0 }},
		{"hunt min above max", func(c *Config) { c.HuntMin = Duration{time.Second}; c.HuntMax = Duration{time.Millisecond} }},
		{"negative release bound", func(c *Config) { c.ReleaseMin = Duration{-time.Second} }},
		{"zero recovery", func(c *Config) { c.Recovery = Duration{} }},
		{"zero run duration", func(c *Config) { c.RunFor = Duration{} }},
		{"empty events file", func(c *Config) { c.EventsFile = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadFile error = %v, want ErrNotFound", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apiary.toml")
	if err := os.WriteFile(path, []byte("population = 6\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Population != 6 {
		t.Errorf("Population = %d, want 6", cfg.Population)
	}
}
