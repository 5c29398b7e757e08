// Package config provides configuration loading for the apiary
// simulator. All values are start-time constants; there is no runtime
// reconfiguration.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/deeklead/apiary/internal/constants"
	"github.com/deeklead/apiary/internal/sampler"
)

var (
	// ErrNotFound indicates the config file does not exist.
	ErrNotFound = errors.New("config file not found")

	// ErrInvalidValue indicates a config value outside its permitted range.
	ErrInvalidValue = errors.New("invalid config value")
)

// Duration wraps time.Duration so TOML values can be written as
// strings like "250ms" or "2s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// Config is the full simulator configuration, decoded from apiary.toml.
type Config struct {
	// Population is the number of bees in the colony.
	Population int `toml:"population"`

	// HoneyCap bounds the honey counter.
	HoneyCap int `toml:"honey_cap"`

	// RaidThreshold is the honey level that wakes the bear.
	RaidThreshold int `toml:"raid_threshold"`

	// RaidGuard is the at-home count that repels a raid.
	RaidGuard int `toml:"raid_guard"`

	// HuntMin and HuntMax bound a bee's hunt duration.
	HuntMin Duration `toml:"hunt_min"`
	HuntMax Duration `toml:"hunt_max"`

	// ReleaseMin and ReleaseMax bound the pause between releases.
	ReleaseMin Duration `toml:"release_min"`
	ReleaseMax Duration `toml:"release_max"`

	// Recovery is the bear's disengagement time after a failed raid.
	Recovery Duration `toml:"recovery"`

	// RunFor is the total simulation duration.
	RunFor Duration `toml:"run_for"`

	// Seed makes runs reproducible when non-zero.
	Seed int64 `toml:"seed"`

	// EventsFile is the JSONL activity log path.
	EventsFile string `toml:"events_file"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Population:    constants.DefaultPopulation,
		HoneyCap:      constants.DefaultHoneyCap,
		RaidThreshold: constants.DefaultRaidThreshold,
		RaidGuard:     constants.DefaultRaidGuard,
		HuntMin:       Duration{constants.DefaultHuntMin},
		HuntMax:       Duration{constants.DefaultHuntMax},
		ReleaseMin:    Duration{constants.DefaultReleaseMin},
		ReleaseMax:    Duration{constants.DefaultReleaseMax},
		Recovery:      Duration{constants.DefaultRecovery},
		RunFor:        Duration{constants.DefaultRunFor},
		EventsFile:    constants.EventsFile,
	}
}

// HuntRange returns the hunt duration range.
func (c *Config) HuntRange() sampler.Range {
	return sampler.Range{Min: c.HuntMin.Duration, Max: c.HuntMax.Duration}
}

// ReleaseRange returns the release interval range.
func (c *Config) ReleaseRange() sampler.Range {
	return sampler.Range{Min: c.ReleaseMin.Duration, Max: c.ReleaseMax.Duration}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Population < 2 {
		return fmt.Errorf("%w: population must be at least 2 (one anchor bee plus one hunter), got %d", ErrInvalidValue, c.Population)
	}
	if c.HoneyCap < 1 {
		return fmt.Errorf("%w: honey_cap must be positive, got %d", ErrInvalidValue, c.HoneyCap)
	}
	if c.RaidThreshold < 1 || c.RaidThreshold > c.HoneyCap {
		return fmt.Errorf("%w: raid_threshold must be in [1, honey_cap], got %d", ErrInvalidValue, c.RaidThreshold)
	}
	if c.RaidGuard < 1 {
		return fmt.Errorf("%w: raid_guard must be positive, got %d", ErrInvalidValue, c.RaidGuard)
	}
	if err := c.HuntRange().Validate(); err != nil {
		return fmt.Errorf("hunt range: %w", err)
	}
	if err := c.ReleaseRange().Validate(); err != nil {
		return fmt.Errorf("release range: %w", err)
	}
	if c.Recovery.Duration <= 0 {
		return fmt.Errorf("%w: recovery must be positive, got %v", ErrInvalidValue, c.Recovery.Duration)
	}
	if c.RunFor.Duration <= 0 {
		return fmt.Errorf("%w: run_for must be positive, got %v", ErrInvalidValue, c.RunFor.Duration)
	}
	if c.EventsFile == "" {
		return fmt.Errorf("%w: events_file must not be empty", ErrInvalidValue)
	}
	return nil
}
