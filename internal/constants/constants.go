// Package constants defines shared default values used throughout the
// apiary simulator. Centralizing these magic numbers keeps the config
// defaults and the CLI flag defaults in one place.
package constants

import "time"

// Colony defaults.
const (
	// DefaultPopulation is the number of bees in the colony.
	DefaultPopulation = 8

	// DefaultHoneyCap is the upper bound on the honey counter.
	DefaultHoneyCap = 30

	// DefaultRaidThreshold is the honey level that wakes the bear.
	// Deliberately below the cap: the colony keeps accumulating while
	// the bear recovers, which is the pacing mechanism of the whole
	// simulation.
	DefaultRaidThreshold = 15

	// DefaultRaidGuard is the minimum number of bees at home that
	// repels a raid. A raid succeeds only while fewer are present.
	DefaultRaidGuard = 3
)

// Timing defaults.
const (
	// DefaultHuntMin and DefaultHuntMax bound a bee's sampled hunt
	// duration.
	DefaultHuntMin = 200 * time.Millisecond
	DefaultHuntMax = 900 * time.Millisecond

	// DefaultReleaseMin and DefaultReleaseMax bound the pause between
	// two releases from the hive.
	DefaultReleaseMin = 50 * time.Millisecond
	DefaultReleaseMax = 250 * time.Millisecond

	// DefaultRecovery is how long the bear disengages after a failed
	// raid.
	DefaultRecovery = 1 * time.Second

	// DefaultRunFor is the total simulation duration.
	DefaultRunFor = 10 * time.Second
)

// File names.
const (
	// EventsFile is the default name of the JSONL activity log.
	EventsFile = "apiary.events.jsonl"

	// ConfigFile is the default configuration file name.
	ConfigFile = "apiary.toml"
)
