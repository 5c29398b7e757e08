// Package bear implements the antagonist actor: it watches the
// colony's honey level and raids when accumulation coincides with a
// weak present-count, otherwise it backs off to recover.
package bear

import (
	"sync"
	"time"

	"github.com/deeklead/apiary/internal/events"
	"github.com/deeklead/apiary/internal/hive"
)

// State is the bear's behavior state.
type State int

// Bear states.
const (
	StateWatching State = iota
	StateRaiding
	StateRecovering
	StateStopped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateWatching:
		return "watching"
	case StateRaiding:
		return "raiding"
	case StateRecovering:
		return "recovering"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config carries the bear's start-time parameters.
type Config struct {
	// RaidThreshold is the honey level that wakes the bear. Kept below
	// the honey cap so the colony has headroom to accumulate while the
	// bear recovers.
	RaidThreshold int

	// Recovery is how long the bear disengages after a failed raid.
	Recovery time.Duration
}

// Bear binds to exactly one colony. It never mutates worker state
// directly; raids go through the colony's TryRaid, the sole authority
// on colony weakness. The bear must not outlive its colony: stop the
// bear first or stop both together.
type Bear struct {
	cfg    Config
	colony *hive.Colony
	sink   events.Sink

	mu     sync.Mutex
	state  State
	halted bool

	wg       sync.WaitGroup
	started  bool
	stopOnce sync.Once
}

// New creates a bear bound to the given colony.
func New(cfg Config, colony *hive.Colony, sink events.Sink) *Bear {
	if sink == nil {
		sink = events.Nop{}
	}
	return &Bear{
		cfg:    cfg,
		colony: colony,
		sink:   sink,
		state:  StateWatching,
	}
}

// State returns the bear's current state.
func (b *Bear) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Start launches the bear's watch loop.
func (b *Bear) Start() {
	b.mu.Lock()
	if b.started || b.halted {
		b.mu.Unlock()
		return
	}
	b.started = true
	b.mu.Unlock()

	b.wg.Add(1)
	go b.loop()
}

// Stop signals the loop and joins it. Safe to call more than once and
// tolerant of the colony stopping first or later. A bear mid-recovery
// finishes its recovery sleep before noticing the flag.
func (b *Bear) Stop() {
	b.stopOnce.Do(func() {
		b.mu.Lock()
		b.halted = true
		b.mu.Unlock()
		b.colony.WakeWatchers()
	})
	b.wg.Wait()
}

// isHalted reports whether Stop has been signaled.
func (b *Bear) isHalted() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.halted
}

// Attack raids the bound colony and records the outcome. Returns true
// when the raid reset the honey counter.
func (b *Bear) Attack() bool {
	b.transition(StateRaiding)
	ok := b.colony.TryRaid()
	present, honey := b.colony.RaidSnapshot()
	if ok {
		b.sink.Record(events.KindRaidSuccess, events.ActorBear, events.RaidPayload(present, honey))
	} else {
		b.sink.Record(events.KindRaidFailure, events.ActorBear, events.RaidPayload(present, honey))
	}
	b.transition(StateWatching)
	return ok
}

// Cure disengages for the configured recovery duration. The sleep
// happens outside any lock so bee returns are never blocked on it.
func (b *Bear) Cure() {
	b.transition(StateRecovering)
	b.sink.Record(events.KindRecoveryStart, events.ActorBear, events.RecoveryPayload(b.cfg.Recovery))
	time.Sleep(b.cfg.Recovery)
	b.sink.Record(events.KindRecoveryEnd, events.ActorBear, events.RecoveryPayload(b.cfg.Recovery))
	b.transition(StateWatching)
}

// loop parks on the colony's watch condition until the honey
// threshold is met or a stop arrives. A successful raid re-checks the
// threshold immediately; a failed one triggers recovery first.
func (b *Bear) loop() {
	defer b.wg.Done()

	for {
		if !b.colony.WaitHoney(b.cfg.RaidThreshold, b.isHalted) {
			b.transition(StateStopped)
			b.sink.Record(events.KindShutdown, events.ActorBear, nil)
			return
		}
		if b.Attack() {
			continue
		}
		b.Cure()
	}
}

func (b *Bear) transition(s State) {
	b.mu.Lock()
	if b.state != StateStopped {
		b.state = s
	}
	b.mu.Unlock()
}
