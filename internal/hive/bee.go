package hive

import (
	"sync"
	"time"

	"github.com/deeklead/apiary/internal/events"
)

// BeeState is the location state of a single bee.
type BeeState int

// Bee states. A bee cycles AtHome -> Hunting -> AtHome until stopped.
const (
	BeeAtHome BeeState = iota
	BeeHunting
	BeeStopped
)

// String returns a human-readable state name.
func (s BeeState) String() string {
	switch s {
	case BeeAtHome:
		return "at_home"
	case BeeHunting:
		return "hunting"
	case BeeStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Bee is a single worker actor. It is exclusively owned by its Colony
// and runs on a dedicated goroutine for its entire lifetime.
//
// All fields below the mutex are guarded by it; no other bee ever
// touches this state.
type Bee struct {
	id int

	mu       sync.Mutex
	cond     *sync.Cond
	state    BeeState
	huntFor  time.Duration
	directed bool
	stopping bool
}

// newBee creates a bee at home. IDs are assigned once and never reused.
func newBee(id int) *Bee {
	b := &Bee{id: id, state: BeeAtHome}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// ID returns the bee's stable identifier.
func (b *Bee) ID() int {
	return b.id
}

// State returns the bee's current location state.
func (b *Bee) State() BeeState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// DirectHunt sends the bee out for the given duration and wakes its
// run loop. The colony's queue discipline guarantees this is only
// called while the bee is at home: a bee is directed only after being
// popped from the present-queue. A bee that has already stopped
// ignores the directive.
func (b *Bee) DirectHunt(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == BeeStopped {
		return
	}
	b.state = BeeHunting
	b.huntFor = d
	b.directed = true
	b.cond.Broadcast()
}

// stop signals the bee to exit its run loop. Idempotent; safe to
// signal any number of times. A bee mid-hunt finishes its hunt and
// returns home before noticing the flag.
func (b *Bee) stop() {
	b.mu.Lock()
	b.stopping = true
	b.cond.Broadcast()
	b.mu.Unlock()
}

// run is the bee's lifetime loop. It blocks on the private condition
// until directed or stopped. Hunts are not cancellable mid-flight; a
// stop during a hunt takes effect after the return.
func (b *Bee) run(c *Colony) {
	defer c.beeWG.Done()

	for {
		b.mu.Lock()
		for !b.directed && !b.stopping {
			b.cond.Wait()
		}
		if !b.directed {
			// Stop with no pending directive: exit immediately.
			b.state = BeeStopped
			b.mu.Unlock()
			c.sink.Record(events.KindShutdown, beeActor(b.id), nil)
			return
		}
		b.directed = false
		d := b.huntFor
		b.mu.Unlock()

		time.Sleep(d)

		b.mu.Lock()
		b.state = BeeAtHome
		b.mu.Unlock()

		c.ReturnBee(b)
	}
}
