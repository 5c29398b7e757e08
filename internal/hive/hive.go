// Package hive implements the colony side of the apiary simulation: a
// fixed population of bee workers, the FIFO present-queue of bees at
// home, the bounded honey counter, and the release loop that sends
// bees out hunting.
//
// All shared state (present-queue, honey, stop flag) is guarded by one
// colony mutex; the release and watch condition variables both hang
// off that mutex. The honey counter is never read or written outside
// it.
package hive

import (
	"fmt"
	"sync"
	"time"

	"github.com/deeklead/apiary/internal/events"
	"github.com/deeklead/apiary/internal/sampler"
)

// Config carries the colony's start-time parameters.
type Config struct {
	// Population is the fixed number of bees. At least 2: the release
	// loop always keeps one bee at home as an anchor, so a population
	// of 1 would never hunt.
	Population int

	// HoneyCap bounds the honey counter.
	HoneyCap int

	// RaidGuard is the at-home count that repels a raid: TryRaid
	// succeeds only while fewer bees are present.
	RaidGuard int

	// Hunt bounds a bee's sampled hunt duration.
	Hunt sampler.Range

	// Interval bounds the pause between two releases.
	Interval sampler.Range
}

// Colony owns the bees, the present-queue, and the honey counter.
// Create with New, start the actors with Start, and shut down with
// Stop. Shutdown is irreversible.
type Colony struct {
	cfg  Config
	rng  *sampler.Sampler
	sink events.Sink

	mu      sync.Mutex
	release *sync.Cond // release loop parks here until Size() > 1 or stop
	watch   *sync.Cond // honey watchers park here until threshold or stop
	present []*Bee     // FIFO of bees at home
	honey   int
	stopped bool

	bees     []*Bee
	beeWG    sync.WaitGroup
	loopWG   sync.WaitGroup
	started  bool
	stopOnce sync.Once
}

// New creates a colony with its full population constructed but no
// goroutine running yet.
func New(cfg Config, rng *sampler.Sampler, sink events.Sink) *Colony {
	if sink == nil {
		sink = events.Nop{}
	}
	c := &Colony{
		cfg:  cfg,
		rng:  rng,
		sink: sink,
	}
	c.release = sync.NewCond(&c.mu)
	c.watch = sync.NewCond(&c.mu)

	c.bees = make([]*Bee, cfg.Population)
	c.present = make([]*Bee, 0, cfg.Population)
	for i := range c.bees {
		b := newBee(i)
		c.bees[i] = b
		c.present = append(c.present, b)
	}
	return c
}

// Start launches one goroutine per bee plus the release loop. The
// whole population exists before the first goroutine runs.
func (c *Colony) Start() {
	c.mu.Lock()
	if c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	for _, b := range c.bees {
		c.beeWG.Add(1)
		go b.run(c)
	}
	c.loopWG.Add(1)
	go c.loop()
}

// Stop signals every actor parked on colony state, then joins the
// release loop and all bee goroutines. Safe to call more than once;
// every call blocks until shutdown is complete. A bee mid-hunt delays
// shutdown by at most its remaining hunt duration.
func (c *Colony) Stop() {
	c.stopOnce.Do(func() {
		c.mu.Lock()
		c.stopped = true
		c.release.Broadcast()
		c.watch.Broadcast()
		c.mu.Unlock()

		for _, b := range c.bees {
			b.stop()
		}
	})
	c.loopWG.Wait()
	c.beeWG.Wait()
}

// Size returns the number of bees currently at home.
func (c *Colony) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.present)
}

// Honey returns the current honey level.
func (c *Colony) Honey() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.honey
}

// Population returns the fixed number of bees.
func (c *Colony) Population() int {
	return len(c.bees)
}

// HuntingCount returns the number of bees currently out hunting.
func (c *Colony) HuntingCount() int {
	n := 0
	for _, b := range c.bees {
		if b.State() == BeeHunting {
			n++
		}
	}
	return n
}

// Bees returns the colony's workers. The slice must not be mutated.
func (c *Colony) Bees() []*Bee {
	return c.bees
}

// ReleaseOne pops the front of the present-queue, samples a hunt
// duration, records the release, and directs the popped bee. The
// release loop only calls this after checking Size() > 1 under the
// lock; calling it on an empty or stopped colony is a no-op. A stop
// can still land between the pop and the directive, so DirectHunt
// refuses a bee that has already exited.
func (c *Colony) ReleaseOne() {
	c.mu.Lock()
	if len(c.present) == 0 || c.stopped {
		c.mu.Unlock()
		return
	}
	b := c.present[0]
	c.present = c.present[1:]
	c.mu.Unlock()

	d := c.rng.Duration(c.cfg.Hunt)
	c.sink.Record(events.KindRelease, events.ActorHive, events.ReleasePayload(b.ID(), d))
	b.DirectHunt(d)
}

// ReturnBee pushes a bee back onto the present-queue, bumps the honey
// counter (capped), and wakes both the release loop and any honey
// watcher.
func (c *Colony) ReturnBee(b *Bee) {
	c.mu.Lock()
	c.present = append(c.present, b)
	if c.honey < c.cfg.HoneyCap {
		c.honey++
	}
	honey := c.honey
	c.release.Broadcast()
	c.watch.Broadcast()
	c.mu.Unlock()

	c.sink.Record(events.KindReturn, beeActor(b.ID()), events.ReturnPayload(b.ID(), honey))
}

// TryRaid atomically checks colony strength and, if fewer than
// RaidGuard bees are home, resets the honey counter and reports
// success. This is the single authority on "too weak to defend":
// callers must not infer strength separately. The check-and-reset
// serializes with ReturnBee on the colony mutex.
func (c *Colony) TryRaid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.present) >= c.cfg.RaidGuard {
		return false
	}
	c.honey = 0
	return true
}

// RaidSnapshot returns the present count and honey level in one
// locked read, for raid event payloads.
func (c *Colony) RaidSnapshot() (present, honey int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.present), c.honey
}

// WaitHoney parks the caller until the honey counter reaches
// threshold, the colony stops, or halted reports true. It returns
// true only when the threshold was reached on a live colony. halted
// may be nil. The predicate is re-checked after every wakeup.
func (c *Colony) WaitHoney(threshold int, halted func() bool) bool {
	stop := func() bool { return halted != nil && halted() }

	c.mu.Lock()
	defer c.mu.Unlock()
	for c.honey < threshold && !c.stopped && !stop() {
		c.watch.Wait()
	}
	return c.honey >= threshold && !c.stopped && !stop()
}

// WakeWatchers wakes everyone parked in WaitHoney so they can
// re-check their predicates. Called by external actors on their own
// shutdown.
func (c *Colony) WakeWatchers() {
	c.mu.Lock()
	c.watch.Broadcast()
	c.mu.Unlock()
}

// loop is the colony's release loop. It keeps at least one bee at
// home as an anchor: releasing the last bee would starve the loop of
// return-driven wakeups.
func (c *Colony) loop() {
	defer c.loopWG.Done()

	for {
		c.mu.Lock()
		for len(c.present) <= 1 && !c.stopped {
			c.release.Wait()
		}
		if c.stopped {
			c.mu.Unlock()
			c.sink.Record(events.KindShutdown, events.ActorHive, nil)
			return
		}
		c.mu.Unlock()

		c.ReleaseOne()
		c.pause()
	}
}

// pause sleeps a sampled release interval between releases. This is a
// timed pause, not a lock wait: returns keep flowing while the loop
// rests.
func (c *Colony) pause() {
	time.Sleep(c.rng.Duration(c.cfg.Interval))
}

func beeActor(id int) string {
	return fmt.Sprintf("bee/%d", id)
}
