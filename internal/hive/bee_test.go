package hive

import (
	"testing"
	"time"

	"github.com/deeklead/apiary/internal/events"
	"github.com/deeklead/apiary/internal/sampler"
)

func TestBeeStateString(t *testing.T) {
	tests := []struct {
		state BeeState
		want  string
	}{
		{BeeAtHome, "at_home"},
		{BeeHunting, "hunting"},
		{BeeStopped, "stopped"},
		{BeeState(99), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", tc.state, got, tc.want)
		}
	}
}

func TestBeeHuntCycle(t *testing.T) {
	c := testColony(t, 2)
	b := c.Bees()[0]

	// Run the bee's loop and direct it through one hunt cycle.
	c.beeWG.Add(1)
	go b.run(c)

	c.mu.Lock()
	c.present = c.present[1:] // pop bee 0, as ReleaseOne would
	c.mu.Unlock()

	b.DirectHunt(10 * time.Millisecond)

	// The bee must come home and bump the honey counter on its own.
	deadline := time.After(2 * time.Second)
	for c.Honey() == 0 {
		select {
		case <-deadline:
			t.Fatal("bee never returned from its hunt")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	if b.State() != BeeAtHome {
		t.Errorf("state after return = %v, want at_home", b.State())
	}
	if c.Size() != 2 {
		t.Errorf("Size() = %d, want 2", c.Size())
	}

	b.stop()
	c.beeWG.Wait()
}

func TestBeeStopWithoutDirective(t *testing.T) {
	c := testColony(t, 1)
	b := c.Bees()[0]

	c.beeWG.Add(1)
	go b.run(c)

	// Stop twice: the signal must be idempotent.
	b.stop()
	b.stop()
	c.beeWG.Wait()

	if b.State() != BeeStopped {
		t.Errorf("state = %v, want stopped", b.State())
	}
}

// TestShutdownLatencyBoundedByLongestHunt checks that stopping while
// several bees are mid-hunt waits for the longest outstanding hunt,
// not the sum of them.
func TestShutdownLatencyBoundedByLongestHunt(t *testing.T) {
	c := New(testConfig(4), sampler.New(1), events.Nop{})

	// Launch only the bee goroutines; the release loop stays out of
	// the way so hunt durations are exact.
	for _, b := range c.bees {
		c.beeWG.Add(1)
		go b.run(c)
	}

	durations := []time.Duration{
		100 * time.Millisecond,
		150 * time.Millisecond,
		200 * time.Millisecond,
	}
	for _, d := range durations {
		c.mu.Lock()
		b := c.present[0]
		c.present = c.present[1:]
		c.mu.Unlock()
		b.DirectHunt(d)
	}

	start := time.Now()
	c.Stop()
	elapsed := time.Since(start)

	// Bounded by max(d1, d2, d3) = 200ms with scheduling slack, and
	// well under the 450ms sum.
	if elapsed >= 400*time.Millisecond {
		t.Errorf("shutdown took %v, want under the 450ms sum of hunts", elapsed)
	}
	if elapsed < 150*time.Millisecond {
		t.Errorf("shutdown took %v, expected to wait out the longest hunt", elapsed)
	}

	if got := c.Size() + c.HuntingCount(); got != c.Population() {
		t.Errorf("present + hunting = %d after shutdown, want %d", got, c.Population())
	}
}
