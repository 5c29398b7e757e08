package bear

import (
	"testing"
	"time"

	"github.com/deeklead/apiary/internal/events"
	"github.com/deeklead/apiary/internal/hive"
	"github.com/deeklead/apiary/internal/sampler"
)

// testColony creates an unstarted colony with the given number of bees
// left at home and the given honey level.
func testColony(t *testing.T, population, present, honey int, sink events.Sink) *hive.Colony {
	t.Helper()
	c := hive.New(hive.Config{
		Population: population,
		HoneyCap:   30,
		RaidGuard:  3,
		Hunt:       sampler.Range{Min: 10 * time.Millisecond, Max: 20 * time.Millisecond},
		Interval:   sampler.Range{Min: 5 * time.Millisecond, Max: 10 * time.Millisecond},
	}, sampler.New(1), sink)

	// Pump honey through the public path first: release the front bee
	// and return it. The queue rotates, so pump i pops bee i mod n.
	for i := 0; i < honey; i++ {
		b := c.Bees()[i%population]
		c.ReleaseOne()
		c.ReturnBee(b)
	}
	for i := 0; i < population-present; i++ {
		c.ReleaseOne()
	}
	if c.Honey() != honey {
		t.Fatalf("setup: honey = %d, want %d", c.Honey(), honey)
	}
	return c
}

func testBear(colony *hive.Colony, sink events.Sink) *Bear {
	return New(Config{
		RaidThreshold: 15,
		Recovery:      20 * time.Millisecond,
	}, colony, sink)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateWatching, "watching"},
		{StateRaiding, "raiding"},
		{StateRecovering, "recovering"},
		{StateStopped, "stopped"},
		{State(99), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", tc.state, got, tc.want)
		}
	}
}

func TestAttackWeakColony(t *testing.T) {
	// Two bees home: the raid succeeds and resets the honey counter.
	sink := events.NewMemorySink("test")
	c := testColony(t, 5, 2, 15, events.Nop{})
	b := testBear(c, sink)

	if !b.Attack() {
		t.Fatal("Attack() = false against a weak colony, want true")
	}
	if c.Honey() != 0 {
		t.Errorf("honey = %d after successful raid, want 0", c.Honey())
	}
	if sink.Count(events.KindRaidSuccess) != 1 {
		t.Errorf("raid_success events = %d, want 1", sink.Count(events.KindRaidSuccess))
	}
}

func TestAttackStrongColony(t *testing.T) {
	// Four bees home: the raid fails and the honey is untouched.
	sink := events.NewMemorySink("test")
	c := testColony(t, 5, 4, 15, events.Nop{})
	b := testBear(c, sink)

	if b.Attack() {
		t.Fatal("Attack() = true against a strong colony, want false")
	}
	if c.Honey() != 15 {
		t.Errorf("honey = %d after failed raid, want 15", c.Honey())
	}
	if sink.Count(events.KindRaidFailure) != 1 {
		t.Errorf("raid_failure events = %d, want 1", sink.Count(events.KindRaidFailure))
	}
}

func TestCureRecordsRecovery(t *testing.T) {
	sink := events.NewMemorySink("test")
	c := testColony(t, 5, 4, 0, events.Nop{})
	b := testBear(c, sink)

	start := time.Now()
	b.Cure()
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("Cure returned after %v, want at least the 20ms recovery", elapsed)
	}

	if sink.Count(events.KindRecoveryStart) != 1 || sink.Count(events.KindRecoveryEnd) != 1 {
		t.Error("expected one recovery_start and one recovery_end event")
	}
	if b.State() != StateWatching {
		t.Errorf("state after Cure = %v, want watching", b.State())
	}
}

func TestLoopRaidsWhenThresholdMet(t *testing.T) {
	// Weak colony with honey already at the threshold: the loop wakes,
	// raids successfully, then parks again on the emptied counter.
	sink := events.NewMemorySink("test")
	c := testColony(t, 2, 2, 15, events.Nop{})
	b := testBear(c, sink)

	b.Start()

	deadline := time.After(2 * time.Second)
	for c.Honey() != 0 {
		select {
		case <-deadline:
			t.Fatal("bear never raided")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	b.Stop()

	if sink.Count(events.KindRaidSuccess) != 1 {
		t.Errorf("raid_success events = %d, want 1", sink.Count(events.KindRaidSuccess))
	}
	if sink.Count(events.KindShutdown) != 1 {
		t.Errorf("shutdown events = %d, want 1", sink.Count(events.KindShutdown))
	}
	if b.State() != StateStopped {
		t.Errorf("state = %v after Stop, want stopped", b.State())
	}
}

func TestStopWhileParked(t *testing.T) {
	sink := events.NewMemorySink("test")
	c := testColony(t, 5, 5, 0, events.Nop{})
	b := testBear(c, sink)

	b.Start()
	time.Sleep(20 * time.Millisecond) // let the loop park on the watch condition

	done := make(chan struct{})
	go func() {
		b.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not unpark the bear")
	}

	if b.State() != StateStopped {
		t.Errorf("state = %v, want stopped", b.State())
	}
}

func TestStopIdempotent(t *testing.T) {
	c := testColony(t, 5, 5, 0, events.Nop{})
	b := testBear(c, events.Nop{})

	b.Start()
	b.Stop()
	b.Stop()

	if b.State() != StateStopped {
		t.Errorf("state = %v after double Stop, want stopped", b.State())
	}
}

func TestStopToleratesColonyStoppingFirst(t *testing.T) {
	c := testColony(t, 5, 5, 0, events.Nop{})
	b := testBear(c, events.Nop{})

	b.Start()
	time.Sleep(10 * time.Millisecond)

	// Shutdown order is independent: colony first, then bear.
	c.Stop()
	b.Stop()

	if b.State() != StateStopped {
		t.Errorf("state = %v, want stopped", b.State())
	}
}
