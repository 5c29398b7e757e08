// Package philo is the dining-philosophers sibling demo: deadlock
// avoidance through best-effort simultaneous acquisition of both
// forks. A philosopher that cannot take both forks at once takes
// neither and retries; shutdown is a flag flip, each worker's next
// attempt simply stops.
package philo

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// retryPause keeps the attempt loop from pegging a core while a
// neighbor holds a fork.
const retryPause = time.Millisecond

// Fork is a shared utensil. Take it only via TryTake.
type Fork struct {
	mu sync.Mutex
}

// TryTake attempts to pick up the fork without blocking.
func (f *Fork) TryTake() bool {
	return f.mu.TryLock()
}

// Release puts the fork down.
func (f *Fork) Release() {
	f.mu.Unlock()
}

// Philosopher holds references to its two forks and counts meals.
// Meals is only read after the philosopher's goroutine has been
// joined.
type Philosopher struct {
	id    int
	left  *Fork
	right *Fork
	meals int
}

// ID returns the philosopher's seat number.
func (p *Philosopher) ID() int {
	return p.id
}

// Meals returns how many times the philosopher has eaten. Only valid
// after the table's run has completed.
func (p *Philosopher) Meals() int {
	return p.meals
}

// dine attempts to take both forks at once. Holding one fork while
// waiting for the other is what deadlocks the naive version, so on a
// partial acquisition the held fork is released immediately.
func (p *Philosopher) dine() bool {
	if !p.left.TryTake() {
		return false
	}
	if !p.right.TryTake() {
		p.left.Release()
		return false
	}
	p.meals++
	p.right.Release()
	p.left.Release()
	return true
}

// Table seats n philosophers in a ring sharing n forks.
type Table struct {
	philosophers []*Philosopher
	forks        []*Fork

	finished atomic.Bool
	wg       sync.WaitGroup
}

// NewTable wires up the ring: philosopher i shares fork i-1 with its
// left neighbor and fork i+1 with its right.
func NewTable(n int) *Table {
	t := &Table{
		philosophers: make([]*Philosopher, n),
		forks:        make([]*Fork, n),
	}
	for i := range t.forks {
		t.forks[i] = &Fork{}
	}
	for i := range t.philosophers {
		left := i - 1
		if i == 0 {
			left = n - 1
		}
		right := (i + 1) % n
		t.philosophers[i] = &Philosopher{
			id:    i,
			left:  t.forks[left],
			right: t.forks[right],
		}
	}
	return t
}

// Philosophers returns the seated philosophers in seat order.
func (t *Table) Philosophers() []*Philosopher {
	return t.philosophers
}

// Run lets every philosopher dine until ctx is done, then joins all
// of them. Returns the meal count per seat.
func (t *Table) Run(ctx context.Context) []int {
	for _, p := range t.philosophers {
		t.wg.Add(1)
		go func(p *Philosopher) {
			defer t.wg.Done()
			for !t.finished.Load() {
				if !p.dine() {
					time.Sleep(retryPause)
				}
			}
		}(p)
	}

	<-ctx.Done()
	t.finished.Store(true)
	t.wg.Wait()

	meals := make([]int, len(t.philosophers))
	for i, p := range t.philosophers {
		meals[i] = p.Meals()
	}
	return meals
}
