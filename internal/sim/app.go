// Package sim wires the colony and the bear into one runnable
// application and owns their lifecycles.
package sim

import (
	"context"
	"log"
	"sync"

	"github.com/deeklead/apiary/internal/bear"
	"github.com/deeklead/apiary/internal/config"
	"github.com/deeklead/apiary/internal/events"
	"github.com/deeklead/apiary/internal/hive"
	"github.com/deeklead/apiary/internal/sampler"
)

// App owns one colony and one bear. Start launches every actor
// goroutine; Stop signals both (order-independent) and joins every
// goroutine before returning. The app cannot be restarted after Stop.
type App struct {
	colony *hive.Colony
	bear   *bear.Bear
	logger *log.Logger

	stopOnce sync.Once
}

// New builds the full simulation from config. The entire population is
// constructed here; no goroutine runs until Start.
func New(cfg *config.Config, sink events.Sink, logger *log.Logger) *App {
	rng := sampler.New(cfg.Seed)

	colony := hive.New(hive.Config{
		Population: cfg.Population,
		HoneyCap:   cfg.HoneyCap,
		RaidGuard:  cfg.RaidGuard,
		Hunt:       cfg.HuntRange(),
		Interval:   cfg.ReleaseRange(),
	}, rng, sink)

	return &App{
		colony: colony,
		bear: bear.New(bear.Config{
			RaidThreshold: cfg.RaidThreshold,
			Recovery:      cfg.Recovery.Duration,
		}, colony, sink),
		logger: logger,
	}
}

// Colony exposes the colony for status reads.
func (a *App) Colony() *hive.Colony {
	return a.colony
}

// Bear exposes the bear for status reads.
func (a *App) Bear() *bear.Bear {
	return a.bear
}

// Start launches the colony's bees and release loop, then the bear.
func (a *App) Start() {
	a.logger.Printf("starting colony: %d bees", a.colony.Population())
	a.colony.Start()
	a.bear.Start()
}

// Stop shuts down the bear and the colony and joins every goroutine.
// Safe to call more than once; every call blocks until shutdown is
// complete. Shutdown latency is bounded by the longest outstanding
// hunt (plus any in-flight recovery sleep), not by their sum.
func (a *App) Stop() {
	a.stopOnce.Do(func() {
		a.logger.Println("stopping simulation")
	})
	a.bear.Stop()
	a.colony.Stop()
}

// Run starts the simulation and blocks until ctx is done, then shuts
// down. The run duration is whatever deadline or cancellation the
// caller attached to ctx.
func (a *App) Run(ctx context.Context) {
	a.Start()
	<-ctx.Done()
	a.Stop()
	a.logger.Printf("simulation stopped: honey=%d, %d/%d bees home",
		a.colony.Honey(), a.colony.Size(), a.colony.Population())
}
