package alarm

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Runner drives the scheduler at a fixed tick. The Tolerance policy absorbs
// tick jitter, so a late tick still fires the trigger it covers.
type Runner struct {
	engine   *Engine
	tick     time.Duration
	ticker   *time.Ticker
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func (e *Engine) NewRunner(tick time.Duration) *Runner {
	return &Runner{
		engine:   e,
		tick:     tick,
		stopChan: make(chan struct{}),
	}
}

func (r *Runner) Start() {
	logger := schedulerLogger()
	logger.Info("Starting scheduler runner", zap.Duration("tick", r.tick))

	r.ticker = time.NewTicker(r.tick)
	r.wg.Add(1)
	go r.run()
}

func (r *Runner) Stop() {
	close(r.stopChan)
	if r.ticker != nil {
		r.ticker.Stop()
	}
	r.wg.Wait()
	schedulerLogger().Info("Scheduler runner stopped")
}

func (r *Runner) run() {
	defer r.wg.Done()

	// Evaluate once on start so a restart inside a tolerance window does
	// not miss the trigger.
	r.engine.Scheduler.Evaluate(r.engine.now())

	for {
		select {
		case <-r.stopChan:
			return
		case <-r.ticker.C:
			r.engine.Scheduler.Evaluate(r.engine.now())
		}
	}
}
