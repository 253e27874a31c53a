// Package animator drives the 0..100 scan progress counter.
package animator

import (
	"sync"
	"time"

	"funnelzip-demo/internal/models"
)

const (
	DefaultInterval = 80 * time.Millisecond
	maxPercent      = 100
)

// Config controls a progress animator. An Interval of zero or less
// disables the internal ticker; the caller then drives the run with Step.
type Config struct {
	Interval   time.Duration
	CheckCount int
}

// CompletionFunc is invoked once per run, after percent reaches 100. It
// runs without the animator lock held.
type CompletionFunc func(run uint64)

// Animator is a cancelable progress counter. Each Start begins a new run
// identified by a generation number; ticks from older runs are dropped.
type Animator struct {
	mu         sync.Mutex
	interval   time.Duration
	checkCount int
	onComplete CompletionFunc

	gen      uint64
	percent  int
	active   bool
	complete bool
	stop     chan struct{}
}

func New(cfg Config, onComplete CompletionFunc) *Animator {
	return &Animator{
		interval:   cfg.Interval,
		checkCount: cfg.CheckCount,
		onComplete: onComplete,
	}
}

// Start cancels any current run, resets percent to 0 and begins a new run.
func (a *Animator) Start() uint64 {
	a.mu.Lock()
	a.cancelLocked()
	a.gen++
	a.percent = 0
	a.complete = false
	a.active = true
	run := a.gen

	var stop chan struct{}
	if a.interval > 0 {
		stop = make(chan struct{})
		a.stop = stop
	}
	a.mu.Unlock()

	if stop != nil {
		go a.loop(run, stop)
	}
	return run
}

func (a *Animator) loop(run uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !a.tick(run) {
				return
			}
		}
	}
}

// Step performs one tick of the current run synchronously. It reports
// whether the run is still active afterwards.
func (a *Animator) Step() bool {
	a.mu.Lock()
	run := a.gen
	a.mu.Unlock()
	return a.tick(run)
}

// tick advances run by one percent. Returns false once run is no longer
// the active one or has completed.
func (a *Animator) tick(run uint64) bool {
	a.mu.Lock()
	if run != a.gen || !a.active {
		a.mu.Unlock()
		return false
	}
	a.percent++
	if a.percent < maxPercent {
		a.mu.Unlock()
		return true
	}

	a.percent = maxPercent
	a.complete = true
	a.active = false
	a.stop = nil
	cb := a.onComplete
	a.mu.Unlock()

	if cb != nil {
		cb(run)
	}
	return false
}

// Stop cancels the pending tick. Progress is kept as-is; a later Start
// resets it.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
}

// Reset cancels the run and zeroes progress.
func (a *Animator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
	a.percent = 0
	a.complete = false
}

func (a *Animator) cancelLocked() {
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
	if a.active {
		a.active = false
		a.gen++
	}
}

// Snapshot returns the current progress.
func (a *Animator) Snapshot() models.ScanProgress {
	a.mu.Lock()
	defer a.mu.Unlock()
	return models.ScanProgress{
		Percent:           a.percent,
		CurrentCheckIndex: models.CheckIndex(a.percent, a.checkCount),
		CheckCount:        a.checkCount,
		Complete:          a.complete,
	}
}

// Running reports whether a run is in progress.
func (a *Animator) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

// Run returns the generation of the latest run.
func (a *Animator) Run() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen
}
