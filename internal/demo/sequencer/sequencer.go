// Package sequencer owns the three-step scripted demo: product input, the
// simulated scan, and the canned results.
package sequencer

import (
	"context"
	"sync"
	"time"

	"funnelzip-demo/internal/common/errors"
	"funnelzip-demo/internal/common/logger"
	"funnelzip-demo/internal/common/metrics"
	"funnelzip-demo/internal/common/observability"
	"funnelzip-demo/internal/demo/animator"
	"funnelzip-demo/internal/models"
)

// Catalog is the fixture data a sequencer reads from.
type Catalog interface {
	SampleCount() int
	Sample(i int) (models.ProductSample, bool)
	HasPlatform(id string) bool
	Checks() []models.CheckDescriptor
	CheckCount() int
}

// Hooks are host callbacks. Both run without any sequencer lock held and
// may be nil.
type Hooks struct {
	// OnAdvanceRequested fires after every transition, and when a scan
	// completes so the host can offer the results step.
	OnAdvanceRequested func(from, to models.DemoStep)
	OnReturnHome       func()
}

type Config struct {
	TickInterval time.Duration
	// AutoAdvance moves straight to results when the scan completes.
	AutoAdvance bool
}

type Options struct {
	Config        Config
	Hooks         Hooks
	Logger        logger.Logger
	Observability *observability.Observability
}

// Sequencer is the state of one demo session.
type Sequencer struct {
	mu      sync.Mutex
	catalog Catalog
	config  Config
	hooks   Hooks
	log     logger.Logger
	obs     *observability.Observability

	step        models.DemoStep
	selection   models.Selection
	anim        *animator.Animator
	run         uint64
	scanStarted time.Time
	view        resultsView
	closed      bool
}

// State is a read-only snapshot of a sequencer.
type State struct {
	Step           models.DemoStep     `json:"step"`
	StepNumber     int                 `json:"stepNumber"`
	Selection      models.Selection    `json:"selection"`
	SelectionValid bool                `json:"selectionValid"`
	Progress       models.ScanProgress `json:"progress"`
	CurrentCheck   string              `json:"currentCheck,omitempty"`
	Results        ResultsViewState    `json:"results"`
}

// New returns a sequencer on the input step with the first sample
// prefilled.
func New(cat Catalog, opts Options) *Sequencer {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	s := &Sequencer{
		catalog: cat,
		config:  opts.Config,
		hooks:   opts.Hooks,
		log:     log,
		obs:     opts.Observability,
		step:    models.StepInput,
		view:    newResultsView(),
	}
	s.anim = animator.New(animator.Config{
		Interval:   opts.Config.TickInterval,
		CheckCount: cat.CheckCount(),
	}, s.onScanComplete)
	s.selection = s.prefill(0)
	return s
}

func (s *Sequencer) prefill(i int) models.Selection {
	sample, ok := s.catalog.Sample(i)
	if !ok {
		return models.EmptySelection()
	}
	return models.Selection{SampleIndex: i, PlatformIDs: append([]string(nil), sample.DefaultPlatformIDs...)}
}

// CurrentStep returns the active step.
func (s *Sequencer) CurrentStep() models.DemoStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Select replaces the selection. Only allowed on the input step; an
// invalid selection is stored and simply blocks Advance. Platform ids are
// a set: repeats keep their first position.
func (s *Sequencer) Select(sel models.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	s.selection = models.Selection{SampleIndex: sel.SampleIndex, PlatformIDs: uniqueIDs(sel.PlatformIDs)}
	return nil
}

func uniqueIDs(ids []string) []string {
	if ids == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ChooseSample picks sample i and replaces the platforms with its defaults.
func (s *Sequencer) ChooseSample(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	if _, ok := s.catalog.Sample(i); !ok {
		return errors.NewValidationError("sampleIndex", "unknown sample")
	}
	s.selection = s.prefill(i)
	return nil
}

// TogglePlatform adds or removes one platform id from the selection.
func (s *Sequencer) TogglePlatform(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editableLocked(); err != nil {
		return err
	}
	if !s.catalog.HasPlatform(id) {
		return errors.NewValidationError("platformIds", "unknown platform "+id)
	}
	ids := s.selection.PlatformIDs[:0:0]
	found := false
	for _, p := range s.selection.PlatformIDs {
		if p == id {
			found = true
			continue
		}
		ids = append(ids, p)
	}
	if !found {
		ids = append(ids, id)
	}
	s.selection.PlatformIDs = ids
	return nil
}

func (s *Sequencer) editableLocked() error {
	if s.closed {
		return errors.NewInvalidRequestError("demo session is closed")
	}
	if s.step != models.StepInput {
		return errors.NewInvalidRequestError("selection can only change on the input step")
	}
	return nil
}

// Advance moves Input→Scanning with a valid selection, or
// Scanning→Results once the scan is at 100 percent. Anything else is
// ignored. It returns the resulting step and whether it changed.
func (s *Sequencer) Advance() (models.DemoStep, bool) {
	s.mu.Lock()
	if s.closed {
		step := s.step
		s.mu.Unlock()
		return step, false
	}

	from := s.step
	switch s.step {
	case models.StepInput:
		if !s.selection.Valid(s.catalog.SampleCount(), s.catalog.HasPlatform) {
			s.mu.Unlock()
			return from, false
		}
		s.step = models.StepScanning
		s.scanStarted = time.Now()
		s.run = s.anim.Start()
	case models.StepScanning:
		if s.anim.Snapshot().Percent < 100 {
			s.mu.Unlock()
			return from, false
		}
		s.step = models.StepResults
	default:
		s.mu.Unlock()
		return from, false
	}
	to := s.step
	hook := s.hooks.OnAdvanceRequested
	s.mu.Unlock()

	s.transitioned(from, to)
	if hook != nil {
		hook(from, to)
	}
	return to, true
}

func (s *Sequencer) transitioned(from, to models.DemoStep) {
	metrics.DemoStepTransitions.WithLabelValues(from.String(), to.String()).Inc()
	s.log.Debug("demo step changed", map[string]interface{}{
		"from": from.String(),
		"to":   to.String(),
	})
}

// onScanComplete is the animator completion callback.
func (s *Sequencer) onScanComplete(run uint64) {
	s.mu.Lock()
	if s.closed || s.step != models.StepScanning || run != s.run {
		s.mu.Unlock()
		return
	}
	elapsed := time.Since(s.scanStarted)
	auto := s.config.AutoAdvance
	if auto {
		s.step = models.StepResults
	}
	hook := s.hooks.OnAdvanceRequested
	s.mu.Unlock()

	metrics.DemoScansCompleted.Inc()
	s.obs.RecordScanDuration(context.Background(), elapsed)
	s.log.Info("scan complete", map[string]interface{}{
		"elapsedMs":   elapsed.Milliseconds(),
		"autoAdvance": auto,
	})

	if auto {
		s.transitioned(models.StepScanning, models.StepResults)
	}
	if hook != nil {
		hook(models.StepScanning, models.StepResults)
	}
}

// Tick advances a manually driven scan by one percent. It is a no-op
// outside the scanning step.
func (s *Sequencer) Tick() {
	s.mu.Lock()
	if s.closed || s.step != models.StepScanning {
		s.mu.Unlock()
		return
	}
	anim := s.anim
	s.mu.Unlock()

	// Step may call onScanComplete, which takes s.mu.
	anim.Step()
}

// Restart returns to the input step from anywhere, cancelling any scan
// and clearing the selection and results view.
func (s *Sequencer) Restart() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	from := s.restartLocked()
	s.mu.Unlock()

	if from != models.StepInput {
		s.transitioned(from, models.StepInput)
	}
}

func (s *Sequencer) restartLocked() models.DemoStep {
	from := s.step
	s.anim.Reset()
	s.run = 0
	s.step = models.StepInput
	s.selection = models.EmptySelection()
	s.view = newResultsView()
	return from
}

// ReturnHome restarts and then hands control back to the host.
func (s *Sequencer) ReturnHome() {
	s.Restart()
	if s.hooks.OnReturnHome != nil {
		s.hooks.OnReturnHome()
	}
}

// Close cancels any running scan. The sequencer ignores every later call.
func (s *Sequencer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.anim.Stop()
	s.closed = true
}

// Closed reports whether Close has been called.
func (s *Sequencer) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Snapshot returns the full session state.
func (s *Sequencer) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress := s.anim.Snapshot()
	st := State{
		Step:           s.step,
		StepNumber:     s.step.Number(),
		Selection:      s.selection.Clone(),
		SelectionValid: s.selection.Valid(s.catalog.SampleCount(), s.catalog.HasPlatform),
		Progress:       progress,
		Results:        s.view.state(),
	}
	if s.step == models.StepScanning {
		checks := s.catalog.Checks()
		if progress.CurrentCheckIndex < len(checks) {
			st.CurrentCheck = checks[progress.CurrentCheckIndex].Text
		}
	}
	return st
}
