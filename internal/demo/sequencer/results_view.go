package sequencer

import (
	"net/url"
	"sort"
	"strings"

	"funnelzip-demo/internal/common/errors"
	"funnelzip-demo/internal/models"
)

// Expandable sections on the results step.
const (
	SectionCriticalIssues      = "critical-issues"
	SectionOptimizationSummary = "optimization-summary"
)

const demoRequestPath = "/contact"

type resultsView struct {
	expanded        map[string]bool
	demoRequestOpen bool
}

// ResultsViewState is the UI state of the results step.
type ResultsViewState struct {
	ExpandedSections []string `json:"expandedSections"`
	DemoRequestOpen  bool     `json:"demoRequestOpen"`
}

func newResultsView() resultsView {
	return resultsView{expanded: map[string]bool{
		SectionCriticalIssues:      false,
		SectionOptimizationSummary: false,
	}}
}

func (v resultsView) state() ResultsViewState {
	out := ResultsViewState{ExpandedSections: []string{}, DemoRequestOpen: v.demoRequestOpen}
	for id, open := range v.expanded {
		if open {
			out.ExpandedSections = append(out.ExpandedSections, id)
		}
	}
	sort.Strings(out.ExpandedSections)
	return out
}

func (s *Sequencer) resultsLocked() error {
	if s.closed {
		return errors.NewInvalidRequestError("demo session is closed")
	}
	if s.step != models.StepResults {
		return errors.NewInvalidRequestError("not on the results step")
	}
	return nil
}

// ToggleSection flips an expandable section and returns its new state.
func (s *Sequencer) ToggleSection(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resultsLocked(); err != nil {
		return false, err
	}
	open, ok := s.view.expanded[id]
	if !ok {
		return false, errors.NewUnknownSectionError(id)
	}
	s.view.expanded[id] = !open
	return !open, nil
}

func (s *Sequencer) OpenDemoRequest() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resultsLocked(); err != nil {
		return err
	}
	s.view.demoRequestOpen = true
	return nil
}

func (s *Sequencer) CloseDemoRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view.demoRequestOpen = false
}

// SubmitDemoRequest closes the "Request Demo" modal and returns the
// contact page path with the email prefilled.
func (s *Sequencer) SubmitDemoRequest(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.resultsLocked(); err != nil {
		return "", err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "", errors.NewValidationError("email", "please enter your email address")
	}
	s.view.demoRequestOpen = false
	return demoRequestPath + "?email=" + url.QueryEscape(email), nil
}
