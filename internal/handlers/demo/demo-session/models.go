package demosession

import "funnelzip-demo/internal/demo/sequencer"

type SessionOutput struct {
	SessionID string `json:"sessionId"`
	sequencer.State
}

// SelectionInput replaces the selection. Without platformIds the sample's
// default platforms are applied.
type SelectionInput struct {
	SampleIndex *int     `json:"sampleIndex"`
	PlatformIDs []string `json:"platformIds"`
}

type AdvanceOutput struct {
	SessionOutput
	Advanced bool `json:"advanced"`
}

type ToggleOutput struct {
	SessionOutput
	Toggled  string `json:"toggled"`
	Expanded bool   `json:"expanded"`
}

type DemoRequestInput struct {
	Action string `json:"action"` // open | close | submit
	Email  string `json:"email"`
}

type RedirectOutput struct {
	SessionOutput
	Redirect string `json:"redirect,omitempty"`
}
