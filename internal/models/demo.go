package models

import "fmt"

// DemoStep is the active step of the scripted product demo.
type DemoStep int

const (
	StepInput DemoStep = iota + 1
	StepScanning
	StepResults
)

func (s DemoStep) String() string {
	switch s {
	case StepInput:
		return "input"
	case StepScanning:
		return "scanning"
	case StepResults:
		return "results"
	}
	return fmt.Sprintf("DemoStep(%d)", int(s))
}

// Number is the 1-based position shown as "Step N of 3".
func (s DemoStep) Number() int {
	return int(s)
}

func (s DemoStep) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *DemoStep) UnmarshalText(b []byte) error {
	switch string(b) {
	case "input":
		*s = StepInput
	case "scanning":
		*s = StepScanning
	case "results":
		*s = StepResults
	default:
		return fmt.Errorf("unknown demo step %q", string(b))
	}
	return nil
}

// RiskLevel labels a sample product card.
type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
)

// ProductSample is an immutable sample product offered on the input step.
type ProductSample struct {
	Title              string    `json:"title"`
	Details            string    `json:"details"`
	DefaultPlatformIDs []string  `json:"defaultPlatformIds"`
	RiskLevel          RiskLevel `json:"riskLevel"`
}

// PlatformOption is an immutable selling channel.
type PlatformOption struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	IconRef     string `json:"iconRef"`
}

// CheckDescriptor is one row of the "Scanning Areas" list.
type CheckDescriptor struct {
	Text    string `json:"text"`
	Icon    string `json:"icon"`
	Tooltip string `json:"tooltip"`
}

// NoSample marks a Selection without a chosen sample.
const NoSample = -1

// Selection is built on the input step and discarded on restart.
type Selection struct {
	SampleIndex int      `json:"sampleIndex"`
	PlatformIDs []string `json:"platformIds"`
}

// EmptySelection has no sample and no platforms.
func EmptySelection() Selection {
	return Selection{SampleIndex: NoSample}
}

// HasPlatform reports whether id is in the platform set.
func (s Selection) HasPlatform(id string) bool {
	for _, p := range s.PlatformIDs {
		if p == id {
			return true
		}
	}
	return false
}

// Valid reports whether a sample in [0, sampleCount) is chosen and the
// platform set is non-empty with every id accepted by known.
func (s Selection) Valid(sampleCount int, known func(id string) bool) bool {
	if s.SampleIndex < 0 || s.SampleIndex >= sampleCount {
		return false
	}
	if len(s.PlatformIDs) == 0 {
		return false
	}
	for _, id := range s.PlatformIDs {
		if known != nil && !known(id) {
			return false
		}
	}
	return true
}

// Clone returns a copy that shares no backing array.
func (s Selection) Clone() Selection {
	out := Selection{SampleIndex: s.SampleIndex}
	if s.PlatformIDs != nil {
		out.PlatformIDs = append([]string(nil), s.PlatformIDs...)
	}
	return out
}

// ScanProgress is the animator state. Percent is non-decreasing within a
// run and frozen at 100.
type ScanProgress struct {
	Percent           int  `json:"percent"`
	CurrentCheckIndex int  `json:"currentCheckIndex"`
	CheckCount        int  `json:"checkCount"`
	Complete          bool `json:"complete"`
}

// CheckIndex maps percent onto [0, checkCount-1].
func CheckIndex(percent, checkCount int) int {
	if checkCount <= 0 {
		return 0
	}
	if percent < 0 {
		percent = 0
	}
	idx := percent * checkCount / 100
	if idx > checkCount-1 {
		idx = checkCount - 1
	}
	return idx
}
