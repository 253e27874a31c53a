package sequencer

import (
	"testing"

	"funnelzip-demo/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func atResults(t *testing.T) *Sequencer {
	t.Helper()
	s := newManual(t, Config{AutoAdvance: true}, Hooks{})
	s.Advance()
	runScan(s)
	return s
}

func TestToggleSection(t *testing.T) {
	s := atResults(t)

	open, err := s.ToggleSection(SectionCriticalIssues)
	require.NoError(t, err)
	assert.True(t, open)
	assert.Equal(t, []string{SectionCriticalIssues}, s.Snapshot().Results.ExpandedSections)

	open, err = s.ToggleSection(SectionCriticalIssues)
	require.NoError(t, err)
	assert.False(t, open)

	_, err = s.ToggleSection("pricing")
	std, ok := errors.AsStandard(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnknownSection, std.Code)
}

func TestToggleSection_OnlyOnResults(t *testing.T) {
	s := newManual(t, Config{}, Hooks{})
	_, err := s.ToggleSection(SectionOptimizationSummary)
	assert.Error(t, err)
}

func TestDemoRequestModal(t *testing.T) {
	s := atResults(t)

	require.NoError(t, s.OpenDemoRequest())
	assert.True(t, s.Snapshot().Results.DemoRequestOpen)

	_, err := s.SubmitDemoRequest("   ")
	require.Error(t, err)
	std, _ := errors.AsStandard(err)
	assert.Equal(t, "email", std.Field)
	assert.True(t, s.Snapshot().Results.DemoRequestOpen)

	path, err := s.SubmitDemoRequest("jane+demo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "/contact?email=jane%2Bdemo%40example.com", path)
	assert.False(t, s.Snapshot().Results.DemoRequestOpen)

	require.NoError(t, s.OpenDemoRequest())
	s.CloseDemoRequest()
	assert.False(t, s.Snapshot().Results.DemoRequestOpen)
}

func TestRestart_ResetsResultsView(t *testing.T) {
	s := atResults(t)
	_, _ = s.ToggleSection(SectionOptimizationSummary)
	require.NoError(t, s.OpenDemoRequest())

	s.Restart()
	st := s.Snapshot()
	assert.Empty(t, st.Results.ExpandedSections)
	assert.False(t, st.Results.DemoRequestOpen)
}
