package fixtures

import (
	"testing"

	"funnelzip-demo/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Contents(t *testing.T) {
	c := Default()

	assert.Equal(t, 2, c.SampleCount())
	assert.Equal(t, 6, c.CheckCount())
	assert.Len(t, c.Platforms(), 8)

	s, ok := c.Sample(0)
	require.True(t, ok)
	assert.Equal(t, "Creatine Monohydrate Powder", s.Title)
	assert.Equal(t, []string{"google", "amazon", "meta"}, s.DefaultPlatformIDs)
	assert.Equal(t, models.RiskHigh, s.RiskLevel)

	s, ok = c.Sample(1)
	require.True(t, ok)
	assert.Equal(t, models.RiskMedium, s.RiskLevel)

	_, ok = c.Sample(2)
	assert.False(t, ok)
	_, ok = c.Sample(-1)
	assert.False(t, ok)
}

func TestDefault_SampleDefaultsAreKnownPlatforms(t *testing.T) {
	c := Default()
	for _, s := range c.Samples() {
		for _, id := range s.DefaultPlatformIDs {
			assert.True(t, c.HasPlatform(id), "sample %q references unknown platform %q", s.Title, id)
		}
	}
}

func TestPlatformLookup(t *testing.T) {
	c := Default()

	p, ok := c.Platform("shopify")
	require.True(t, ok)
	assert.Equal(t, "Shop App", p.DisplayName)

	_, ok = c.Platform("myspace")
	assert.False(t, ok)
	assert.False(t, c.HasPlatform(""))
}

func TestAccessorsReturnCopies(t *testing.T) {
	c := Default()

	samples := c.Samples()
	samples[0].Title = "changed"
	samples[0].DefaultPlatformIDs[0] = "ebay"

	s, _ := c.Sample(0)
	assert.Equal(t, "Creatine Monohydrate Powder", s.Title)
	assert.Equal(t, "google", s.DefaultPlatformIDs[0])

	res := c.Results()
	res.Optimizations.PlatformRecommendations[0].Recommendations[0] = "changed"
	assert.Equal(t, "Add A+ Content with ingredient sourcing details",
		c.Results().Optimizations.PlatformRecommendations[0].Recommendations[0])
}

func TestValidSelection(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		sel  models.Selection
		want bool
	}{
		{"sample and platforms", models.Selection{SampleIndex: 0, PlatformIDs: []string{"google", "amazon"}}, true},
		{"no sample", models.Selection{SampleIndex: models.NoSample, PlatformIDs: []string{"google"}}, false},
		{"sample out of range", models.Selection{SampleIndex: 5, PlatformIDs: []string{"google"}}, false},
		{"no platforms", models.Selection{SampleIndex: 1}, false},
		{"unknown platform", models.Selection{SampleIndex: 1, PlatformIDs: []string{"google", "myspace"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ValidSelection(tt.sel))
		})
	}
}

func TestResults(t *testing.T) {
	res := Default().Results()

	require.Len(t, res.CriticalIssues, 3)
	assert.Equal(t, "fda-violation", res.CriticalIssues[0].ID)
	assert.Equal(t, "meta-policy", res.CriticalIssues[1].ID)
	assert.Equal(t, "trust-signals", res.CriticalIssues[2].ID)
	assert.Equal(t, "High", res.CriticalIssues[2].Severity)

	assert.Len(t, res.Summary, 3)
	assert.Len(t, res.Optimizations.TitleOptimization, 3)
	assert.Len(t, res.Optimizations.KeywordAnalysis, 3)
	assert.Len(t, res.Optimizations.PlatformRecommendations, 4)
	assert.Len(t, res.Dashboard, 3)
}
