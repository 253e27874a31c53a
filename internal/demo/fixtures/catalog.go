// Package fixtures holds the hard-coded sample data that stands in for
// computed analysis output. Everything here is read-only; accessors hand
// out copies.
package fixtures

import (
	"funnelzip-demo/internal/models"
)

// Catalog is the read-only set of samples, platforms and scan checks.
type Catalog struct {
	samples   []models.ProductSample
	platforms []models.PlatformOption
	checks    []models.CheckDescriptor
	results   models.ResultsPanel
	index     map[string]int
}

// New builds a catalog from explicit data. The slices are copied.
func New(samples []models.ProductSample, platforms []models.PlatformOption, checks []models.CheckDescriptor, results models.ResultsPanel) *Catalog {
	c := &Catalog{
		samples:   cloneSamples(samples),
		platforms: append([]models.PlatformOption(nil), platforms...),
		checks:    append([]models.CheckDescriptor(nil), checks...),
		results:   cloneResults(results),
		index:     make(map[string]int, len(platforms)),
	}
	for i, p := range c.platforms {
		c.index[p.ID] = i
	}
	return c
}

// Default returns the built-in FunnelZip demo catalog.
func Default() *Catalog {
	return New(defaultSamples, defaultPlatforms, defaultChecks, defaultResults)
}

func (c *Catalog) Samples() []models.ProductSample {
	return cloneSamples(c.samples)
}

// Sample returns the sample at i.
func (c *Catalog) Sample(i int) (models.ProductSample, bool) {
	if i < 0 || i >= len(c.samples) {
		return models.ProductSample{}, false
	}
	return cloneSamples(c.samples[i : i+1])[0], true
}

func (c *Catalog) SampleCount() int { return len(c.samples) }

func (c *Catalog) Platforms() []models.PlatformOption {
	return append([]models.PlatformOption(nil), c.platforms...)
}

// Platform looks up a platform by id.
func (c *Catalog) Platform(id string) (models.PlatformOption, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.PlatformOption{}, false
	}
	return c.platforms[i], true
}

// HasPlatform reports whether id names a known platform.
func (c *Catalog) HasPlatform(id string) bool {
	_, ok := c.index[id]
	return ok
}

func (c *Catalog) Checks() []models.CheckDescriptor {
	return append([]models.CheckDescriptor(nil), c.checks...)
}

func (c *Catalog) CheckCount() int { return len(c.checks) }

// Results returns the canned results panel.
func (c *Catalog) Results() models.ResultsPanel {
	return cloneResults(c.results)
}

// ValidSelection reports whether sel picks a sample and at least one
// known platform from this catalog.
func (c *Catalog) ValidSelection(sel models.Selection) bool {
	return sel.Valid(len(c.samples), c.HasPlatform)
}

func cloneSamples(in []models.ProductSample) []models.ProductSample {
	out := make([]models.ProductSample, len(in))
	for i, s := range in {
		s.DefaultPlatformIDs = append([]string(nil), s.DefaultPlatformIDs...)
		out[i] = s
	}
	return out
}

func cloneResults(in models.ResultsPanel) models.ResultsPanel {
	out := models.ResultsPanel{
		Summary:        append([]models.SummaryCard(nil), in.Summary...),
		CriticalIssues: append([]models.Issue(nil), in.CriticalIssues...),
		Dashboard:      append([]models.DashboardRow(nil), in.Dashboard...),
		Optimizations: models.OptimizationSummary{
			TitleOptimization: append([]models.TitleOptimization(nil), in.Optimizations.TitleOptimization...),
			KeywordAnalysis:   append([]models.KeywordInsight(nil), in.Optimizations.KeywordAnalysis...),
		},
	}
	for _, rec := range in.Optimizations.PlatformRecommendations {
		rec.Recommendations = append([]string(nil), rec.Recommendations...)
		out.Optimizations.PlatformRecommendations = append(out.Optimizations.PlatformRecommendations, rec)
	}
	return out
}
