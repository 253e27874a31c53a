// pkg/catalog/catalog.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"funnelzip-demo/internal/demo/fixtures"
)

func LoadCatalog(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return &doc, nil
}

// Apply overlays the document on base and returns a new catalog.
func (d *Document) Apply(base *fixtures.Catalog) (*fixtures.Catalog, error) {
	samples := base.Samples()
	if len(d.Samples) > 0 {
		samples = d.Samples
	}
	platforms := base.Platforms()
	if len(d.Platforms) > 0 {
		platforms = d.Platforms
	}
	checks := base.Checks()
	if len(d.Checks) > 0 {
		checks = d.Checks
	}
	results := base.Results()
	if d.Results != nil {
		results = *d.Results
	}

	known := make(map[string]bool, len(platforms))
	for _, p := range platforms {
		if p.ID == "" {
			return nil, fmt.Errorf("platform with empty id")
		}
		if known[p.ID] {
			return nil, fmt.Errorf("duplicate platform id %q", p.ID)
		}
		known[p.ID] = true
	}
	for _, s := range samples {
		for _, id := range s.DefaultPlatformIDs {
			if !known[id] {
				return nil, fmt.Errorf("sample %q references unknown platform %q", s.Title, id)
			}
		}
	}

	return fixtures.New(samples, platforms, checks, results), nil
}

// Resolve returns the built-in catalog, or the built-in catalog with the
// override at path applied when path is set.
func Resolve(path string) (*fixtures.Catalog, error) {
	base := fixtures.Default()
	if path == "" {
		return base, nil
	}
	doc, err := LoadCatalog(path)
	if err != nil {
		return nil, err
	}
	return doc.Apply(base)
}
