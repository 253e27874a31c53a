// pkg/catalog/schema.go
package catalog

import "funnelzip-demo/internal/models"

// Document is the on-disk catalog override. Empty sections fall back to
// the built-in fixtures.
type Document struct {
	Version     string                   `json:"version"`
	LastUpdated string                   `json:"lastUpdated"`
	Samples     []models.ProductSample   `json:"samples"`
	Platforms   []models.PlatformOption  `json:"platforms"`
	Checks      []models.CheckDescriptor `json:"checks"`
	Results     *models.ResultsPanel     `json:"results,omitempty"`
}
