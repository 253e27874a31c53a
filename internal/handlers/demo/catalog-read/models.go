package catalogread

import "funnelzip-demo/internal/models"

// CatalogOutput is everything the input and scanning steps render.
type CatalogOutput struct {
	Samples   []models.ProductSample   `json:"samples"`
	Platforms []models.PlatformOption  `json:"platforms"`
	Checks    []models.CheckDescriptor `json:"checks"`
}

type SampleOutput struct {
	Index int `json:"index"`
	models.ProductSample
}
