// internal/handlers/demo/catalog-read/handler.go
package catalogread

import (
	"fmt"
	"net/http"
	"strconv"

	"funnelzip-demo/internal/common/errors"
	"funnelzip-demo/internal/common/logger"
	"funnelzip-demo/internal/models"

	"github.com/go-chi/chi/v5"
)

// Catalog is the read side of the fixture catalog.
type Catalog interface {
	Samples() []models.ProductSample
	Sample(i int) (models.ProductSample, bool)
	Platforms() []models.PlatformOption
	Checks() []models.CheckDescriptor
	Results() models.ResultsPanel
}

type Handler struct {
	config  *Config
	catalog Catalog
	errs    *errors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(config *Config, catalog Catalog, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"handler": "catalog-read"})
	return &Handler{
		config:  config,
		catalog: catalog,
		errs:    errors.NewErrorHandler(log),
		logger:  log,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/api/catalog", h.getCatalog)
	r.Get("/api/catalog/samples/{index}", h.getSample)
	r.Get("/api/results", h.getResults)
}

func (h *Handler) cache(w http.ResponseWriter) {
	if h.config.CacheMaxAge > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.config.CacheMaxAge.Seconds())))
	}
}

func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	h.cache(w)
	errors.WriteJSON(w, http.StatusOK, CatalogOutput{
		Samples:   h.catalog.Samples(),
		Platforms: h.catalog.Platforms(),
		Checks:    h.catalog.Checks(),
	})
}

func (h *Handler) getSample(w http.ResponseWriter, r *http.Request) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		h.errs.HandleHTTPError(w, r, errors.NewInvalidRequestError("sample index must be an integer"))
		return
	}
	sample, ok := h.catalog.Sample(i)
	if !ok {
		h.errs.HandleHTTPError(w, r, errors.NewValidationError("index", fmt.Sprintf("no sample at index %d", i)))
		return
	}
	h.cache(w)
	errors.WriteJSON(w, http.StatusOK, SampleOutput{Index: i, ProductSample: sample})
}

// getResults serves the canned results panel. The panel is the same for
// every selection.
func (h *Handler) getResults(w http.ResponseWriter, r *http.Request) {
	h.cache(w)
	errors.WriteJSON(w, http.StatusOK, h.catalog.Results())
}
