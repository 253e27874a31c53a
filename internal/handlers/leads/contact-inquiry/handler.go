// internal/handlers/leads/contact-inquiry/handler.go
package contactinquiry

import (
	"context"
	"net/http"

	"funnelzip-demo/internal/common/errors"
	apihttp "funnelzip-demo/internal/common/http"
	"funnelzip-demo/internal/common/logger"
	"funnelzip-demo/internal/models"

	"github.com/go-chi/chi/v5"
)

const Route = "/api/inquiries"

// Recorder is the part of the submission recorder this handler needs.
type Recorder interface {
	Submit(ctx context.Context, kind models.SubmissionKind, fields map[string]string) (models.SubmissionRecord, error)
	History(ctx context.Context, kind models.SubmissionKind) ([]models.SubmissionRecord, error)
}

type Handler struct {
	config   *Config
	recorder Recorder
	errs     *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, recorder Recorder, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"handler": "contact-inquiry"})
	return &Handler{
		config:   config,
		recorder: recorder,
		errs:     errors.NewErrorHandler(log),
		logger:   log,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Post(Route, h.create)
	if h.config.ListEnabled {
		r.Get(Route, h.list)
	}
}

func parseKind(s string) (models.SubmissionKind, error) {
	kind := models.SubmissionKind(s)
	if !kind.IsInquiry() {
		return "", errors.NewValidationError("type", "type must be partnership or investment")
	}
	return kind, nil
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := apihttp.DecodeJSON(w, r, &in); err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}
	kind, err := parseKind(in.Type)
	if err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}

	rec, err := h.recorder.Submit(r.Context(), kind, in.fields())
	if err != nil {
		if r.Context().Err() != nil {
			h.logger.Warn("client left before the inquiry resolved", map[string]interface{}{
				"submissionId": rec.ID,
			})
			return
		}
		h.errs.HandleHTTPError(w, r, err)
		return
	}
	errors.WriteJSON(w, http.StatusCreated, Output{Record: rec, Message: h.config.SuccessMessage})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	kind, err := parseKind(r.URL.Query().Get("type"))
	if err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}
	recs, err := h.recorder.History(r.Context(), kind)
	if err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}
	if recs == nil {
		recs = []models.SubmissionRecord{}
	}
	errors.WriteJSON(w, http.StatusOK, ListOutput{Type: kind, Records: recs})
}
