// internal/handlers/leads/access-request/handler.go
package accessrequest

import (
	"context"
	"net/http"

	"funnelzip-demo/internal/common/errors"
	apihttp "funnelzip-demo/internal/common/http"
	"funnelzip-demo/internal/common/logger"
	"funnelzip-demo/internal/models"
	"funnelzip-demo/internal/submission"

	"github.com/go-chi/chi/v5"
)

const Route = "/api/access-requests"

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
	log = log.WithFields(map[string]interface{}{"handler": "access-request"})
	return &Handler{
		config:   config,
		recorder: recorder,
		errs:     errors.NewErrorHandler(log),
		logger:   log,
	}
}

func (h *Handler) Register(r chi.Router) {
	r.Post(Route, h.create)
	r.Get(Route+"/roles", h.roles)
	if h.config.ListEnabled {
		r.Get(Route, h.list)
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := apihttp.DecodeJSON(w, r, &in); err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}

	rec, err := h.recorder.Submit(r.Context(), models.KindAccessRequest, in.fields())
	if err != nil {
		if r.Context().Err() != nil {
			h.logger.Warn("client left before the access request resolved", map[string]interface{}{
				"submissionId": rec.ID,
			})
			return
		}
		h.errs.HandleHTTPError(w, r, err)
		return
	}
	errors.WriteJSON(w, http.StatusCreated, Output{Record: rec, Message: h.config.SuccessMessage})
}

func (h *Handler) roles(w http.ResponseWriter, r *http.Request) {
	errors.WriteJSON(w, http.StatusOK, RolesOutput{Roles: append([]string(nil), submission.Roles...)})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	recs, err := h.recorder.History(r.Context(), models.KindAccessRequest)
	if err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}
	if recs == nil {
		recs = []models.SubmissionRecord{}
	}
	errors.WriteJSON(w, http.StatusOK, map[string]interface{}{"records": recs})
}
