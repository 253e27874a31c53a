// internal/handlers/demo/demo-session/handler.go
package demosession

import (
	"context"
	"net/http"

	"funnelzip-demo/internal/common/errors"
	apihttp "funnelzip-demo/internal/common/http"
	"funnelzip-demo/internal/common/logger"
	"funnelzip-demo/internal/common/observability"
	"funnelzip-demo/internal/demo/sequencer"
	"funnelzip-demo/internal/models"

	"github.com/go-chi/chi/v5"
)

const (
	Route    = "/api/demo/sessions"
	homePath = "/"
)

type Handler struct {
	config *Config
	store  *Store
	errs   *errors.ErrorHandler
	logger logger.Logger
}

func NewHandler(config *Config, catalog sequencer.Catalog, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"handler": "demo-session"})
	build := func(id string) *sequencer.Sequencer {
		sessionLog := log.WithFields(map[string]interface{}{"sessionId": id})
		return sequencer.New(catalog, sequencer.Options{
			Config: sequencer.Config{
				TickInterval: config.TickInterval,
				AutoAdvance:  config.AutoAdvance,
			},
			Hooks: sequencer.Hooks{
				OnAdvanceRequested: func(from, to models.DemoStep) {
					sessionLog.Debug("advance requested", map[string]interface{}{
						"from": from.String(),
						"to":   to.String(),
					})
				},
				OnReturnHome: func() {
					sessionLog.Info("returned to pitch deck", nil)
				},
			},
			Logger:        sessionLog,
			Observability: obs,
		})
	}
	return &Handler{
		config: config,
		store:  NewStore(config.MaxSessions, config.SessionTTL, build, log),
		errs:   errors.NewErrorHandler(log),
		logger: log,
	}
}

// Store exposes the session store for shutdown and tests.
func (h *Handler) Store() *Store { return h.store }

// Run sweeps idle sessions until ctx is done.
func (h *Handler) Run(ctx context.Context) {
	h.store.Run(ctx, h.config.SweepInterval)
}

func (h *Handler) Register(r chi.Router) {
	r.Route(Route, func(r chi.Router) {
		r.Post("/", h.create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Delete("/", h.delete)
			r.Put("/selection", h.selection)
			r.Post("/platforms/{platform}/toggle", h.togglePlatform)
			r.Post("/advance", h.advance)
			r.Post("/restart", h.restart)
			r.Post("/home", h.home)
			r.Post("/sections/{section}/toggle", h.toggleSection)
			r.Post("/demo-request", h.demoRequest)
		})
	})
}

func (h *Handler) output(id string, seq *sequencer.Sequencer) SessionOutput {
	return SessionOutput{SessionID: id, State: seq.Snapshot()}
}

// session resolves {id} or writes the error response.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) (string, *sequencer.Sequencer, bool) {
	id := chi.URLParam(r, "id")
	seq, err := h.store.Get(id)
	if err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return "", nil, false
	}
	return id, seq, true
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	id, seq, err := h.store.Create()
	if err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}
	h.logger.Info("demo session started", map[string]interface{}{"sessionId": id})
	errors.WriteJSON(w, http.StatusCreated, h.output(id, seq))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, seq, ok := h.session(w, r)
	if !ok {
		return
	}
	errors.WriteJSON(w, http.StatusOK, h.output(id, seq))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(chi.URLParam(r, "id")); err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) selection(w http.ResponseWriter, r *http.Request) {
	id, seq, ok := h.session(w, r)
	if !ok {
		return
	}
	var in SelectionInput
	if err := apihttp.DecodeJSON(w, r, &in); err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}

	var err error
	switch {
	case in.SampleIndex == nil:
		err = errors.NewValidationError("sampleIndex", "sampleIndex is required")
	case in.PlatformIDs == nil:
		err = seq.ChooseSample(*in.SampleIndex)
	default:
		err = seq.Select(models.Selection{SampleIndex: *in.SampleIndex, PlatformIDs: in.PlatformIDs})
	}
	if err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}
	errors.WriteJSON(w, http.StatusOK, h.output(id, seq))
}

func (h *Handler) togglePlatform(w http.ResponseWriter, r *http.Request) {
	id, seq, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := seq.TogglePlatform(chi.URLParam(r, "platform")); err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}
	errors.WriteJSON(w, http.StatusOK, h.output(id, seq))
}

// advance never fails; an unmet exit condition returns advanced=false.
func (h *Handler) advance(w http.ResponseWriter, r *http.Request) {
	id, seq, ok := h.session(w, r)
	if !ok {
		return
	}
	_, moved := seq.Advance()
	errors.WriteJSON(w, http.StatusOK, AdvanceOutput{SessionOutput: h.output(id, seq), Advanced: moved})
}

func (h *Handler) restart(w http.ResponseWriter, r *http.Request) {
	id, seq, ok := h.session(w, r)
	if !ok {
		return
	}
	seq.Restart()
	errors.WriteJSON(w, http.StatusOK, h.output(id, seq))
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	id, seq, ok := h.session(w, r)
	if !ok {
		return
	}
	seq.ReturnHome()
	errors.WriteJSON(w, http.StatusOK, RedirectOutput{SessionOutput: h.output(id, seq), Redirect: homePath})
}

func (h *Handler) toggleSection(w http.ResponseWriter, r *http.Request) {
	id, seq, ok := h.session(w, r)
	if !ok {
		return
	}
	section := chi.URLParam(r, "section")
	expanded, err := seq.ToggleSection(section)
	if err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}
	errors.WriteJSON(w, http.StatusOK, ToggleOutput{SessionOutput: h.output(id, seq), Toggled: section, Expanded: expanded})
}

func (h *Handler) demoRequest(w http.ResponseWriter, r *http.Request) {
	id, seq, ok := h.session(w, r)
	if !ok {
		return
	}
	var in DemoRequestInput
	if err := apihttp.DecodeJSON(w, r, &in); err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}

	var (
		redirect string
		err      error
	)
	switch in.Action {
	case "open":
		err = seq.OpenDemoRequest()
	case "close":
		seq.CloseDemoRequest()
	case "", "submit":
		redirect, err = seq.SubmitDemoRequest(in.Email)
	default:
		err = errors.NewInvalidRequestError("action must be open, close or submit")
	}
	if err != nil {
		h.errs.HandleHTTPError(w, r, err)
		return
	}
	if redirect != "" {
		h.logger.Info("demo requested", map[string]interface{}{"sessionId": id})
	}
	errors.WriteJSON(w, http.StatusOK, RedirectOutput{SessionOutput: h.output(id, seq), Redirect: redirect})
}
