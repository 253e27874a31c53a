package commands

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"funnelzip-demo/internal/common/config"
	"funnelzip-demo/internal/common/database"
	apihttp "funnelzip-demo/internal/common/http"
	"funnelzip-demo/internal/models"
	"funnelzip-demo/internal/recordlog"
	"funnelzip-demo/internal/submission"

	ar "funnelzip-demo/internal/handlers/leads/access-request"
	ci "funnelzip-demo/internal/handlers/leads/contact-inquiry"
)

// leads is what submit and log need, local or remote.
type leads interface {
	submission.Submitter
	History(ctx context.Context, kind models.SubmissionKind) ([]models.SubmissionRecord, error)
}

// openLeads returns the server-backed client when --server is set,
// otherwise a recorder on the configured record log.
func openLeads(ctx context.Context, e *env) (leads, func(), error) {
	if e.remote != nil {
		return &remoteLeads{client: e.remote}, func() {}, nil
	}

	var (
		backends recordlog.Backends
		closers  []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	storage := e.cfg.Submission.Storage
	switch storage.Backend {
	case config.BackendRedis:
		rdb, err := database.NewRedis(e.cfg.Database.Redis)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = rdb.Close() })
		if err := rdb.Ping(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
		backends.Redis = rdb.GetClient()
	case config.BackendPostgres:
		pg, err := database.NewPostgres(e.cfg.Database.Postgres)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { _ = pg.Close() })
		if err := pg.Ping(ctx); err != nil {
			cleanup()
			return nil, nil, err
		}
		backends.Postgres = pg.GetDB()
	}

	log, err := recordlog.New(ctx, storage, backends)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, func() { _ = log.Close() })

	rec := submission.NewRecorder(submission.Options{
		Log:        log,
		Notifier:   submission.NewConsoleNotifier(e.log, e.cfg.Notifications.ReviewInbox),
		Logger:     e.log,
		Delay:      config.GetDuration(e.cfg.Submission.Delay),
		InquiryKey: storage.InquiryKey,
		AccessKey:  storage.AccessKey,
	})
	return rec, cleanup, nil
}

// remoteLeads talks to the demo server's lead routes.
type remoteLeads struct {
	client *apihttp.Client
}

func (r *remoteLeads) Submit(ctx context.Context, kind models.SubmissionKind, fields map[string]string) (models.SubmissionRecord, error) {
	body := make(map[string]string, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	route := ar.Route
	if kind.IsInquiry() {
		route = ci.Route
		body["type"] = string(kind)
	}

	var out struct {
		Record models.SubmissionRecord `json:"record"`
	}
	if err := r.client.PostJSON(ctx, route, body, &out); err != nil {
		return models.SubmissionRecord{}, unwrapAPIError(err)
	}
	return out.Record, nil
}

func (r *remoteLeads) History(ctx context.Context, kind models.SubmissionKind) ([]models.SubmissionRecord, error) {
	path := ar.Route
	if kind.IsInquiry() {
		path = ci.Route + "?type=" + url.QueryEscape(string(kind))
	}
	var out struct {
		Records []models.SubmissionRecord `json:"records"`
	}
	if err := r.client.GetJSON(ctx, path, &out); err != nil {
		return nil, unwrapAPIError(err)
	}
	return out.Records, nil
}

// unwrapAPIError turns a server error body back into a StandardError so
// forms show field errors the same way locally and remotely.
func unwrapAPIError(err error) error {
	var apiErr *apihttp.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	if std, ok := apiErr.Standard(); ok {
		return std
	}
	return fmt.Errorf("demo server: %w", err)
}
