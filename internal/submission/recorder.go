// Package submission records lead-capture form submissions: validate,
// timestamp, append to the record log, notify a reviewer, then resolve
// after a short artificial delay.
package submission

import (
	"context"
	"strings"
	"time"

	"funnelzip-demo/internal/common/config"
	"funnelzip-demo/internal/common/errors"
	"funnelzip-demo/internal/common/logger"
	"funnelzip-demo/internal/common/metrics"
	"funnelzip-demo/internal/common/observability"
	"funnelzip-demo/internal/common/validation"
	"funnelzip-demo/internal/models"
	"funnelzip-demo/internal/recordlog"

	"github.com/google/uuid"
)

const DefaultDelay = 1500 * time.Millisecond

// Submitter is what form front-ends call.
type Submitter interface {
	Submit(ctx context.Context, kind models.SubmissionKind, fields map[string]string) (models.SubmissionRecord, error)
}

type Options struct {
	Log           recordlog.Log
	Notifier      Notifier
	Logger        logger.Logger
	Observability *observability.Observability
	Delay         time.Duration
	InquiryKey    string
	AccessKey     string

	// Now and Sleep default to the wall clock.
	Now   func() time.Time
	Sleep func(ctx context.Context, d time.Duration) error
}

// Recorder is safe for concurrent use when its Log is.
type Recorder struct {
	log        recordlog.Log
	notifier   Notifier
	logger     logger.Logger
	obs        *observability.Observability
	delay      time.Duration
	inquiryKey string
	accessKey  string
	now        func() time.Time
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewRecorder(opts Options) *Recorder {
	r := &Recorder{
		log:        opts.Log,
		notifier:   opts.Notifier,
		logger:     opts.Logger,
		obs:        opts.Observability,
		delay:      opts.Delay,
		inquiryKey: opts.InquiryKey,
		accessKey:  opts.AccessKey,
		now:        opts.Now,
		sleep:      opts.Sleep,
	}
	if r.log == nil {
		r.log = recordlog.NewMemoryLog()
	}
	if r.logger == nil {
		r.logger = logger.NewNoOpLogger()
	}
	if r.notifier == nil {
		r.notifier = NewConsoleNotifier(r.logger, "")
	}
	if r.inquiryKey == "" {
		r.inquiryKey = config.DefaultInquiryKey
	}
	if r.accessKey == "" {
		r.accessKey = config.DefaultAccessKey
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.sleep == nil {
		r.sleep = sleepContext
	}
	r.logger = r.logger.WithFields(map[string]interface{}{"component": "submission-recorder"})
	return r
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// LogKey returns the storage key for kind.
func (r *Recorder) LogKey(kind models.SubmissionKind) string {
	if kind == models.KindAccessRequest {
		return r.accessKey
	}
	return r.inquiryKey
}

// Submit validates fields for kind and records them. Storage and
// notification failures are logged and swallowed; only validation fails
// a submission.
func (r *Recorder) Submit(ctx context.Context, kind models.SubmissionKind, fields map[string]string) (models.SubmissionRecord, error) {
	start := time.Now()

	clean, err := r.validate(kind, fields)
	if err != nil {
		if std, ok := errors.AsStandard(err); ok && std.Code == errors.ErrCodeValidationFailed {
			metrics.SubmissionsRejected.WithLabelValues(string(kind), std.Field).Inc()
			r.obs.RecordSubmission(ctx, string(kind), "rejected", time.Since(start))
			r.logger.Warn("submission rejected", map[string]interface{}{
				"kind":    string(kind),
				"field":   std.Field,
				"details": std.Details,
				"errors":  std.Metadata["errors"],
			})
		}
		return models.SubmissionRecord{}, err
	}

	rec := models.SubmissionRecord{
		ID:          uuid.New().String(),
		Kind:        kind,
		Fields:      clean,
		SubmittedAt: r.now().UTC().Truncate(time.Millisecond),
	}

	r.logger.Info("new form submission", map[string]interface{}{
		"submissionId": rec.ID,
		"kind":         string(kind),
		"fields":       rec.Fields,
		"timestamp":    rec.SubmittedAt.Format(models.TimestampLayout),
	})
	r.notify(ctx, rec)

	status := "recorded"
	key := r.LogKey(kind)
	if err := r.log.Append(ctx, key, rec); err != nil {
		status = "console-only"
		stdErr := errors.NewStorageUnavailableError(key, err)
		metrics.SubmissionStorageFallbacks.WithLabelValues(key).Inc()
		r.logger.WithError(stdErr).Error("record log unavailable, kept console copy only", map[string]interface{}{
			"submissionId": rec.ID,
			"logKey":       key,
		})
	}

	if err := r.sleep(ctx, r.delay); err != nil {
		r.obs.RecordSubmission(ctx, string(kind), "cancelled", time.Since(start))
		return rec, err
	}

	metrics.SubmissionsRecorded.WithLabelValues(string(kind)).Inc()
	r.obs.RecordSubmission(ctx, string(kind), status, time.Since(start))
	return rec.Clone(), nil
}

func (r *Recorder) notify(ctx context.Context, rec models.SubmissionRecord) {
	msg, err := Render(rec)
	if err == nil {
		err = r.notifier.Notify(ctx, rec, msg)
	}
	if err != nil {
		channel := r.notifier.Channel()
		metrics.NotificationFailures.WithLabelValues(channel).Inc()
		r.logger.WithError(errors.NewNotificationSendFailedError(channel, err)).Warn("reviewer notification failed", map[string]interface{}{
			"submissionId": rec.ID,
		})
	}
}

// validate trims every value, drops fields the form does not have and
// checks the result against the form schema. Empty values count as
// missing.
func (r *Recorder) validate(kind models.SubmissionKind, fields map[string]string) (map[string]string, error) {
	schema, ok := SchemaFor(kind)
	if !ok {
		return nil, errors.NewValidationError("type", "unknown submission type "+string(kind))
	}

	clean := make(map[string]string, len(schema.Properties))
	doc := make(map[string]interface{}, len(schema.Properties))
	for name := range schema.Properties {
		v := strings.TrimSpace(fields[name])
		clean[name] = v
		if v != "" {
			doc[name] = v
		}
	}

	result, err := validation.ValidateInput(doc, schema)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if first, failed := result.First(); failed {
		stdErr := errors.NewValidationError(first.Field, fieldMessage(first))
		stdErr.Metadata = map[string]interface{}{"errors": result.GetErrorMessages()}
		return nil, stdErr
	}
	return clean, nil
}

func fieldMessage(ve validation.ValidationError) string {
	switch ve.Code {
	case "REQUIRED":
		return ve.Field + " is required"
	case "FORMAT":
		return ve.Field + " is not valid"
	case "ENUM":
		return ve.Field + " must be one of " + strings.Join(Roles, ", ")
	}
	return ve.Message
}

// History lists the log for kind in submission order.
func (r *Recorder) History(ctx context.Context, kind models.SubmissionKind) ([]models.SubmissionRecord, error) {
	if !kind.Valid() {
		return nil, errors.NewValidationError("type", "unknown submission type "+string(kind))
	}
	key := r.LogKey(kind)
	recs, err := r.log.List(ctx, key)
	if err != nil {
		return nil, errors.NewStorageUnavailableError(key, err)
	}
	if kind == models.KindAccessRequest {
		return recs, nil
	}
	// both inquiry kinds share one log
	out := recs[:0]
	for _, rec := range recs {
		if rec.Kind == kind {
			out = append(out, rec)
		}
	}
	return out, nil
}
