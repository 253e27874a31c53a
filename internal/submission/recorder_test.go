package submission

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	apperrors "funnelzip-demo/internal/common/errors"
	"funnelzip-demo/internal/common/logger"
	"funnelzip-demo/internal/models"
	"funnelzip-demo/internal/recordlog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test doubles
// ==========================

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, rec models.SubmissionRecord, msg Message) error {
	args := m.Called(ctx, rec, msg)
	return args.Error(0)
}

func (m *MockNotifier) Channel() string { return "mock" }

type failingLog struct{}

func (failingLog) Append(context.Context, string, models.SubmissionRecord) error {
	return errors.New("quota exceeded")
}

func (failingLog) List(context.Context, string) ([]models.SubmissionRecord, error) {
	return nil, errors.New("quota exceeded")
}

func (failingLog) Close() error { return nil }

type sleepRecorder struct {
	calls []time.Duration
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return nil
}

var fixedNow = time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

func newTestRecorder(t *testing.T, log recordlog.Log, n Notifier, sleeps *sleepRecorder) *Recorder {
	t.Helper()
	if n == nil {
		n = NewConsoleNotifier(logger.NewTestLogger(t), "review@example.com")
	}
	return NewRecorder(Options{
		Log:      log,
		Notifier: n,
		Logger:   logger.NewTestLogger(t),
		Delay:    DefaultDelay,
		Now:      func() time.Time { return fixedNow },
		Sleep:    sleeps.sleep,
	})
}

func validInquiry(i int) map[string]string {
	return map[string]string{
		"name":    fmt.Sprintf("  Person %d ", i),
		"email":   fmt.Sprintf("person%d@example.com", i),
		"company": "Acme Supplements",
		"website": "https://acme.example",
		"message": "Keen to partner",
	}
}

// ==========================
// Tests
// ==========================

func TestSubmit_AppendsInCallOrder(t *testing.T) {
	log := recordlog.NewMemoryLog()
	sleeps := &sleepRecorder{}
	r := newTestRecorder(t, log, nil, sleeps)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		rec, err := r.Submit(ctx, models.KindPartnership, validInquiry(i))
		require.NoError(t, err)
		ids = append(ids, rec.ID)
	}

	stored, err := log.List(ctx, "funnelzip_submissions")
	require.NoError(t, err)
	require.Len(t, stored, 4)
	for i, rec := range stored {
		assert.Equal(t, ids[i], rec.ID)
		assert.Equal(t, fmt.Sprintf("Person %d", i), rec.Fields["name"])
		assert.Equal(t, models.KindPartnership, rec.Kind)
		assert.Equal(t, fixedNow, rec.SubmittedAt)
	}
	assert.Equal(t, []time.Duration{DefaultDelay, DefaultDelay, DefaultDelay, DefaultDelay}, sleeps.calls)
}

func TestSubmit_RoutesKindsToLogs(t *testing.T) {
	log := recordlog.NewMemoryLog()
	r := newTestRecorder(t, log, nil, &sleepRecorder{})
	ctx := context.Background()

	_, err := r.Submit(ctx, models.KindInvestment, validInquiry(1))
	require.NoError(t, err)
	_, err = r.Submit(ctx, models.KindAccessRequest, map[string]string{
		"name": "Ivy", "email": "ivy@fund.vc", "company": "Fund", "role": "investor",
	})
	require.NoError(t, err)

	inquiries, _ := log.List(ctx, "funnelzip_submissions")
	access, _ := log.List(ctx, "funnelzip_access_requests")
	assert.Len(t, inquiries, 1)
	require.Len(t, access, 1)
	assert.Equal(t, "investor", access[0].Fields["role"])
	assert.Equal(t, "", access[0].Fields["message"])
}

func TestSubmit_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		kind   models.SubmissionKind
		fields map[string]string
		field  string
	}{
		{"empty email", models.KindPartnership, map[string]string{"name": "A", "email": "", "company": "C"}, "email"},
		{"blank name", models.KindInvestment, map[string]string{"name": "   ", "email": "a@b.io", "company": "C"}, "name"},
		{"first missing wins", models.KindPartnership, map[string]string{"company": "C"}, "name"},
		{"bad email", models.KindPartnership, map[string]string{"name": "A", "email": "nope", "company": "C"}, "email"},
		{"bad website", models.KindPartnership, map[string]string{"name": "A", "email": "a@b.io", "company": "C", "website": "not a url"}, "website"},
		{"missing role", models.KindAccessRequest, map[string]string{"name": "A", "email": "a@b.io", "company": "C"}, "role"},
		{"unknown role", models.KindAccessRequest, map[string]string{"name": "A", "email": "a@b.io", "company": "C", "role": "pirate"}, "role"},
		{"unknown kind", models.SubmissionKind("newsletter"), validInquiry(1), "type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := recordlog.NewMemoryLog()
			n := new(MockNotifier)
			sleeps := &sleepRecorder{}
			r := newTestRecorder(t, log, n, sleeps)

			_, err := r.Submit(context.Background(), tt.kind, tt.fields)
			require.Error(t, err)
			std, ok := apperrors.AsStandard(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrCodeValidationFailed, std.Code)
			assert.Equal(t, tt.field, std.Field)

			inquiries, _ := log.List(context.Background(), "funnelzip_submissions")
			access, _ := log.List(context.Background(), "funnelzip_access_requests")
			assert.Empty(t, inquiries)
			assert.Empty(t, access)
			assert.Empty(t, sleeps.calls)
			n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_StorageUnavailableStillSucceeds(t *testing.T) {
	sleeps := &sleepRecorder{}
	r := newTestRecorder(t, failingLog{}, nil, sleeps)

	rec, err := r.Submit(context.Background(), models.KindPartnership, validInquiry(1))
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	assert.Len(t, sleeps.calls, 1)
}

func TestSubmit_NotifierFailureStillSucceeds(t *testing.T) {
	log := recordlog.NewMemoryLog()
	n := new(MockNotifier)
	n.On("Notify", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("ses down"))
	r := newTestRecorder(t, log, n, &sleepRecorder{})

	_, err := r.Submit(context.Background(), models.KindPartnership, validInquiry(1))
	require.NoError(t, err)

	stored, _ := log.List(context.Background(), "funnelzip_submissions")
	assert.Len(t, stored, 1)
	n.AssertExpectations(t)
}

func TestSubmit_NotifierReceivesRenderedMessage(t *testing.T) {
	n := new(MockNotifier)
	n.On("Notify", mock.Anything, mock.AnythingOfType("models.SubmissionRecord"), mock.MatchedBy(func(m Message) bool {
		return m.Subject == "Access request from Ivy (Fund)"
	})).Return(nil)
	r := newTestRecorder(t, recordlog.NewMemoryLog(), n, &sleepRecorder{})

	_, err := r.Submit(context.Background(), models.KindAccessRequest, map[string]string{
		"name": "Ivy", "email": "ivy@fund.vc", "company": "Fund", "role": "partner",
	})
	require.NoError(t, err)
	n.AssertExpectations(t)
}

func TestSubmit_CancelledDuringDelay(t *testing.T) {
	log := recordlog.NewMemoryLog()
	r := NewRecorder(Options{Log: log, Logger: logger.NewTestLogger(t), Delay: time.Hour})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Submit(ctx, models.KindPartnership, validInquiry(1))
	assert.ErrorIs(t, err, context.Canceled)

	// the record is already logged before the delay
	stored, _ := log.List(context.Background(), "funnelzip_submissions")
	assert.Len(t, stored, 1)
}

func TestSubmit_DropsUnknownFields(t *testing.T) {
	log := recordlog.NewMemoryLog()
	r := newTestRecorder(t, log, nil, &sleepRecorder{})

	fields := validInquiry(1)
	fields["type"] = "access-request"
	fields["isAdmin"] = "true"
	rec, err := r.Submit(context.Background(), models.KindPartnership, fields)
	require.NoError(t, err)

	assert.NotContains(t, rec.Fields, "type")
	assert.NotContains(t, rec.Fields, "isAdmin")
	assert.Equal(t, models.KindPartnership, rec.Kind)
}

func TestHistory(t *testing.T) {
	log := recordlog.NewMemoryLog()
	r := newTestRecorder(t, log, nil, &sleepRecorder{})
	ctx := context.Background()

	_, _ = r.Submit(ctx, models.KindPartnership, validInquiry(1))
	_, _ = r.Submit(ctx, models.KindInvestment, validInquiry(2))
	_, _ = r.Submit(ctx, models.KindPartnership, validInquiry(3))

	partnerships, err := r.History(ctx, models.KindPartnership)
	require.NoError(t, err)
	require.Len(t, partnerships, 2)
	assert.Equal(t, "Person 1", partnerships[0].Fields["name"])
	assert.Equal(t, "Person 3", partnerships[1].Fields["name"])

	_, err = r.History(ctx, models.SubmissionKind("spam"))
	assert.True(t, apperrors.IsValidation(err))

	broken := newTestRecorder(t, failingLog{}, nil, &sleepRecorder{})
	_, err = broken.History(ctx, models.KindAccessRequest)
	assert.True(t, apperrors.IsStorageUnavailable(err))
}

func TestSubmit_RejectionListsEveryFailingField(t *testing.T) {
	r := newTestRecorder(t, recordlog.NewMemoryLog(), nil, &sleepRecorder{})

	_, err := r.Submit(context.Background(), models.KindAccessRequest, map[string]string{"name": "A"})
	std, ok := apperrors.AsStandard(err)
	require.True(t, ok)
	assert.Equal(t, "email", std.Field)

	msgs, ok := std.Metadata["errors"].([]string)
	require.True(t, ok)
	require.Len(t, msgs, 3)
	assert.Contains(t, msgs[0], "email: ")
	assert.Contains(t, msgs[1], "company: ")
	assert.Contains(t, msgs[2], "role: ")
}

func TestSubmit_TimestampMatchesStoredRecord(t *testing.T) {
	log, err := recordlog.NewFileLog(t.TempDir())
	require.NoError(t, err)
	r := NewRecorder(Options{
		Log:      log,
		Notifier: NewConsoleNotifier(logger.NewTestLogger(t), "review@example.com"),
		Logger:   logger.NewTestLogger(t),
		Now:      func() time.Time { return time.Date(2026, 5, 4, 9, 30, 0, 123456789, time.UTC) },
		Sleep:    (&sleepRecorder{}).sleep,
	})
	ctx := context.Background()

	rec, err := r.Submit(ctx, models.KindPartnership, validInquiry(1))
	require.NoError(t, err)
	assert.Equal(t, 123000000, rec.SubmittedAt.Nanosecond())

	stored, err := r.History(ctx, models.KindPartnership)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.True(t, rec.SubmittedAt.Equal(stored[0].SubmittedAt))
	assert.Equal(t, rec.ID, stored[0].ID)
	assert.Equal(t, rec.Fields, stored[0].Fields)
}
