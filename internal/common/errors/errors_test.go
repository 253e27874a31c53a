package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	warns  []string
	errors []string
}

func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.warns = append(l.warns, msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.errors = append(l.errors, msg) }

func TestStandardError_Wrapping(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("append: %w", NewStorageUnavailableError("funnelzip_submissions", cause))

	assert.True(t, IsStorageUnavailable(err))
	assert.False(t, IsValidation(err))
	assert.ErrorIs(t, err, cause)

	stdErr, ok := AsStandard(err)
	require.True(t, ok)
	assert.Equal(t, "funnelzip_submissions", stdErr.Metadata["logKey"])
	assert.True(t, stdErr.Retryable)
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("email", "email is required")

	assert.True(t, IsValidation(err))
	assert.Equal(t, "email", err.Field)
	assert.Contains(t, err.Error(), "field: email")
	assert.False(t, IsRetryableErrorCode(err.Code))
}

func TestNormalize(t *testing.T) {
	plain := stderrors.New("boom")
	stdErr := Normalize(plain)
	assert.Equal(t, ErrCodeInternal, stdErr.Code)
	assert.Equal(t, "boom", stdErr.Details)

	session := NewSessionNotFoundError("abc")
	assert.Same(t, session, Normalize(session))
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeValidationFailed, "validation"},
		{ErrCodeInvalidRequest, "validation"},
		{ErrCodeStorageUnavailable, "storage"},
		{ErrCodeNotificationSendFailed, "notification"},
		{ErrCodeSessionNotFound, "session"},
		{ErrCodeSessionLimit, "session"},
		{ErrCodeUnknownSection, "session"},
		{ErrCodeInternal, "internal"},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, GetErrorCategory(tt.code))
		})
	}
}

func TestErrorHandler_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantWarn   bool
	}{
		{"validation", NewValidationError("name", "name is required"), http.StatusUnprocessableEntity, "VALIDATION_FAILED", true},
		{"not found", NewSessionNotFoundError("x"), http.StatusNotFound, "SESSION_NOT_FOUND", true},
		{"limit", NewSessionLimitError(2), http.StatusTooManyRequests, "SESSION_LIMIT_REACHED", true},
		{"bad request", NewInvalidRequestError("bad json"), http.StatusBadRequest, "INVALID_REQUEST", true},
		{"plain error", stderrors.New("kaboom"), http.StatusInternalServerError, "INTERNAL_ERROR", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := &recordingLogger{}
			h := NewErrorHandler(log)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/test", nil)

			h.HandleHTTPError(rec, req, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body struct {
				Error StandardError `json:"error"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, string(body.Error.Code))

			if tt.wantWarn {
				assert.Len(t, log.warns, 1)
				assert.Empty(t, log.errors)
			} else {
				assert.Len(t, log.errors, 1)
			}
		})
	}
}
