package submission

import (
	"context"
	"sync"
	"time"

	"funnelzip-demo/internal/common/errors"
	"funnelzip-demo/internal/models"
)

const DefaultSuccessWindow = 3 * time.Second

// FormStatus is the modal state of a lead-capture form.
type FormStatus string

const (
	FormClosed     FormStatus = "closed"
	FormEditing    FormStatus = "editing"
	FormSubmitting FormStatus = "submitting"
	FormSubmitted  FormStatus = "submitted"
)

// fallbackMessage is shown when a submit fails for a non-field reason.
const fallbackMessage = "Request logged. If you do not hear back, email jp@commercetap.io directly."

// FieldError is the inline error under a form field. Field is empty for
// form-level errors.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type FormState struct {
	Kind   models.SubmissionKind    `json:"kind"`
	Status FormStatus               `json:"status"`
	Fields map[string]string        `json:"fields"`
	Error  *FieldError              `json:"error,omitempty"`
	Record *models.SubmissionRecord `json:"record,omitempty"`
}

// Form drives one form modal: open, edit, submit, show success and reset
// after the success window.
type Form struct {
	mu        sync.Mutex
	kind      models.SubmissionKind
	submitter Submitter
	window    time.Duration

	status  FormStatus
	fields  map[string]string
	err     *FieldError
	record  *models.SubmissionRecord
	resetAt *time.Timer
	gen     uint64
}

func NewForm(kind models.SubmissionKind, submitter Submitter, successWindow time.Duration) *Form {
	return &Form{
		kind:      kind,
		submitter: submitter,
		window:    successWindow,
		status:    FormClosed,
		fields:    blankFields(kind),
	}
}

func blankFields(kind models.SubmissionKind) map[string]string {
	out := make(map[string]string)
	for _, f := range FieldsFor(kind) {
		out[f] = ""
	}
	return out
}

// Open shows the form. Fields typed before a close are kept.
func (f *Form) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == FormClosed {
		f.status = FormEditing
	}
}

// Close hides the form. A pending success reset happens immediately.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == FormSubmitted {
		f.resetLocked()
		return
	}
	if f.status == FormEditing {
		f.status = FormClosed
	}
}

// Set changes one field while editing.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != FormEditing {
		return errors.NewInvalidRequestError("form is not open for editing")
	}
	if _, ok := f.fields[field]; !ok {
		return errors.NewValidationError(field, "unknown form field")
	}
	f.fields[field] = value
	if f.err != nil && f.err.Field == field {
		f.err = nil
	}
	return nil
}

// Submit sends the current fields. On a validation error the form stays
// open with the error attached to the field.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.status != FormEditing {
		f.mu.Unlock()
		return errors.NewInvalidRequestError("form is not open for editing")
	}
	f.status = FormSubmitting
	f.err = nil
	fields := make(map[string]string, len(f.fields))
	for k, v := range f.fields {
		fields[k] = v
	}
	f.mu.Unlock()

	rec, err := f.submitter.Submit(ctx, f.kind, fields)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status != FormSubmitting {
		return err
	}
	if err != nil {
		f.status = FormEditing
		if std, ok := errors.AsStandard(err); ok && std.Code == errors.ErrCodeValidationFailed {
			f.err = &FieldError{Field: std.Field, Message: std.Details}
		} else {
			f.err = &FieldError{Message: fallbackMessage}
		}
		return err
	}

	f.status = FormSubmitted
	f.record = &rec
	f.gen++
	gen := f.gen
	f.resetAt = time.AfterFunc(f.window, func() { f.autoReset(gen) })
	return nil
}

func (f *Form) autoReset(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen || f.status != FormSubmitted {
		return
	}
	f.resetLocked()
}

func (f *Form) resetLocked() {
	if f.resetAt != nil {
		f.resetAt.Stop()
		f.resetAt = nil
	}
	f.gen++
	f.status = FormClosed
	f.fields = blankFields(f.kind)
	f.err = nil
	f.record = nil
}

// State returns a copy of the form state.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := FormState{
		Kind:   f.kind,
		Status: f.status,
		Fields: make(map[string]string, len(f.fields)),
	}
	for k, v := range f.fields {
		st.Fields[k] = v
	}
	if f.err != nil {
		e := *f.err
		st.Error = &e
	}
	if f.record != nil {
		r := f.record.Clone()
		st.Record = &r
	}
	return st
}
