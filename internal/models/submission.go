package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// SubmissionKind tags which form produced a record.
type SubmissionKind string

const (
	KindPartnership   SubmissionKind = "partnership"
	KindInvestment    SubmissionKind = "investment"
	KindAccessRequest SubmissionKind = "access-request"
)

// IsInquiry reports whether the kind belongs to the general inquiry log.
func (k SubmissionKind) IsInquiry() bool {
	return k == KindPartnership || k == KindInvestment
}

func (k SubmissionKind) Valid() bool {
	return k.IsInquiry() || k == KindAccessRequest
}

// SubmissionRecord is one append-only log entry. Never mutated after
// creation.
type SubmissionRecord struct {
	ID          string
	Kind        SubmissionKind
	Fields      map[string]string
	SubmittedAt time.Time
}

// Clone deep-copies the field map so callers cannot alter a logged entry.
func (r SubmissionRecord) Clone() SubmissionRecord {
	out := r
	out.Fields = make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return out
}

// Reserved keys of the flat JSON form of a record.
const (
	recordIDKey        = "id"
	recordTypeKey      = "type"
	recordTimestampKey = "timestamp"
)

// MarshalJSON writes the record as one flat object: the form fields
// alongside id, type and timestamp.
func (r SubmissionRecord) MarshalJSON() ([]byte, error) {
	flat := make(map[string]string, len(r.Fields)+3)
	for k, v := range r.Fields {
		flat[k] = v
	}
	flat[recordIDKey] = r.ID
	flat[recordTypeKey] = string(r.Kind)
	flat[recordTimestampKey] = r.SubmittedAt.UTC().Format(TimestampLayout)
	return json.Marshal(flat)
}

func (r *SubmissionRecord) UnmarshalJSON(b []byte) error {
	var flat map[string]string
	if err := json.Unmarshal(b, &flat); err != nil {
		return err
	}
	ts, err := time.Parse(TimestampLayout, flat[recordTimestampKey])
	if err != nil {
		return fmt.Errorf("record timestamp: %w", err)
	}
	out := SubmissionRecord{
		ID:          flat[recordIDKey],
		Kind:        SubmissionKind(flat[recordTypeKey]),
		SubmittedAt: ts,
		Fields:      make(map[string]string, len(flat)),
	}
	for k, v := range flat {
		switch k {
		case recordIDKey, recordTypeKey, recordTimestampKey:
			continue
		}
		out.Fields[k] = v
	}
	*r = out
	return nil
}

// TimestampLayout is ISO-8601 UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"
