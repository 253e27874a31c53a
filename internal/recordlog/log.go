// Package recordlog stores append-only submission logs. Each log is a
// JSON array under a key; Append reads the whole array, extends it and
// writes it back.
package recordlog

import (
	"context"
	"encoding/json"
	"fmt"

	"funnelzip-demo/internal/models"
)

// Log is the repository the submission recorder writes through.
type Log interface {
	Append(ctx context.Context, key string, rec models.SubmissionRecord) error
	List(ctx context.Context, key string) ([]models.SubmissionRecord, error)
	Close() error
}

func decode(key string, raw []byte) ([]models.SubmissionRecord, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var recs []models.SubmissionRecord
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("decode log %s: %w", key, err)
	}
	return recs, nil
}

func encode(recs []models.SubmissionRecord) ([]byte, error) {
	if recs == nil {
		recs = []models.SubmissionRecord{}
	}
	return json.Marshal(recs)
}
