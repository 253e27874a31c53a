package recordlog

import (
	"context"
	"sync"

	"funnelzip-demo/internal/models"
)

// MemoryLog keeps logs in process memory.
type MemoryLog struct {
	mu   sync.Mutex
	logs map[string][]models.SubmissionRecord
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{logs: make(map[string][]models.SubmissionRecord)}
}

func (m *MemoryLog) Append(_ context.Context, key string, rec models.SubmissionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[key] = append(m.logs[key], rec.Clone())
	return nil
}

func (m *MemoryLog) List(_ context.Context, key string) ([]models.SubmissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.SubmissionRecord, len(m.logs[key]))
	for i, r := range m.logs[key] {
		out[i] = r.Clone()
	}
	return out, nil
}

func (m *MemoryLog) Close() error { return nil }
