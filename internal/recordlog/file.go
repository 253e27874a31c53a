package recordlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"funnelzip-demo/internal/models"
)

var safeKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// FileLog stores each log as <dir>/<key>.json.
type FileLog struct {
	dir string
	mu  sync.Mutex
}

// NewFileLog creates dir if needed.
func NewFileLog(dir string) (*FileLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	return &FileLog{dir: dir}, nil
}

func (f *FileLog) path(key string) (string, error) {
	if !safeKey.MatchString(key) {
		return "", fmt.Errorf("invalid log key %q", key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

func (f *FileLog) Append(ctx context.Context, key string, rec models.SubmissionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := f.path(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	recs, err := readLog(key, path)
	if err != nil {
		return err
	}
	recs = append(recs, rec)
	return writeLog(path, recs)
}

func (f *FileLog) List(ctx context.Context, key string) ([]models.SubmissionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := f.path(key)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return readLog(key, path)
}

func (f *FileLog) Close() error { return nil }

// readLog reads path; a missing file is an empty log.
func readLog(key, path string) ([]models.SubmissionRecord, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(key, b)
}

// writeLog writes via a temp file then rename.
func writeLog(path string, recs []models.SubmissionRecord) error {
	b, err := encode(recs)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
