package recordlog

import (
	"context"
	"database/sql"
	"fmt"

	"funnelzip-demo/internal/common/config"

	"github.com/redis/go-redis/v9"
)

// Backends carries the shared connections a log may be built on.
type Backends struct {
	Redis    redis.Cmdable
	Postgres *sql.DB
}

// New builds the log selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig, b Backends) (Log, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		return NewMemoryLog(), nil
	case config.BackendFile:
		return NewFileLog(cfg.Directory)
	case config.BackendRedis:
		if b.Redis == nil {
			return nil, fmt.Errorf("redis backend selected without a redis connection")
		}
		return NewRedisLog(b.Redis), nil
	case config.BackendPostgres:
		if b.Postgres == nil {
			return nil, fmt.Errorf("postgres backend selected without a database connection")
		}
		pg := NewPostgresLog(b.Postgres)
		if err := pg.Migrate(ctx); err != nil {
			return nil, err
		}
		return pg, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}
