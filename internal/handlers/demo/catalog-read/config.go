package catalogread

import (
	"fmt"
	"time"
)

type Config struct {
	// CacheMaxAge is sent as Cache-Control max-age. The fixtures never
	// change while the process runs.
	CacheMaxAge time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		CacheMaxAge: 5 * time.Minute,
	}
}

func (c *Config) Validate() error {
	if c.CacheMaxAge < 0 {
		return fmt.Errorf("cache max age cannot be negative")
	}
	return nil
}
