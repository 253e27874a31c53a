package demosession

import (
	"fmt"
	"time"
)

type Config struct {
	TickInterval  time.Duration
	AutoAdvance   bool
	SessionTTL    time.Duration
	SweepInterval time.Duration
	MaxSessions   int
}

func DefaultConfig() *Config {
	return &Config{
		TickInterval:  80 * time.Millisecond,
		SessionTTL:    30 * time.Minute,
		SweepInterval: time.Minute,
		MaxSessions:   500,
	}
}

func (c *Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session_ttl must be positive")
	}
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive")
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("max_sessions cannot be negative")
	}
	return nil
}
