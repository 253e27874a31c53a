// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Demo          DemoConfig         `mapstructure:"demo"`
	Submission    SubmissionConfig   `mapstructure:"submission"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	MetricsAddress  string `mapstructure:"metrics_address"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
	RequestTimeout  int    `mapstructure:"request_timeout"`  // milliseconds
}

// DemoConfig drives the scripted scan and the session registry.
type DemoConfig struct {
	TickInterval int    `mapstructure:"tick_interval"` // milliseconds
	AutoAdvance  bool   `mapstructure:"auto_advance"`
	SessionTTL   int    `mapstructure:"session_ttl"`  // milliseconds
	MaxSessions  int    `mapstructure:"max_sessions"` // 0 disables the cap
	CatalogPath  string `mapstructure:"catalog_path"` // optional JSON override
}

// SubmissionConfig drives the recorder and its record log backend.
type SubmissionConfig struct {
	Delay         int           `mapstructure:"delay"`          // milliseconds
	SuccessWindow int           `mapstructure:"success_window"` // milliseconds
	ExposeLog     bool          `mapstructure:"expose_log"`     // serve GET on the lead routes
	Storage       StorageConfig `mapstructure:"storage"`
}

type StorageConfig struct {
	Backend    string `mapstructure:"backend"` // memory | file | redis | postgres
	Directory  string `mapstructure:"directory"`
	InquiryKey string `mapstructure:"inquiry_key"`
	AccessKey  string `mapstructure:"access_key"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NotificationConfig selects the stubbed review-inbox collaborator.
type NotificationConfig struct {
	Channel     string `mapstructure:"channel"` // console | ses | sns
	ReviewInbox string `mapstructure:"review_inbox"`
	FromEmail   string `mapstructure:"from_email"`
	TopicARN    string `mapstructure:"topic_arn"`
	AWS         struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
