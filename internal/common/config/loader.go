// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"

	ChannelConsole = "console"
	ChannelSES     = "ses"
	ChannelSNS     = "sns"

	DefaultInquiryKey = "funnelzip_submissions"
	DefaultAccessKey  = "funnelzip_access_requests"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml on
// top and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

// newViper returns an instance with env overrides enabled, e.g.
// SUBMISSION_STORAGE_BACKEND=redis.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindKnownKeys(v)
	return v
}

// bindKnownKeys registers every key so AutomaticEnv can see it even when
// the YAML file leaves it out.
func bindKnownKeys(v *viper.Viper) {
	for _, key := range []string{
		"app.name", "app.version", "app.environment",
		"server.address", "server.metrics_address", "server.shutdown_timeout", "server.request_timeout",
		"demo.tick_interval", "demo.auto_advance", "demo.session_ttl", "demo.max_sessions", "demo.catalog_path",
		"submission.delay", "submission.success_window", "submission.expose_log",
		"submission.storage.backend", "submission.storage.directory",
		"submission.storage.inquiry_key", "submission.storage.access_key",
		"database.postgres.host", "database.postgres.port", "database.postgres.database",
		"database.postgres.user", "database.postgres.password", "database.postgres.sslmode",
		"database.redis.address", "database.redis.password", "database.redis.db",
		"notifications.channel", "notifications.review_inbox", "notifications.from_email",
		"notifications.topic_arn", "notifications.aws.region",
		"logging.level", "logging.format", "logging.output",
	} {
		_ = v.BindEnv(key)
	}
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills secrets from conventional env names.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
	if cfg.Database.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Database.Redis.Password = val
		}
	}
	if cfg.Notifications.AWS.Region == "" {
		if val := os.Getenv("AWS_REGION"); val != "" {
			cfg.Notifications.AWS.Region = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "funnelzip-demo"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 10000
	}

	if cfg.Demo.TickInterval == 0 {
		cfg.Demo.TickInterval = 80
	}
	if cfg.Demo.SessionTTL == 0 {
		cfg.Demo.SessionTTL = 30 * 60 * 1000
	}

	if cfg.Submission.Delay == 0 {
		cfg.Submission.Delay = 1500
	}
	if cfg.Submission.SuccessWindow == 0 {
		cfg.Submission.SuccessWindow = 3000
	}
	if cfg.Submission.Storage.Backend == "" {
		cfg.Submission.Storage.Backend = BackendMemory
	}
	if cfg.Submission.Storage.InquiryKey == "" {
		cfg.Submission.Storage.InquiryKey = DefaultInquiryKey
	}
	if cfg.Submission.Storage.AccessKey == "" {
		cfg.Submission.Storage.AccessKey = DefaultAccessKey
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 5
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 2
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Notifications.Channel == "" {
		cfg.Notifications.Channel = ChannelConsole
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Demo.TickInterval < 0 {
		return fmt.Errorf("demo.tick_interval must be positive")
	}
	if cfg.Submission.Delay < 0 {
		return fmt.Errorf("submission.delay must not be negative")
	}
	if cfg.Submission.Storage.InquiryKey == cfg.Submission.Storage.AccessKey {
		return fmt.Errorf("submission.storage inquiry_key and access_key must differ")
	}

	switch cfg.Submission.Storage.Backend {
	case BackendMemory:
	case BackendFile:
		if cfg.Submission.Storage.Directory == "" {
			return fmt.Errorf("submission.storage.directory is required for the file backend")
		}
	case BackendRedis:
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required for the redis backend")
		}
	case BackendPostgres:
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required for the postgres backend")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required for the postgres backend")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown submission.storage.backend %q", cfg.Submission.Storage.Backend)
	}

	switch cfg.Notifications.Channel {
	case ChannelConsole:
	case ChannelSES:
		if cfg.Notifications.ReviewInbox == "" || cfg.Notifications.FromEmail == "" {
			return fmt.Errorf("notifications.review_inbox and notifications.from_email are required for ses")
		}
	case ChannelSNS:
		if cfg.Notifications.TopicARN == "" {
			return fmt.Errorf("notifications.topic_arn is required for sns")
		}
	default:
		return fmt.Errorf("unknown notifications.channel %q", cfg.Notifications.Channel)
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
