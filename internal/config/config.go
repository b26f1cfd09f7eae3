package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Mapping MappingConfig
	Review  ReviewConfig
	Assist  AssistConfig
	Trigger TriggerConfig
	Email   EmailConfig
	Catalog CatalogConfig
}

// EmailConfig holds email delivery settings for exports.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// MappingConfig holds mapping execution limits.
type MappingConfig struct {
	MaxRows int `mapstructure:"max_rows"`
}

// ReviewConfig holds review state machine settings.
type ReviewConfig struct {
	// Strict makes edits and confirmations of unknown fields fail instead of
	// being ignored.
	Strict bool `mapstructure:"strict"`
}

// AssistConfig selects and configures the template search provider.
type AssistConfig struct {
	Provider      string `mapstructure:"provider"` // heuristic, gemini or gateway
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	GatewayURL    string `mapstructure:"gateway_url"`
	GatewayAPIKey string `mapstructure:"gateway_api_key"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
}

// TriggerConfig holds downstream action dispatch settings.
type TriggerConfig struct {
	Concurrency     int    `mapstructure:"concurrency"`
	TimeoutSecs     int    `mapstructure:"timeout_secs"`
	TrackingBaseURL string `mapstructure:"tracking_base_url"`
}

// CatalogConfig points at an optional catalog file replacing the embedded one.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings for the review audit trail.
type DBConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`

	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for uploaded source documents.
type S3Config struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the DOCMAP_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.enabled", false)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docmap")
	v.SetDefault("db.password", "docmap_secret")
	v.SetDefault("db.name", "docmap_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")

	// S3 defaults
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docmap-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// Mapping and review defaults
	v.SetDefault("mapping.max_rows", 500)
	v.SetDefault("review.strict", false)

	// Assist defaults
	v.SetDefault("assist.provider", "heuristic")
	v.SetDefault("assist.api_key", "")
	v.SetDefault("assist.model", "gemini-2.5-flash")
	v.SetDefault("assist.gateway_url", "")
	v.SetDefault("assist.gateway_api_key", "")
	v.SetDefault("assist.timeout_secs", 30)

	// Trigger defaults
	v.SetDefault("trigger.concurrency", 4)
	v.SetDefault("trigger.timeout_secs", 30)
	v.SetDefault("trigger.tracking_base_url", "http://localhost:8080/tracking")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@docmap.local")
	v.SetDefault("email.from_name", "DocMap")

	v.SetDefault("catalog.path", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":               "DOCMAP_SERVER_PORT",
		"server.read_timeout":       "DOCMAP_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "DOCMAP_SERVER_WRITE_TIMEOUT",
		"server.environment":        "DOCMAP_SERVER_ENVIRONMENT",
		"db.enabled":                "DOCMAP_DB_ENABLED",
		"db.host":                   "DOCMAP_DB_HOST",
		"db.port":                   "DOCMAP_DB_PORT",
		"db.user":                   "DOCMAP_DB_USER",
		"db.password":               "DOCMAP_DB_PASSWORD",
		"db.name":                   "DOCMAP_DB_NAME",
		"db.sslmode":                "DOCMAP_DB_SSLMODE",
		"db.max_open":               "DOCMAP_DB_MAX_OPEN",
		"db.conn_max_lifetime":      "DOCMAP_DB_CONN_MAX_LIFETIME",
		"db.max_idle":               "DOCMAP_DB_MAX_IDLE",
		"s3.enabled":                "DOCMAP_S3_ENABLED",
		"s3.region":                 "DOCMAP_S3_REGION",
		"s3.bucket":                 "DOCMAP_S3_BUCKET",
		"s3.endpoint":               "DOCMAP_S3_ENDPOINT",
		"s3.access_key":             "DOCMAP_S3_ACCESS_KEY",
		"s3.secret_key":             "DOCMAP_S3_SECRET_KEY",
		"s3.max_file_size_mb":       "DOCMAP_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":         "DOCMAP_S3_PRESIGN_EXPIRY",
		"log.level":                 "DOCMAP_LOG_LEVEL",
		"log.format":                "DOCMAP_LOG_FORMAT",
		"cors.allowed_origins":      "DOCMAP_CORS_ALLOWED_ORIGINS",
		"mapping.max_rows":          "DOCMAP_MAPPING_MAX_ROWS",
		"review.strict":             "DOCMAP_REVIEW_STRICT",
		"assist.provider":           "DOCMAP_ASSIST_PROVIDER",
		"assist.api_key":            "DOCMAP_ASSIST_API_KEY",
		"assist.model":              "DOCMAP_ASSIST_MODEL",
		"assist.gateway_url":        "DOCMAP_ASSIST_GATEWAY_URL",
		"assist.gateway_api_key":    "DOCMAP_ASSIST_GATEWAY_API_KEY",
		"assist.timeout_secs":       "DOCMAP_ASSIST_TIMEOUT_SECS",
		"trigger.concurrency":       "DOCMAP_TRIGGER_CONCURRENCY",
		"trigger.timeout_secs":      "DOCMAP_TRIGGER_TIMEOUT_SECS",
		"trigger.tracking_base_url": "DOCMAP_TRIGGER_TRACKING_BASE_URL",
		"email.provider":            "DOCMAP_EMAIL_PROVIDER",
		"email.region":              "DOCMAP_EMAIL_REGION",
		"email.from_address":        "DOCMAP_EMAIL_FROM_ADDRESS",
		"email.from_name":           "DOCMAP_EMAIL_FROM_NAME",
		"catalog.path":              "DOCMAP_CATALOG_PATH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCMAP_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCMAP_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Enabled:  v.GetBool("db.enabled"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Enabled:       v.GetBool("s3.enabled"),
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Mapping = MappingConfig{
		MaxRows: v.GetInt("mapping.max_rows"),
	}
	cfg.Review = ReviewConfig{
		Strict: v.GetBool("review.strict"),
	}

	cfg.Assist = AssistConfig{
		Provider:      strings.ToLower(v.GetString("assist.provider")),
		APIKey:        v.GetString("assist.api_key"),
		Model:         v.GetString("assist.model"),
		GatewayURL:    v.GetString("assist.gateway_url"),
		GatewayAPIKey: v.GetString("assist.gateway_api_key"),
		TimeoutSecs:   v.GetInt("assist.timeout_secs"),
	}

	cfg.Trigger = TriggerConfig{
		Concurrency:     v.GetInt("trigger.concurrency"),
		TimeoutSecs:     v.GetInt("trigger.timeout_secs"),
		TrackingBaseURL: v.GetString("trigger.tracking_base_url"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Catalog = CatalogConfig{
		Path: v.GetString("catalog.path"),
	}

	if cfg.Mapping.MaxRows <= 0 {
		return nil, fmt.Errorf("mapping.max_rows must be positive, got %d", cfg.Mapping.MaxRows)
	}
	switch cfg.Assist.Provider {
	case "heuristic", "gemini", "gateway":
	default:
		return nil, fmt.Errorf("unknown assist provider: %s", cfg.Assist.Provider)
	}

	return cfg, nil
}
