package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	JWT      JWTConfig
	Log      LogConfig
	Chat     ChatConfig
	Storage  StorageConfig
	Audit    AuditConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig backs the token revocation denylist. Optional: an empty URL
// disables Redis and logout becomes a client-side-only operation.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// NATSConfig backs audit event publishing. Optional: an empty URL disables it.
type NATSConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string
	MaxSize    int // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// ChatConfig tunes the conversation dispatcher and the intent collaborator.
type ChatConfig struct {
	APIKey          string        // OpenAI-compatible API key; empty = keyword-only resolution
	BaseURL         string        // override for OpenAI-compatible endpoints (Gemini, local)
	Model           string
	HistoryLimit    int           // messages of context handed to the resolver
	ClassifyTimeout time.Duration // bound on the collaborator call
	ToolTimeout     time.Duration // bound on a single tool's store calls
}

type StorageConfig struct {
	Type     string // local, s3
	BasePath string // local: directory for exported files
	BaseURL  string // local: URL prefix for exported files
	S3       S3Config
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	PublicURL string
}

type AuditConfig struct {
	RetentionDays int
	PruneCron     string // cron expression for the retention job
	Subject       string // NATS subject for published events
}

func LoadConfig() (*Config, error) {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	jwtTTLMinutes, _ := strconv.Atoi(getEnv("JWT_TTL_MINUTES", "1440"))

	historyLimit, _ := strconv.Atoi(getEnv("CHAT_HISTORY_LIMIT", "10"))
	classifyTimeout, _ := strconv.Atoi(getEnv("CHAT_CLASSIFY_TIMEOUT_SECONDS", "15"))
	toolTimeout, _ := strconv.Atoi(getEnv("CHAT_TOOL_TIMEOUT_SECONDS", "10"))

	s3UseSSL := getEnv("S3_USE_SSL", "false") == "true"
	auditRetention, _ := strconv.Atoi(getEnv("AUDIT_RETENTION_DAYS", "90"))

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "TaskChat"),
			Port: getEnv("APP_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "taskchat"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "change-this-secret"),
			TTL:    time.Duration(jwtTTLMinutes) * time.Minute,
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "stdout"),
			FilePath:   getEnv("LOG_FILE", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
		Chat: ChatConfig{
			APIKey:          getEnv("CHAT_API_KEY", getEnv("OPENAI_API_KEY", "")),
			BaseURL:         getEnv("CHAT_BASE_URL", ""),
			Model:           getEnv("CHAT_MODEL", "gpt-4o-mini"),
			HistoryLimit:    historyLimit,
			ClassifyTimeout: time.Duration(classifyTimeout) * time.Second,
			ToolTimeout:     time.Duration(toolTimeout) * time.Second,
		},
		Storage: StorageConfig{
			Type:     getEnv("STORAGE_TYPE", "local"),
			BasePath: getEnv("STORAGE_BASE_PATH", "./exports"),
			BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
			S3: S3Config{
				Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
				AccessKey: getEnv("S3_ACCESS_KEY", "minioadmin"),
				SecretKey: getEnv("S3_SECRET_KEY", "minioadmin"),
				Bucket:    getEnv("S3_BUCKET", "exports"),
				UseSSL:    s3UseSSL,
				Region:    getEnv("S3_REGION", "auto"),
				PublicURL: getEnv("S3_PUBLIC_URL", ""),
			},
		},
		Audit: AuditConfig{
			RetentionDays: auditRetention,
			PruneCron:     getEnv("AUDIT_PRUNE_CRON", "0 3 * * *"),
			Subject:       getEnv("AUDIT_NATS_SUBJECT", "audit.events"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
