package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env" validate:"oneof=development staging production"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`

	// Redis configuration
	RedisURL    string        `json:"redis_url"`
	RedisPrefix string        `json:"redis_prefix"`
	ImportTTL   time.Duration `json:"import_ttl"`

	// Import configuration
	ScratchDir     string `json:"scratch_dir"`
	Timezone       string `json:"timezone"`
	MaxArchiveSize int64  `json:"max_archive_size"`

	// Media storage: "local" writes under MediaPath and serves from MediaBaseURL,
	// "s3" uploads to an S3-compatible bucket (CloudFlare R2 in production).
	MediaBackend string `json:"media_backend" validate:"oneof=local s3"`
	MediaPath    string `json:"media_path"`
	MediaBaseURL string `json:"media_base_url"`

	// CloudFlare R2 / S3 configuration
	R2Endpoint  string `json:"r2_endpoint"`
	R2AccessKey string `json:"r2_access_key"`
	R2SecretKey string `json:"r2_secret_key"`
	R2Bucket    string `json:"r2_bucket"`

	// Translation configuration
	TranslationEnabled     bool          `json:"translation_enabled"`
	TranslationProvider    string        `json:"translation_provider" validate:"oneof=openai anthropic deepl"`
	TranslationAPIKey      string        `json:"translation_api_key"`
	TranslationModel       string        `json:"translation_model"`
	TranslationBaseURL     string        `json:"translation_base_url"`
	TranslationTimeout     time.Duration `json:"translation_timeout"`
	TranslationBulkTimeout time.Duration `json:"translation_bulk_timeout"`

	// Storage
	PostsPath string `json:"posts_path"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Security
	AdminAPIKey string `json:"admin_api_key"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),

		// Redis configuration
		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix: getEnv("REDIS_PREFIX", "newsdesk:"),
		ImportTTL:   getEnvAsDuration("IMPORT_TTL", 720*time.Hour), // 30 days

		// Import configuration
		ScratchDir:     getEnv("SCRATCH_DIR", os.TempDir()),
		Timezone:       getEnv("TIMEZONE", "Europe/Moscow"),
		MaxArchiveSize: getEnvAsInt64("MAX_ARCHIVE_SIZE", 50<<20), // 50MB

		// Media storage
		MediaBackend: getEnv("MEDIA_BACKEND", "local"),
		MediaPath:    getEnv("MEDIA_PATH", "./data/media"),
		MediaBaseURL: getEnv("MEDIA_BASE_URL", "/media"),

		// CloudFlare R2 / S3 configuration
		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "newsdesk-media"),

		// Translation configuration
		TranslationEnabled:     getEnvAsBool("TRANSLATION_ENABLED", true),
		TranslationProvider:    getEnv("TRANSLATION_PROVIDER", "openai"),
		TranslationAPIKey:      getEnv("TRANSLATION_API_KEY", ""),
		TranslationModel:       getEnv("TRANSLATION_MODEL", "gpt-4o-mini"),
		TranslationBaseURL:     getEnv("TRANSLATION_BASE_URL", "https://api.openai.com/v1"),
		TranslationTimeout:     getEnvAsDuration("TRANSLATION_TIMEOUT", 30*time.Second),
		TranslationBulkTimeout: getEnvAsDuration("TRANSLATION_BULK_TIMEOUT", 60*time.Second),

		// Storage
		PostsPath: getEnv("POSTS_PATH", "./data/posts"),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		// Security
		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(name string, defaultVal int64) int64 {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
