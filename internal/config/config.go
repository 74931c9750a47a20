package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Upload    UploadConfig
	SMTP      SMTPConfig
	Otp       OtpConfig
	RateLimit RateLimitConfig
	Jobs      JobConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Name        string // dùng làm prefix cho object keys
	Environment string // development, staging, production
	Port        string
	Version     string
}

type HTTPConfig struct {
	APIPrefix      string
	RequestTimeout time.Duration
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// JWTConfig - secrets được chia theo tier: Bearer (user) và System (admin)
type JWTConfig struct {
	AccessUserSecret    string
	RefreshUserSecret   string
	AccessSystemSecret  string
	RefreshSystemSecret string
	AccessTokenExpiry   time.Duration
	RefreshTokenExpiry  time.Duration
}

// StorageConfig - S3-compatible object store (MinIO, AWS S3...)
type StorageConfig struct {
	Endpoint         string // localhost:9000 | s3.amazonaws.com
	Region           string
	Bucket           string
	AccessKeyID      string
	SecretAccessKey  string
	UseSSL           bool
	PresignedExpires time.Duration
}

type UploadConfig struct {
	MaxImageBytes     int64
	MaxProfileBytes   int64
	MaxImageDimension int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type OtpConfig struct {
	TTL time.Duration
}

type RateLimitConfig struct {
	AuthRPS   float64
	AuthBurst int
}

// JobConfig - cấu hình cho worker schedulers
type JobConfig struct {
	RevokedTokenSweepCron string
	ExpiredOtpSweepCron   string
	WorkerConcurrency     int
	WorkerHealthAddr      string
}

type MetricsConfig struct {
	Prefix string
}

const defaultSecret = "change-me-in-production"

// Load đọc config từ environment variables
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "ecommerce"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "3000"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		HTTP: HTTPConfig{
			APIPrefix:      strings.TrimRight(getEnv("API_PREFIX", ""), "/"),
			RequestTimeout: getEnvDuration("HTTP_REQUEST_TIMEOUT", 10*time.Second),
			AllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "ecommerce"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			AccessUserSecret:    getEnv("ACCESS_USER_TOKEN_SIGNATURE", defaultSecret),
			RefreshUserSecret:   getEnv("REFRESH_USER_TOKEN_SIGNATURE", defaultSecret+"-refresh"),
			AccessSystemSecret:  getEnv("ACCESS_SYSTEM_TOKEN_SIGNATURE", defaultSecret+"-system"),
			RefreshSystemSecret: getEnv("REFRESH_SYSTEM_TOKEN_SIGNATURE", defaultSecret+"-system-refresh"),
			// Lifetimes tính bằng giây
			AccessTokenExpiry:  time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRES_IN", 3600)) * time.Second,
			RefreshTokenExpiry: time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRES_IN", 31536000)) * time.Second,
		},
		Storage: StorageConfig{
			Endpoint:         getEnv("S3_ENDPOINT", "localhost:9000"),
			Region:           getEnv("S3_REGION", "us-east-1"),
			Bucket:           getEnv("S3_BUCKET", "ecommerce"),
			AccessKeyID:      getEnv("S3_ACCESS_KEY_ID", "minioadmin"),
			SecretAccessKey:  getEnv("S3_SECRET_ACCESS_KEY", "minioadmin"),
			UseSSL:           getEnvBool("S3_USE_SSL", false),
			PresignedExpires: time.Duration(getEnvInt("S3_PRESIGNED_URL_EXPIRES_IN_SECONDS", 120)) * time.Second,
		},
		Upload: UploadConfig{
			MaxImageBytes:     int64(getEnvInt("UPLOAD_MAX_IMAGE_MB", 5)) << 20,
			MaxProfileBytes:   int64(getEnvInt("UPLOAD_MAX_PROFILE_MB", 2)) << 20,
			MaxImageDimension: getEnvInt("UPLOAD_MAX_IMAGE_DIMENSION", 2048),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvInt("SMTP_PORT", 1025),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@ecommerce.local"),
		},
		Otp: OtpConfig{
			TTL: getEnvDuration("OTP_TTL", 2*time.Minute),
		},
		RateLimit: RateLimitConfig{
			AuthRPS:   getEnvFloat("AUTH_RATE_LIMIT_RPS", 5),
			AuthBurst: getEnvInt("AUTH_RATE_LIMIT_BURST", 10),
		},
		Jobs: JobConfig{
			RevokedTokenSweepCron: getEnv("REVOKED_TOKEN_SWEEP_CRON", "0 * * * *"),
			ExpiredOtpSweepCron:   getEnv("EXPIRED_OTP_SWEEP_CRON", "*/10 * * * *"),
			WorkerConcurrency:     getEnvInt("WORKER_CONCURRENCY", 10),
			WorkerHealthAddr:      getEnv("WORKER_HEALTH_ADDR", ":9999"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "ecommerce"),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.JWT.AccessTokenExpiry <= 0 || c.JWT.RefreshTokenExpiry <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	if c.HTTP.RequestTimeout <= 0 {
		return fmt.Errorf("HTTP_REQUEST_TIMEOUT must be positive")
	}

	if c.App.Environment == "production" {
		secrets := map[string]string{
			"ACCESS_USER_TOKEN_SIGNATURE":    c.JWT.AccessUserSecret,
			"REFRESH_USER_TOKEN_SIGNATURE":   c.JWT.RefreshUserSecret,
			"ACCESS_SYSTEM_TOKEN_SIGNATURE":  c.JWT.AccessSystemSecret,
			"REFRESH_SYSTEM_TOKEN_SIGNATURE": c.JWT.RefreshSystemSecret,
		}
		for key, value := range secrets {
			if strings.HasPrefix(value, defaultSecret) {
				return fmt.Errorf("%s must be set in production", key)
			}
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
