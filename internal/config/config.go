package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port           string
	AllowedOrigins string

	// Remote pharmacy backend
	PharmacyAPIURL string

	// JWT (sessions are issued by the remote auth service; we verify them)
	JWTSecret string

	// Bulk upload
	UploadChunkSize int
	RequestTimeout  time.Duration
	ChunkTimeout    time.Duration
	MaxUploadMB     int

	// Environment
	Environment string

	// S3/Garage storage for run failure reports
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool
	S3Region    string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
		PharmacyAPIURL:  getEnv("PHARMACY_API_URL", "http://localhost:9000"),
		JWTSecret:       getEnv("JWT_SECRET", "change-me-in-production-please"),
		UploadChunkSize: getIntEnv("UPLOAD_CHUNK_SIZE", 500),
		RequestTimeout:  getDurationEnv("REQUEST_TIMEOUT_SECONDS", 10) * time.Second,
		ChunkTimeout:    getDurationEnv("CHUNK_TIMEOUT_SECONDS", 120) * time.Second,
		MaxUploadMB:     getIntEnv("MAX_UPLOAD_MB", 20),
		Environment:     getEnv("ENVIRONMENT", "development"),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		S3Bucket:        getEnv("S3_BUCKET", "import-reports"),
		S3UseSSL:        getBoolEnv("S3_USE_SSL", false),
		S3Region:        getEnv("S3_REGION", "garage"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return time.Duration(intVal)
		}
	}
	return time.Duration(defaultValue)
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// StorageConfigured reports whether the S3 report archive can be enabled.
func (c *Config) StorageConfigured() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
