package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMaxUploadSize is the total multipart ceiling for a single request (30 MB).
const DefaultMaxUploadSize int64 = 30 * 1024 * 1024

type DB struct {
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	// PublicURL is the base used to build retrievable object URLs.
	PublicURL string
}

// Redis backs the auth rate limiter. Limiting is off when Addr is empty.
type Redis struct {
	Addr         string
	Password     string
	DB           int
	AuthAttempts int
	AuthWindow   time.Duration
}

// Tracing is disabled when OTLPEndpoint is empty.
type Tracing struct {
	OTLPEndpoint string
	ServiceName  string
	Environment  string
}

type Config struct {
	ServerPort           int
	LogLevel             string
	DB                   DB
	MinIO                MinIO
	Redis                Redis
	Tracing              Tracing
	// TrustProxy makes client IP resolution honour X-Forwarded-For. Enable
	// only behind a proxy that overwrites the header.
	TrustProxy           bool
	JWTSecretKey         string
	AccessTokenDuration  time.Duration
	RefreshTokenDuration time.Duration
	MaxUploadSize        int64
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil || duration <= 0 {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return DefaultMaxUploadSize
	}
	return size
}

func LoadDB() DB {
	return DB{
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "socialhub"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
	}
}

func LoadMinIO() MinIO {
	useSSL := getEnvBool("MINIO_USE_SSL", false)
	endpoint := getEnv("MINIO_ENDPOINT", "localhost:9000")

	scheme := "http://"
	if useSSL {
		scheme = "https://"
	}

	return MinIO{
		Endpoint:   endpoint,
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "media"),
		UseSSL:     useSSL,
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", scheme+endpoint),
	}
}

func LoadRedis() Redis {
	return Redis{
		Addr:         getEnv("REDIS_ADDR", ""),
		Password:     getEnv("REDIS_PASSWORD", ""),
		DB:           getEnvAsInt("REDIS_DB", 0),
		AuthAttempts: getEnvAsInt("AUTH_RATE_LIMIT", 10),
		AuthWindow:   parseDuration(getEnv("AUTH_RATE_WINDOW", "1m"), time.Minute),
	}
}

func LoadTracing() Tracing {
	return Tracing{
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "socialhub"),
		Environment:  getEnv("APP_ENV", "local"),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:           getEnvAsInt("SERVER_PORT", 3001),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DB:                   LoadDB(),
		MinIO:                LoadMinIO(),
		Redis:                LoadRedis(),
		Tracing:              LoadTracing(),
		TrustProxy:           getEnvBool("TRUST_PROXY", false),
		JWTSecretKey:         getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration:  parseDuration(getEnv("ACCESS_TOKEN_DURATION", "2h"), 2*time.Hour),
		RefreshTokenDuration: parseDuration(getEnv("REFRESH_TOKEN_DURATION", "168h"), 168*time.Hour),
		MaxUploadSize:        parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "31457280")),
	}
}
