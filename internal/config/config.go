package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string

	HTTPAddr string

	// MongoDB. An empty URI runs the service on the fallback catalog.
	MongoURI            string
	MongoDatabase       string
	MongoConnectTimeout time.Duration
	MongoOpTimeout      time.Duration

	// Redis & Caching. An empty URL disables the cache.
	RedisURL        string
	CacheTTLDetails time.Duration
	CacheTTLList    time.Duration

	// RabbitMQ
	RabbitURL      string
	RabbitExchange string

	// S3/MinIO. An empty bucket disables image uploads.
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3UsePathStyle    bool
	S3Bucket          string
	CDNBaseURL        string

	// Upload constraints
	MaxUploadSize  int64
	MaxImageWidth  int
	MaxImageHeight int

	// Authoring routes are open when JWTSecret is empty.
	JWTSecret string
	JWTIssuer string

	// Rate Limiting
	RLEnabled bool
	RLLimit   int
	RLWindow  time.Duration

	LogLevel  string
	LogFormat string

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.AppEnv = getEnv("APP_ENV", "dev")
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.MongoURI = getEnv("MONGODB_URI", "")
	cfg.MongoDatabase = getEnv("MONGODB_DATABASE", "devevent")
	cfg.MongoConnectTimeout = getDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second)
	cfg.MongoOpTimeout = getDuration("MONGO_OP_TIMEOUT", 5*time.Second)

	cfg.RedisURL = getEnv("REDIS_URL", "")
	cfg.CacheTTLDetails = getDuration("CACHE_TTL_DETAILS", 5*time.Minute)
	cfg.CacheTTLList = getDuration("CACHE_TTL_LIST", 15*time.Second)

	cfg.RabbitURL = getEnv("RABBIT_URL", "")
	cfg.RabbitExchange = getEnv("RABBIT_EXCHANGE", "devevent.events")

	cfg.S3Endpoint = getEnv("S3_ENDPOINT", "")
	cfg.S3AccessKeyID = getEnv("S3_ACCESS_KEY_ID", "")
	cfg.S3SecretAccessKey = getEnv("S3_SECRET_ACCESS_KEY", "")
	cfg.S3Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3UsePathStyle = getBool("S3_USE_PATH_STYLE", true)
	cfg.S3Bucket = getEnv("S3_BUCKET", "")
	cfg.CDNBaseURL = strings.TrimRight(getEnv("CDN_BASE_URL", ""), "/")

	cfg.MaxUploadSize = int64(getIntEnv("MAX_UPLOAD_SIZE", 10*1024*1024))
	cfg.MaxImageWidth = getIntEnv("MAX_IMAGE_WIDTH", 4000)
	cfg.MaxImageHeight = getIntEnv("MAX_IMAGE_HEIGHT", 4000)

	cfg.JWTSecret = getEnv("AUTH_JWT_SECRET", "")
	cfg.JWTIssuer = getEnv("AUTH_JWT_ISSUER", "")

	// Rate Limiting Defaults: 100 reqs / 1 min
	cfg.RLEnabled = getBool("RL_ENABLED", true)
	cfg.RLLimit = getIntEnv("RL_IP_LIMIT", 100)
	cfg.RLWindow = getDuration("RL_IP_WINDOW", 1*time.Minute)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "console")

	cfg.HTTPReadTimeout = getDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	cfg.HTTPWriteTimeout = getDuration("HTTP_WRITE_TIMEOUT", 20*time.Second)
	cfg.HTTPIdleTimeout = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)

	// validation
	if cfg.MongoURI != "" && cfg.MongoDatabase == "" {
		return nil, fmt.Errorf("missing MONGODB_DATABASE")
	}
	if cfg.RLEnabled && cfg.RLLimit <= 0 {
		return nil, fmt.Errorf("RL_IP_LIMIT must be positive")
	}
	if cfg.MaxUploadSize <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_SIZE must be positive")
	}
	if cfg.S3Bucket != "" && cfg.CDNBaseURL == "" {
		return nil, fmt.Errorf("missing CDN_BASE_URL (required when S3_BUCKET is set)")
	}
	if cfg.AppEnv != "dev" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing AUTH_JWT_SECRET (required when APP_ENV != dev)")
	}

	return cfg, nil
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func getIntEnv(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
