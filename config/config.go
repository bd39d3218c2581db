package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"vibin_client/models"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	APIBaseURL     string
	RequestTimeout time.Duration
	FeedLimit      int
	AllowedOrigins []string

	// Session
	SessionToken  string // Used when no device session table is configured
	JWTSecret     string
	DeviceID      string
	SessionsTable string

	// AWS
	AWSRegion      string
	S3BucketName   string
	ImageURLExpiry time.Duration

	OtelEndpoint string
	Env          string // "local" or "prod"
}

// Load reads the configuration from the environment, after loading an
// optional .env file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("⚠️ Could not read .env file: %v", err)
	}

	return Config{
		Port:           getEnv("PORT", "8080"),
		APIBaseURL:     getEnv("VIBIN_API_URL", "http://localhost:3000"),
		RequestTimeout: getDuration("VIBIN_API_TIMEOUT", 10*time.Second),
		FeedLimit:      getFeedLimit(),
		AllowedOrigins: getList("ALLOWED_ORIGINS", []string{"*"}),
		SessionToken:   getEnv("VIBIN_SESSION_TOKEN", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		DeviceID:       getEnv("DEVICE_ID", ""),
		SessionsTable:  getEnv("SESSIONS_TABLE", ""),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		S3BucketName:   getEnv("S3_BUCKET_NAME", ""),
		ImageURLExpiry: getDuration("IMAGE_URL_EXPIRY", 15*time.Minute),
		OtelEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		Env:            getEnv("APP_ENV", "local"),
	}
}

// UsesDynamoSessions reports whether the session comes from DynamoDB.
func (c Config) UsesDynamoSessions() bool {
	return c.SessionsTable != "" && c.DeviceID != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

// getFeedLimit reads FEED_LIMIT; values outside 1..MaxFeedLimit fall back to
// the default instead of failing every feed load.
func getFeedLimit() int {
	limit := getInt("FEED_LIMIT", models.DefaultFeedLimit)
	if limit < 1 || limit > models.MaxFeedLimit {
		log.Printf("⚠️ FEED_LIMIT=%d outside 1..%d, using %d", limit, models.MaxFeedLimit, models.DefaultFeedLimit)
		return models.DefaultFeedLimit
	}
	return limit
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
