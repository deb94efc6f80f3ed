package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	JWTSecret         string
	StorageRegion     string
	StorageBucket     string
	StorageAccessKey  string
	StorageSecretKey  string
	StripeSecretKey   string
	FrontendBaseURL   string
	NATSAddr          string
	EventSubjectBase  string
	DirectoryCacheTTL time.Duration
	DashboardCacheTTL time.Duration
	MaxUploadSizeMB   int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// StorageConfigured reports whether the S3 document store can be used.
// Document intake is a degraded-but-running feature when this is false.
func (c Config) StorageConfigured() bool {
	return c.StorageRegion != "" && c.StorageBucket != "" &&
		c.StorageAccessKey != "" && c.StorageSecretKey != ""
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("NIDO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "NIDO API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("directory.cache_ttl", "5m")
	v.SetDefault("dashboard.cache_ttl", "2m")
	v.SetDefault("events.subject_base", "nido")
	v.SetDefault("max_upload_size_mb", 10)

	directoryTTL, err := parseTTL(v.GetString("directory.cache_ttl"), 5*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid directory cache ttl: %w", err)
	}

	dashboardTTL, err := parseTTL(v.GetString("dashboard.cache_ttl"), 2*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid dashboard cache ttl: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		JWTSecret:         v.GetString("jwt.secret"),
		StorageRegion:     v.GetString("storage.region"),
		StorageBucket:     v.GetString("storage.bucket"),
		StorageAccessKey:  v.GetString("storage.access_key"),
		StorageSecretKey:  v.GetString("storage.secret_key"),
		StripeSecretKey:   v.GetString("stripe.secret_key"),
		FrontendBaseURL:   strings.TrimRight(v.GetString("frontend.base_url"), "/"),
		NATSAddr:          v.GetString("nats.addr"),
		EventSubjectBase:  v.GetString("events.subject_base"),
		DirectoryCacheTTL: directoryTTL,
		DashboardCacheTTL: dashboardTTL,
		MaxUploadSizeMB:   v.GetInt("max_upload_size_mb"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.MaxUploadSizeMB <= 0 {
		cfg.MaxUploadSizeMB = 10
	}

	return cfg, nil
}

func parseTTL(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}

	return time.ParseDuration(raw)
}
