package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	AppName            string
	TimeZone           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for gate snapshots.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// RetentionDays expires snapshots after this many days; 0 keeps them.
	RetentionDays int
}

// GateConfig holds the tariff and throttling applied at the gate.
type GateConfig struct {
	FeePerHour int64
	// RateLimit is the sustained number of code attempts per second allowed per client.
	RateLimit float64
	RateBurst int
}

// AuthConfig holds admin token settings.
type AuthConfig struct {
	JWTSecret   string
	TokenTTLMin int
}

// PortalConfig controls how the portal pages reach the API and format amounts.
type PortalConfig struct {
	APIURL     string
	Locale     string
	Currency   string
	TimeoutSec int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port     string
	Timezone string
	// TrustedProxies may set X-Forwarded-For; the portal runs behind one of them.
	TrustedProxies []string
	Database       DatabaseConfig
	MinIO          MinIOConfig
	Gate           GateConfig
	Auth           AuthConfig
	Portal         PortalConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	port := getEnv("PORT", "8080")
	tz := getEnv("APP_TIMEZONE", "Asia/Ho_Chi_Minh")
	return &AppConfig{
		Port:           port,
		Timezone:       tz,
		TrustedProxies: getEnvList("TRUSTED_PROXIES", []string{"127.0.0.1", "::1"}),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			AppName:            getEnv("DB_APP_NAME", "parkgate"),
			TimeZone:           tz,
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", "parkgate"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			RetentionDays: getEnvInt("MINIO_SNAPSHOT_RETENTION_DAYS", 90),
		},
		Gate: GateConfig{
			FeePerHour: int64(getEnvInt("GATE_FEE_PER_HOUR", 5000)),
			RateLimit:  getEnvFloat("GATE_RATE_LIMIT", 1),
			RateBurst:  getEnvInt("GATE_RATE_BURST", 5),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("AUTH_JWT_SECRET", ""),
			TokenTTLMin: getEnvInt("AUTH_TOKEN_TTL_MIN", 480),
		},
		Portal: PortalConfig{
			APIURL:     getEnv("PORTAL_API_URL", "http://localhost:"+port+"/api"),
			Locale:     getEnv("PORTAL_LOCALE", "en"),
			Currency:   getEnv("PORTAL_CURRENCY", "VNĐ"),
			TimeoutSec: getEnvInt("PORTAL_TIMEOUT_SEC", 15),
		},
	}
}

// Location resolves the configured time zone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string, def []string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
