package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string
	AppOrigin   string

	LogLevel string

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	Quota QuotaConfig
	Push  PushConfig
}

// QuotaConfig controls the daily write-quota gate and its companion limiter.
type QuotaConfig struct {
	// DailyWriteLimit caps mutating requests per accounting day.
	DailyWriteLimit int
	// JoinCreateLimitPerActor caps group create/join calls per caller IP per
	// day. Zero disables the limiter.
	JoinCreateLimitPerActor int
	// Timezone is the IANA name of the fixed reference timezone that defines
	// the accounting day boundary.
	Timezone string

	// Store selects the gate's durable backend: "gorm" or "redis".
	Store string
	// GateURL, when set, makes write handlers call a remote gate over HTTP
	// instead of the in-process one.
	GateURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// PushConfig holds web-push VAPID credentials. Empty keys disable delivery.
type PushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubject    string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "tanomu"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		AppOrigin:   strings.TrimSpace(getenv("APP_ORIGIN", "")),

		LogLevel: getenv("LOG_LEVEL", "info"),

		DBType:     getenv("DATABASE_TYPE", "postgres"),
		DBHost:     getenv("DATABASE_HOST", "localhost"),
		DBPort:     getenv("DATABASE_PORT", "5432"),
		DBName:     getenv("DATABASE_NAME", "tanomu"),
		DBUser:     getenv("DATABASE_USER", "postgres"),
		DBPassword: getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:  getenv("DATABASE_SSLMODE", "disable"),

		Quota: QuotaConfig{
			DailyWriteLimit:         getenvInt("DAILY_WRITE_LIMIT", 300),
			JoinCreateLimitPerActor: getenvInt("DAILY_JOIN_CREATE_LIMIT_PER_ACTOR", 40),
			Timezone:                getenv("QUOTA_TZ", "Asia/Tokyo"),
			Store:                   strings.ToLower(getenv("QUOTA_STORE", "gorm")),
			GateURL:                 strings.TrimSpace(getenv("QUOTA_GATE_URL", "")),
			RedisAddr:               strings.TrimSpace(getenv("REDIS_ADDR", "")),
			RedisPassword:           getenv("REDIS_PASSWORD", ""),
			RedisDB:                 getenvInt("REDIS_DB", 0),
		},
		Push: PushConfig{
			VAPIDPublicKey:  strings.TrimSpace(getenv("VAPID_PUBLIC_KEY", "")),
			VAPIDPrivateKey: strings.TrimSpace(getenv("VAPID_PRIVATE_KEY", "")),
			VAPIDSubject:    strings.TrimSpace(getenv("VAPID_SUBJECT", "")),
		},
	}
}

func (c Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getenv(key, def string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return def
}

func getenvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return value
}
