package config

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/yeremiapane/table-reservation/utils"
)

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	MySQLDSN      string
	SQLitePath    string

	SessionDriver       string
	RedisAddr           string
	RedisPassword       string
	RedisDB             int
	SessionCookieName   string
	SessionTTL          time.Duration
	SessionCookieSecure bool
	SessionSweepEvery   time.Duration

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
	OAuthStateSecret   string
	LoginPath          string
	DefaultRedirect    string

	AMQPURL      string
	AMQPExchange string

	CORSOrigins    []string
	CORSMaxAge     time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// IsDevelopment -> detail error hanya dikirim ke client di mode development
func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("STORE_DRIVER", "mongo")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "table_reservation")
	v.SetDefault("MYSQL_DSN", "")
	v.SetDefault("SQLITE_PATH", "table_reservation.db")

	v.SetDefault("SESSION_DRIVER", "memory")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_COOKIE_NAME", "sid")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("SESSION_SWEEP_EVERY", "10m")

	v.SetDefault("GOOGLE_CLIENT_ID", "")
	v.SetDefault("GOOGLE_CLIENT_SECRET", "")
	v.SetDefault("GOOGLE_CALLBACK_URL", "http://localhost:8080/auth/google/callback")
	v.SetDefault("OAUTH_STATE_SECRET", "")
	v.SetDefault("LOGIN_PATH", "/login")
	v.SetDefault("DEFAULT_REDIRECT", "/")

	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "table_reservation.events")

	v.SetDefault("CORS_ORIGIN", "http://localhost:3000")
	v.SetDefault("CORS_MAX_AGE", "10m")
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
}

// Load membaca .env (jika ada) lalu environment variable ke dalam Config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debug("no .env file loaded, using process environment")
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	return FromViper(v)
}

func FromViper(v *viper.Viper) Config {
	cfg := Config{
		AppEnv:   v.GetString("APP_ENV"),
		Port:     v.GetString("PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),

		StoreDriver:   strings.ToLower(v.GetString("STORE_DRIVER")),
		MongoURI:      v.GetString("MONGO_URI"),
		MongoDatabase: v.GetString("MONGO_DATABASE"),
		MySQLDSN:      v.GetString("MYSQL_DSN"),
		SQLitePath:    v.GetString("SQLITE_PATH"),

		SessionDriver:       strings.ToLower(v.GetString("SESSION_DRIVER")),
		RedisAddr:           v.GetString("REDIS_ADDR"),
		RedisPassword:       v.GetString("REDIS_PASSWORD"),
		RedisDB:             v.GetInt("REDIS_DB"),
		SessionCookieName:   v.GetString("SESSION_COOKIE_NAME"),
		SessionTTL:          v.GetDuration("SESSION_TTL"),
		SessionCookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
		SessionSweepEvery:   v.GetDuration("SESSION_SWEEP_EVERY"),

		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:  v.GetString("GOOGLE_CALLBACK_URL"),
		OAuthStateSecret:   v.GetString("OAUTH_STATE_SECRET"),
		LoginPath:          v.GetString("LOGIN_PATH"),
		DefaultRedirect:    v.GetString("DEFAULT_REDIRECT"),

		AMQPURL:      v.GetString("AMQP_URL"),
		AMQPExchange: v.GetString("AMQP_EXCHANGE"),

		CORSOrigins:    splitList(v.GetString("CORS_ORIGIN")),
		CORSMaxAge:     v.GetDuration("CORS_MAX_AGE"),
		RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.SessionSweepEvery <= 0 {
		cfg.SessionSweepEvery = 10 * time.Minute
	}
	if cfg.OAuthStateSecret == "" {
		utils.ErrorLogger.Warn("OAUTH_STATE_SECRET is empty, generating a per-process secret")
		cfg.OAuthStateSecret = uuid.NewString() + uuid.NewString()
	}
	return cfg
}

// splitList -> "a, b,,c" menjadi [a b c]
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
