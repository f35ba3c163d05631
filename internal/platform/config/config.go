package config

import (
	"log"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	LogLevel      slog.Level
	StorageDriver string

	DatabaseURL    string
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret                  string
	JWTIssuer                  string
	JWTExpiryDuration          time.Duration
	RefreshTokenExpiryDuration time.Duration

	// Recovery tokens
	EmailTokenExpiryDuration    time.Duration
	PasswordTokenExpiryDuration time.Duration
	RequireEmailVerification    bool

	HasherWorkers int
	BcryptCost    int

	// Outbound notifications; an empty RedisURL logs them instead.
	RedisURL          string
	NotificationQueue string

	FrontendBaseURL      string
	EmailVerificationURL string
	PasswordResetURL     string
	CORSAllowedOrigins   []string

	SentryDSN string

	TokenSweepInterval time.Duration
	TokenSweepGrace    time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ISSUER", "notes-app")
	viper.SetDefault("JWT_EXPIRY_DURATION", "15m")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("EMAIL_TOKEN_EXPIRY_DURATION", "24h")
	viper.SetDefault("PASSWORD_TOKEN_EXPIRY_DURATION", "1h")
	viper.SetDefault("REQUIRE_EMAIL_VERIFICATION", false)
	viper.SetDefault("HASHER_WORKERS", 0)
	viper.SetDefault("BCRYPT_COST", 10)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("NOTIFICATION_QUEUE", "notes:notifications")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("EMAIL_VERIFICATION_URL", "")
	viper.SetDefault("PASSWORD_RESET_URL", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("SENTRY_DSN", "")
	viper.SetDefault("TOKEN_SWEEP_INTERVAL", "1h")
	viper.SetDefault("TOKEN_SWEEP_GRACE", "24h")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.LogLevel = parseLogLevel(viper.GetString("LOG_LEVEL"))

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(viper.GetString("STORAGE_DRIVER")))
	if cfg.StorageDriver != StorageDriverPostgres && cfg.StorageDriver != StorageDriverMemory {
		log.Printf("Warning: Invalid value for STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StorageDriverPostgres)
		cfg.StorageDriver = StorageDriverPostgres
	}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" && cfg.StorageDriver == StorageDriverPostgres {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			log.Println("Warning: JWT_SECRET environment variable not set. The server will refuse to start.")
		} else {
			cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
			log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
		}
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "notes-app"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", 15*time.Minute)
	cfg.RefreshTokenExpiryDuration = durationOrDefault("REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)
	cfg.EmailTokenExpiryDuration = durationOrDefault("EMAIL_TOKEN_EXPIRY_DURATION", 24*time.Hour)
	cfg.PasswordTokenExpiryDuration = durationOrDefault("PASSWORD_TOKEN_EXPIRY_DURATION", time.Hour)
	cfg.RequireEmailVerification = viper.GetBool("REQUIRE_EMAIL_VERIFICATION")

	cfg.HasherWorkers = viper.GetInt("HASHER_WORKERS")
	if cfg.HasherWorkers <= 0 {
		cfg.HasherWorkers = runtime.GOMAXPROCS(0)
	}
	cfg.BcryptCost = viper.GetInt("BCRYPT_COST")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.NotificationQueue = viper.GetString("NOTIFICATION_QUEUE")

	cfg.FrontendBaseURL = strings.TrimRight(viper.GetString("FRONTEND_BASE_URL"), "/")
	cfg.EmailVerificationURL = viper.GetString("EMAIL_VERIFICATION_URL")
	if cfg.EmailVerificationURL == "" {
		cfg.EmailVerificationURL = cfg.FrontendBaseURL + "/verify-email"
	}
	cfg.PasswordResetURL = viper.GetString("PASSWORD_RESET_URL")
	if cfg.PasswordResetURL == "" {
		cfg.PasswordResetURL = cfg.FrontendBaseURL + "/reset-password"
	}
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{cfg.FrontendBaseURL}
	}

	cfg.SentryDSN = viper.GetString("SENTRY_DSN")

	cfg.TokenSweepInterval = durationOrDefault("TOKEN_SWEEP_INTERVAL", time.Hour)
	cfg.TokenSweepGrace = durationOrDefault("TOKEN_SWEEP_GRACE", 24*time.Hour)

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func parseLogLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", raw)
		return slog.LevelInfo
	}
	return level
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
