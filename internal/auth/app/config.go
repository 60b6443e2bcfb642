package app

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/auth/service"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/jwtx"
	"github.com/joho/godotenv"
)

type Config struct {
	Issuer         string // JWT iss claim (default: adminhub)
	MFAIssuer      string // issuer shown in authenticator apps (default: Issuer)
	BootstrapToken string // Optional: token required to perform bootstrap

	Algorithm       string        // JWT signing algorithm, EdDSA or ES256 (default: EdDSA)
	NumKeys         int           // number of signing keys to generate (default: 3, min: 1, max: 10)
	AccessTokenTTL  time.Duration // (default: 1m)
	RefreshTokenTTL time.Duration // (default: 168h)
	DefaultRole     string        // role given to self-registered users (default: user)

	DatabaseFile string // path to SQLite database file (default: ./adminhub.db)

	RedisAddr      string // Optional: enables the Redis OTP limiter
	RedisPassword  string
	RedisDB        int
	OTPMaxAttempts int           // failed codes before the cooldown (default: 5)
	OTPCooldown    time.Duration // (default: 1m)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
	AuditRetention       time.Duration // audit entries older than this are deleted (default: 90 days)
}

// Dev reports whether internal details may be returned to clients.
func (c Config) Dev() bool { return c.Env == "dev" }

// LoadConfig reads the environment after loading ENV_FILE (default .env)
// when it exists. Variables already set in the environment win over the file.
// Rate limit profiles are loaded as a side effect.
func LoadConfig() (Config, error) {
	envFile := getEnvOrDefault("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	cfg := Config{
		Issuer:          getEnvOrDefault("JWT_ISSUER", "adminhub"),
		MFAIssuer:       os.Getenv("MFA_ISSUER"),
		BootstrapToken:  os.Getenv("BOOTSTRAP_TOKEN"), // Optional: if set, required to perform bootstrap
		Algorithm:       getEnvOrDefault("JWT_ALGORITHM", jwtx.AlgorithmEdDSA),
		NumKeys:         getEnvIntOrDefault("JWT_NUM_KEYS", 0), // 0 lets the KeyManager pick
		AccessTokenTTL:  getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDurationOrDefault("REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),
		DefaultRole:     getEnvOrDefault("DEFAULT_ROLE", service.DefaultRole),
		DatabaseFile:    getEnvOrDefault("DATABASE_FILE", "adminhub.db"),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvIntOrDefault("REDIS_DB", 0),
		OTPMaxAttempts: getEnvIntOrDefault("OTP_MAX_ATTEMPTS", service.DefaultOTPMaxAttempts),
		OTPCooldown:    getEnvDurationOrDefault("OTP_COOLDOWN", service.DefaultOTPCooldown),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		AuditRetention:       getEnvDurationOrDefault("AUDIT_RETENTION", service.DefaultAuditRetention),
	}

	if cfg.MFAIssuer == "" {
		cfg.MFAIssuer = cfg.Issuer
	}

	httpx.LoadRateLimitsFromEnv()

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
