package config

import (
	"crypto/rand"
	"encoding/base64"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const defaultJWTSecret = "default-secret-key-change-in-production"

type Config struct {
	Port string

	SessionKey   []byte
	CSRFKey      []byte
	CSRFEnabled  bool
	CookieSecure bool

	JWTSecret string
	JWTTTL    time.Duration

	SessionTTL             time.Duration
	SessionCleanupInterval time.Duration

	RateLimit      float64
	RateBurst      int
	AllowedOrigins []string

	LogLevel  string
	LogFormat string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using environment and defaults")
	}

	cfg := Config{
		Port:                   getEnv("PORT", "8080"),
		SessionKey:             getKey("SECRET_KEY"),
		CSRFKey:                getKey("CSRF_KEY"),
		CSRFEnabled:            getBool("CSRF_ENABLED", true),
		CookieSecure:           getBool("COOKIE_SECURE", false),
		JWTSecret:              getEnv("JWT_SECRET", ""),
		JWTTTL:                 getDuration("JWT_TTL", 24*time.Hour),
		SessionTTL:             getDuration("SESSION_TTL", 24*time.Hour),
		SessionCleanupInterval: getDuration("SESSION_CLEANUP_INTERVAL", 5*time.Minute),
		RateLimit:              getFloat("RATE_LIMIT_RPS", 10),
		RateBurst:              getInt("RATE_LIMIT_BURST", 20),
		AllowedOrigins:         getList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		LogFormat:              getEnv("LOG_FORMAT", "console"),
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = defaultJWTSecret
		log.Warn().Msg("JWT_SECRET not set, using default key")
	}

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		log.Error().Str("PORT", cfg.Port).Msg("Invalid PORT, falling back to 8080")
		cfg.Port = "8080"
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getFloat(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		log.Warn().Str(key, raw).Msg("Invalid duration, using default")
		return defaultValue
	}
	return v
}

func getList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// getKey reads a base64 key of at least 32 bytes. Anything else is replaced
// by a random key, which does not survive a restart.
func getKey(key string) []byte {
	raw := os.Getenv(key)
	if raw != "" {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err == nil && len(decoded) >= 32 {
			return decoded
		}
		log.Warn().Str("key", key).Msg("Key is invalid or shorter than 32 bytes, generating a random one")
	} else {
		log.Warn().Str("key", key).Msg("Key not set, generating a random one")
	}

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatal().Err(err).Msg("Failed to read random bytes")
	}
	return b
}
