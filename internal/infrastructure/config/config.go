package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Storage
	DBDriver string // "sqlite" or "postgres"
	DBDSN    string // empty uses the driver default

	// Auth
	JWTSecret   string
	TokenTTL    time.Duration
	AdminEmails []string

	CORSOrigins []string

	// Study sessions
	AutoAdvance         time.Duration // 0 disables auto-advance
	StudySessionIdleTTL time.Duration

	// Progress recorder pool
	RecorderWorkers int
	RecorderBuffer  int

	SeedDemo bool
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:       mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout:     mustGetDuration("SHUTDOWN_TIMEOUT"),
		DBDriver:            getenvDefault("DB_DRIVER", "sqlite"),
		DBDSN:               os.Getenv("DB_DSN"),
		JWTSecret:           mustGetenv("JWT_SECRET"),
		TokenTTL:            getDurationDefault("TOKEN_TTL", 7*24*time.Hour),
		AdminEmails:         getListDefault("ADMIN_EMAILS", nil),
		CORSOrigins:         getListDefault("CORS_ORIGINS", []string{"*"}),
		AutoAdvance:         getDurationDefault("AUTO_ADVANCE", 5*time.Second),
		StudySessionIdleTTL: getDurationDefault("STUDY_SESSION_IDLE_TTL", 2*time.Hour),
		RecorderWorkers:     getIntDefault("RECORDER_WORKERS", 4),
		RecorderBuffer:      getIntDefault("RECORDER_BUFFER", 256),
		SeedDemo:            getBoolDefault("SEED_DEMO", false),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getIntDefault(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}

func getBoolDefault(k string, fallback bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid boolean: %v", k, v, err)
	}
	return b
}

// getListDefault splits a comma-separated value, dropping empty entries.
func getListDefault(k string, fallback []string) []string {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
