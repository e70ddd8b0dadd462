package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"tanya-chat/internal/services"
)

// defaultOrigins covers the common local development servers.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://localhost:8080",
}

type Config struct {
	// Server
	Port string
	Env  string

	// Groq AI
	GroqAPIKey string
	GroqAPIURL string
	GroqModel  string

	// CORS
	AllowedOrigins []string
	FrontendURL    string

	// Rate limit buckets, shared across replicas when set
	RedisURL string

	// Client-facing base URL advertised by /api/config; empty = same-origin
	APIBaseURL string

	EnableRequestLogging bool
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:                 getEnvOrDefault("PORT", "3000"),
		Env:                  getEnvOrDefault("ENV", "development"),
		GroqAPIKey:           os.Getenv("GROQ_API_KEY"),
		GroqAPIURL:           getEnvOrDefault("GROQ_API_URL", services.DefaultBaseURL),
		GroqModel:            getEnvOrDefault("GROQ_MODEL", services.DefaultModel),
		AllowedOrigins:       loadOrigins(),
		FrontendURL:          os.Getenv("FRONTEND_URL"),
		RedisURL:             os.Getenv("REDIS_URL"),
		APIBaseURL:           os.Getenv("API_BASE_URL"),
		EnableRequestLogging: getEnvAsBoolOrDefault("ENABLE_REQUEST_LOGGING", true),
	}

	return cfg
}

func loadOrigins() []string {
	var origins []string
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	} else {
		origins = append(origins, defaultOrigins...)
	}

	if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
		origins = append(origins, frontend)
	}

	return origins
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
