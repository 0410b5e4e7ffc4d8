package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey   string
	GeminiModel    string
	GeminiTimeout  int // seconds
	RequestsPerMin int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:           getEnvOrDefault("PORT", "3000"),
		Env:            getEnvOrDefault("ENV", "development"),
		GeminiAPIKey:   getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:    getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiTimeout:  getEnvAsIntOrDefault("GEMINI_TIMEOUT_SECONDS", 30),
		RequestsPerMin: getEnvAsIntOrDefault("REQUESTS_PER_MINUTE", 30),
		FrontendURL:    getEnvOrDefault("FRONTEND_URL", "*"),
	}

	return cfg
}

// IsProduction reports whether client responses must hide error detail.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
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
