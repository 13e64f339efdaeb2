package config

import (
	"os"
	"strconv"
)

// Config holds everything the server reads from the environment.
// godotenv is loaded by the caller (cmd/api, cmd/seed) before Load runs.
type Config struct {
	DBDSN          string
	AppPort        string
	AppEnv         string
	JWTSecret      string
	CORSOrigin     string
	ServiceTaxRate float64 // applied to order subtotals; 0.18 unless overridden
	GeminiAPIKey   string  // optional; assistant endpoint is disabled when empty
}

func Load() *Config {
	cfg := &Config{
		DBDSN:          getEnv("DB_DSN", "root:root@tcp(127.0.0.1:3306)/hospital?parseTime=true"),
		AppPort:        getEnv("PORT", "3002"),
		AppEnv:         getEnv("APP_ENV", "development"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		CORSOrigin:     getEnv("CORS_ORIGIN", "http://localhost:5173"),
		ServiceTaxRate: getEnvFloat("SERVICE_TAX_RATE", 0.18),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
