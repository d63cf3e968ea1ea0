package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Env carries process configuration. Values come from the environment with a
// .env file as optional fallback for local development.
type Env struct {
	AppAddr string
	GinMode string
	AppEnv  string

	DBDSN string

	JWTSecret string

	PaystackSecretKey string
	PaystackBaseURL   string
	Currency          string
}

func LoadEnv() Env {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: getEnv("GIN_MODE", ""),
		AppEnv:  getEnv("APP_ENV", "development"),

		DBDSN: getEnv("DB_DSN",
			"root:@tcp(127.0.0.1:3306)/quickrent?parseTime=true&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"),

		JWTSecret: getEnv("JWT_SECRET", "quickrent-dev-secret-change-me"),

		PaystackSecretKey: getEnv("PAYSTACK_SECRET_KEY", ""),
		PaystackBaseURL:   getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		Currency:          getEnv("CURRENCY", "GHS"),
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
