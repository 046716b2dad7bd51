package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config agrupa la configuración del proceso, leída de env.
type Config struct {
	AppName string
	Port    string

	// DSN de Postgres. Vacío => store in-memory (modo dev).
	DBDSN string

	LogLevel  string
	LogFormat string

	// Secreto HS256 para el verifier JWT. Vacío => sin verifier (modo dev).
	JWTSecret string
}

// Load carga .env si existe (dev) y después lee el entorno.
// En deploy no suele haber .env; el error de godotenv se ignora.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:   getEnv("APP_NAME", "dog-boarding-api"),
		Port:      getEnv("PORT", "8080"),
		DBDSN:     os.Getenv("DB_DSN"),
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: os.Getenv("LOG_FORMAT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
