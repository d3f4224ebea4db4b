package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBPath       string
	SecretKey    string
	Timezone     string
	CookieSecure bool
}

func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:         getenv("PORT", "8080"),
		DBPath:       getenv("DB_PATH", filepath.Join("data", "gravida.db")),
		SecretKey:    getenv("SECRET_KEY", "change_me_in_production"),
		Timezone:     getenv("TZ", "UTC"),
		CookieSecure: getenv("COOKIE_SECURE", "false") == "true",
	}
}

func getenv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
