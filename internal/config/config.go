package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort           string
	DbHost            string
	DbPort            string
	DbUser            string
	DbPassword        string
	DbName            string
	DbParams          string
	DbMaxOpenConns    int
	DbMaxIdleConns    int
	DbConnMaxLifetime time.Duration
	TrustedProxies    []string
	JWTAccessSecret   string
	ProjectListWindow time.Duration
	ProjectListMax    int
	TranslationFolder string
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),
		DbHost:     getEnv("MYSQL_HOST", "db"),
		DbPort:     getEnv("MYSQL_PORT", "3306"),
		DbUser:     getEnv("MYSQL_USER", "trackr"),
		DbPassword: getEnv("MYSQL_PASSWORD", "trackr"),
		DbName:     getEnv("MYSQL_DATABASE", "trackr"),
		// clientFoundRows makes UPDATE report matched rows, not changed rows.
		DbParams:          getEnv("MYSQL_PARAMS", "parseTime=true&multiStatements=true&clientFoundRows=true"),
		DbMaxOpenConns:    getInt("MYSQL_MAX_OPEN_CONNS", 25),
		DbMaxIdleConns:    getInt("MYSQL_MAX_IDLE_CONNS", 10),
		DbConnMaxLifetime: getDuration("MYSQL_CONN_MAX_LIFETIME", 5*time.Minute),
		TrustedProxies:    parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		JWTAccessSecret:   getEnv("JWT_ACCESS_SECRET", ""),
		ProjectListWindow: getDuration("PROJECT_LIST_RATE_WINDOW", 15*time.Minute),
		ProjectListMax:    getInt("PROJECT_LIST_RATE_MAX", 20),
		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
