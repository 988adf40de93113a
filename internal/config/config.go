package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port int

	DBURL string

	JWTSecret     string
	JWTTTLMinutes int

	// CacheBackend: "memory" | "redis" | "none"
	CacheBackend    string
	CacheTTLSeconds int
	RedisAddr       string
	RedisPassword   string
	RedisDB         int

	CORSOrigins []string

	// TraceSampleRatio outside (0,1] samples every request
	TraceSampleRatio float64
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 8080)
	dbURL := buildDBURL()

	return Config{
		Env:              env,
		Port:             port,
		DBURL:            dbURL,
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTTTLMinutes:    getEnvInt("JWT_TTL_MINUTES", 60),
		CacheBackend:     getEnv("CACHE_BACKEND", "memory"),
		CacheTTLSeconds:  getEnvInt("CACHE_TTL_SECONDS", 300),
		RedisAddr:        getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		CORSOrigins:      getEnvList("CORS_ORIGINS", "http://localhost:3000"),
		TraceSampleRatio: getEnvFloat("TRACE_SAMPLE_RATIO", 1),
	}
}

func buildDBURL() string {
	host := getEnv("DB_HOST", "127.0.0.1")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "addressbook")
	pass := getEnv("DB_PASSWORD", "addressbook")
	name := getEnv("DB_NAME", "addressbook")
	ssl := getEnv("DB_SSLMODE", "disable")

	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=" + ssl
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.ParseFloat(v, 64)

		if err != nil {
			fmt.Println(err)
			return fallback
		}

		return num
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)

		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
