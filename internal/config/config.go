package config

import (
	"os"
	"strconv"
	"strings"
)

// Store drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Environment    string // ENV: production, development, etc.
	Port           string
	LogMode        string
	StoreDriver    string
	MongoURI       string
	PostgresURI    string
	RedisURI       string // empty disables the Redis submit limiter
	AllowedOrigins []string
	TrustProxy     bool // read client IP from X-Forwarded-For / X-Real-IP

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	NotifyEmail  string
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = parseOrigins(getEnv("FRONTEND_URL", "http://localhost:3000"))
	}

	return &Config{
		Environment:    env,
		Port:           getEnv("PORT", "5000"),
		LogMode:        getEnv("LOG_MODE", env),
		StoreDriver:    strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", DriverMongo))),
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/ai-survey")),
		PostgresURI:    getEnv("POSTGRES_URI", "postgres://localhost:5432/ai_survey?sslmode=disable"),
		RedisURI:       getEnv("REDIS_URI", ""),
		AllowedOrigins: allowedOrigins,
		TrustProxy:     getBool("TRUST_PROXY", false),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", getEnv("SMTP_PASS", "")),
		SMTPFrom:     getEnv("SMTP_FROM", getEnv("EMAIL_FROM", "")),
		NotifyEmail:  getEnv("NOTIFY_EMAIL", getEnv("RECIPIENT_EMAIL", "")),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return defaultValue
	}
	return v
}

func getBool(key string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
