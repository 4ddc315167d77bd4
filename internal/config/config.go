package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	JWTSecret  string

	// RequireVerification selects the verification policy: when true an account
	// must submit an emailed code before it becomes usable; when false accounts
	// are verified immediately (the fallback for deployments without a working
	// mail transport).
	RequireVerification bool
	CodeTTL             time.Duration

	// Mail transports. MailerSend is tried first when an API key is present,
	// then plain SMTP. With neither configured every delivery attempt fails and
	// the code is only visible in the server log.
	MailerSendAPIKey string
	MailFrom         string
	MailFromName     string
	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	MailTimeout      time.Duration

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/homeneeds?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:  getEnv("JWT_SECRET", "change-me"),

		RequireVerification: getEnvBool("REQUIRE_VERIFICATION", true),
		CodeTTL:             time.Duration(getEnvInt("CODE_TTL_MINUTES", 10)) * time.Minute,

		MailerSendAPIKey: os.Getenv("MAILERSEND_API_KEY"),
		MailFrom:         getEnv("MAIL_FROM", "noreply@homeneeds.local"),
		MailFromName:     getEnv("MAIL_FROM_NAME", "Home Needs"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUsername:     os.Getenv("SMTP_USERNAME"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		MailTimeout:      time.Duration(getEnvInt("MAIL_TIMEOUT_SECONDS", 5)) * time.Second,

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
