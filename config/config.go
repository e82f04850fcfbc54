package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server configuration
	Port        string
	Environment string

	// Paystack configuration
	PaystackBaseURL   string
	PaystackSecretKey string

	// Payment configuration
	ServiceFee int64 // flat fee in major units, added on top of the ticket price
	Currency   string
	ClientURL  string

	// Identifier namespaces
	BookingNamespace string
	TicketNamespace  string

	// Event metadata embedded in issued tickets
	EventTitle    string
	EventDate     string
	EventLocation string

	// Auth configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Email configuration
	SMTPHost      string
	SMTPPort      string
	EmailUser     string
	EmailPassword string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int
	RedisPoolSize int

	// Rate limiting
	RateLimitPerMinute int

	// Realtime channel
	ChatAckDelay time.Duration

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	return &Config{
		// Server
		Port:        getEnv("PORT", "3001"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Paystack
		PaystackBaseURL:   getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		PaystackSecretKey: getEnv("PAYSTACK_SECRET_KEY", ""),

		// Payments
		ServiceFee: getEnvAsInt64("SERVICE_FEE", 500),
		Currency:   getEnv("CURRENCY", "NGN"),
		ClientURL:  getEnv("CLIENT_URL", "http://localhost:3000"),

		// Namespaces
		BookingNamespace: getEnv("BOOKING_NAMESPACE", "234wknd"),
		TicketNamespace:  getEnv("TICKET_NAMESPACE", "234WKND"),

		// Event metadata
		EventTitle:    getEnv("EVENT_TITLE", "A Weekend Experience"),
		EventDate:     getEnv("EVENT_DATE", "April 5, 2026"),
		EventLocation: getEnv("EVENT_LOCATION", "Amore Garden, Lagos"),

		// Auth
		JWTSecret: getEnv("JWT_SECRET", "your-secret-key"),
		TokenTTL:  getEnvAsDuration("TOKEN_TTL", "168h"),

		// Email
		SMTPHost:      getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		EmailUser:     getEnv("EMAIL_USER", ""),
		EmailPassword: getEnv("EMAIL_APP_PASSWORD", ""),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		RedisPoolSize: getEnvAsInt("REDIS_POOL_SIZE", 100),

		// Rate limiting
		RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 30),

		// Realtime
		ChatAckDelay: getEnvAsDuration("CHAT_ACK_DELAY", "2s"),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	// If parsing fails, fall back to the default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
