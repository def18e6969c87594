package util

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config struct.
// All values are static: the server must restart to pick up new ones.
// Loaded from .env, falling back to the process environment when the file is absent
// (the usual case inside a container)
type Config struct {
	// HTTP port the admin API listens on
	Port string

	// Postgres connection string for the console's own store (promoters, notifications, invitations)
	DbConn string

	// Redis address, shared by the cache and the background workers
	RedisAddr string

	// Core ticketing API (owns events/orders/sales)
	CoreAddr        string
	CoreStaticToken string

	// JWT signing
	SecretKey              string
	TokenExpiration        time.Duration
	RefreshTokenExpiration time.Duration

	// Ably API key, used both to publish notifications and to subscribe to the core API's order channels
	AblyApiKey string

	// Stripe secret key for payment lookups and refunds
	StripeSecretKey string

	// Cloudinary credentials for event artwork uploads
	CloudName   string
	CloudKey    string
	CloudSecret string

	// Platform mailbox for notification emails
	SmtpHost    string
	SmtpPort    string
	Email       string
	AppPassword string

	// Revenue-counting rule: whether EXPIRED sales count toward revenue and tickets sold.
	// Kept as a single switch so the rule cannot vary per screen
	CountExpiredRevenue bool
}

// Load config from .env (or the environment). Missing optional values keep their zero value,
// required ones are the caller's problem to validate
func LoadConfig(path string) *Config {
	if err := godotenv.Load(path); err != nil {
		LOGGER.Warn("no .env file found, reading config from environment", "path", path)
	}

	config := &Config{
		Port:            os.Getenv("PORT"),
		DbConn:          os.Getenv("DB_CONN"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		CoreAddr:        os.Getenv("CORE_API_ADDR"),
		CoreStaticToken: os.Getenv("CORE_API_TOKEN"),
		SecretKey:       os.Getenv("SECRET_KEY"),
		AblyApiKey:      os.Getenv("ABLY_API_KEY"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		CloudName:       os.Getenv("CLOUD_NAME"),
		CloudKey:        os.Getenv("CLOUD_KEY"),
		CloudSecret:     os.Getenv("CLOUD_SECRET"),
		SmtpHost:        os.Getenv("SMTP_HOST"),
		SmtpPort:        os.Getenv("SMTP_PORT"),
		Email:           os.Getenv("EMAIL"),
		AppPassword:     os.Getenv("APP_PASSWORD"),
	}

	if config.Port == "" {
		config.Port = "8080"
	}
	if config.SmtpHost == "" {
		config.SmtpHost = "smtp.gmail.com"
	}
	if config.SmtpPort == "" {
		config.SmtpPort = "587"
	}

	config.TokenExpiration = minutesOrDefault("TOKEN_EXPIRATION_MINUTES", 15)
	config.RefreshTokenExpiration = minutesOrDefault("REFRESH_TOKEN_EXPIRATION_MINUTES", 60*24*7)

	config.CountExpiredRevenue, _ = strconv.ParseBool(os.Getenv("COUNT_EXPIRED_REVENUE"))

	return config
}

func minutesOrDefault(key string, fallback int) time.Duration {
	minutes, err := strconv.Atoi(os.Getenv(key))
	if err != nil || minutes <= 0 {
		minutes = fallback
	}
	return time.Duration(minutes) * time.Minute
}
