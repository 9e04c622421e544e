package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

var (
	// JwtKey signs and verifies the portal's auth tokens.
	JwtKey []byte

	// AdminLogin / AdminPasswordHash are the credentials accepted by the
	// login endpoint. The hash is a bcrypt hash.
	AdminLogin        string
	AdminPasswordHash string

	// AppName shows up in receipt documents and email subjects.
	AppName string

	// SendGridKey enables the SendGrid email backend when set. Without it
	// receipts are written to the application log instead.
	SendGridKey string
	SenderName  string
	SenderEmail string
)

// Load reads configuration from the environment, optionally seeded from a
// local .env file.
func Load() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using process environment")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		slog.Error("JWT_SECRET environment variable is not set")
		os.Exit(1)
	}
	JwtKey = []byte(secret)

	AdminLogin = getEnv("ADMIN_LOGIN", "admin")
	AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	if AdminPasswordHash == "" {
		slog.Warn("ADMIN_PASSWORD_HASH is not set, login is disabled")
	}

	AppName = getEnv("APP_NAME", "Pratik Patil's Academy")
	SendGridKey = os.Getenv("SENDGRID_API_KEY")
	SenderName = getEnv("SENDER_NAME", AppName)
	SenderEmail = getEnv("SENDER_EMAIL", "accounts@ppacademy.example")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
