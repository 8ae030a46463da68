package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort       string
	AppURL        string
	Environment   string
	SessionSecret string
	CSRFSecret    string

	// Base URL of the uni-marketplace REST API. All persistence lives there;
	// this application holds no database of its own.
	APIBaseURL string

	EmailDomain string
	OTPTTL      time.Duration

	EmailProvider  string
	EmailFrom      string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	ResendAPIKey   string
	SendGridAPIKey string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		if _, exists := os.Stat(".env"); exists == nil {
			log.Println("Warning: .env file exists but couldn't be loaded:", err)
		}
	}

	environment := getEnv("ENVIRONMENT", "development")
	sessionSecret := getEnv("SESSION_SECRET", "")
	csrfSecret := getEnv("CSRF_SECRET", "")

	if sessionSecret == "" {
		sessionSecret = generateRandomSecret("SESSION_SECRET")
	}
	if csrfSecret == "" {
		csrfSecret = generateRandomSecret("CSRF_SECRET")
	}

	appPort := getEnv("APP_PORT", "3000")
	appURL := getEnv("APP_URL", "")

	if appURL == "" {
		if environment == "production" {
			log.Println("Warning: APP_URL not set in production, CSRF origin validation may fail")
		} else {
			appURL = "http://localhost:" + appPort
		}
	}

	otpTTLMinutes := 10
	if v := getEnv("OTP_TTL_MINUTES", ""); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			otpTTLMinutes = parsed
		} else {
			log.Printf("Warning: invalid OTP_TTL_MINUTES %q, using default", v)
		}
	}

	cfg := &Config{
		AppPort:        appPort,
		AppURL:         appURL,
		Environment:    environment,
		SessionSecret:  sessionSecret,
		CSRFSecret:     csrfSecret,
		APIBaseURL:     getEnv("API_BASE_URL", "http://localhost:8080"),
		EmailDomain:    getEnv("EMAIL_DOMAIN", "ufl.edu"),
		OTPTTL:         time.Duration(otpTTLMinutes) * time.Minute,
		EmailProvider:  getEnv("EMAIL_PROVIDER", "smtp"),
		EmailFrom:      getEnv("EMAIL_FROM", ""),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
	}

	log.Printf("Configuration loaded:")
	log.Printf("  Environment: %s", cfg.Environment)
	log.Printf("  APP_PORT: %s", cfg.AppPort)
	log.Printf("  API_BASE_URL: %s", cfg.APIBaseURL)
	log.Printf("  EMAIL_DOMAIN: %s", cfg.EmailDomain)
	log.Printf("  EMAIL_PROVIDER: %s", cfg.EmailProvider)

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func generateRandomSecret(name string) string {
	log.Printf("Warning: %s not set, generating random secret (will not persist across restarts)", name)

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Failed to generate random secret for %s: %v", name, err)
	}

	return base64.StdEncoding.EncodeToString(b)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
