package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Environment string
	Port        string

	MongoURI string
	MongoDB  string

	JWTSecret string
	JWTExpiry time.Duration

	GeocoderURL string
	GeocoderKey string

	AllowedOrigins []string

	EmailProvider   string
	EmailFrom       string
	EmailFromName   string
	SESRegion       string
	SESAccessKeyID  string
	SESSecretKey    string
	SESSkipTLSCheck bool
}

// Load loads configuration from environment variables. Outside production it
// first attempts to load a .env file; a missing .env is not an error since
// production relies on system environment variables.
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment: env,
		Port:        os.Getenv("PORT"),

		MongoURI: os.Getenv("MONGO_URI"),
		MongoDB:  os.Getenv("MONGO_DB"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GeocoderURL: os.Getenv("GEOCODER_URL"),
		GeocoderKey: os.Getenv("GEOCODER_KEY"),

		EmailProvider:   os.Getenv("EMAIL_PROVIDER"),
		EmailFrom:       os.Getenv("EMAIL_FROM"),
		EmailFromName:   os.Getenv("EMAIL_FROM_NAME"),
		SESRegion:       os.Getenv("SES_REGION"),
		SESAccessKeyID:  os.Getenv("SES_ACCESS_KEY_ID"),
		SESSecretKey:    os.Getenv("SES_SECRET_ACCESS_KEY"),
		SESSkipTLSCheck: os.Getenv("SES_INSECURE_SKIP_VERIFY") == "true",
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "eventhorizon"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-change-me"
	}

	cfg.JWTExpiry = 24 * time.Hour
	if s := os.Getenv("JWT_EXPIRY"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.JWTExpiry = d
		} else {
			log.Printf("Warning: invalid JWT_EXPIRY %q, using default: %v", s, err)
		}
	}

	if s := os.Getenv("ALLOWED_ORIGINS"); s != "" {
		for _, o := range strings.Split(s, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}
