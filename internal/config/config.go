package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	AppPort            string
	MongoURI           string
	MongoDatabase      string
	FirebaseServiceKey string
	StripeSecret       string
	SiteDomain         string
}

// Load reads environment variables and returns a populated Config.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:            getEnv("APP_PORT", "5000"),
		MongoURI:           getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGODB_DATABASE", "scholarstream"),
		FirebaseServiceKey: getEnv("FB_SERVICE_KEY", ""),
		StripeSecret:       getEnv("STRIPE_SECRET", ""),
		SiteDomain:         getEnv("SITE_DOMAIN", "http://localhost:5173"),
	}

	if cfg.FirebaseServiceKey == "" {
		log.Fatal("FB_SERVICE_KEY must be set")
	}

	if cfg.StripeSecret == "" {
		log.Fatal("STRIPE_SECRET must be set")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
