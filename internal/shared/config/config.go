package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL      string
	Port             string
	Env              string
	OpenAIKey        string
	WhatsAppStoreURL string
	WhatsAppProvider string
	BusinessNumber   string
	FlutterwaveKey   string
	FlutterwaveURL   string
	ResendAPIKey     string
	EmailFrom        string
	EmailFromName    string
	AdminAPIKey      string
	PairingProbeSecs int
	PairingCeilSecs  int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Port:             os.Getenv("PORT"),
		Env:              os.Getenv("ENV"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		WhatsAppStoreURL: os.Getenv("WHATSAPP_STORE_URL"),
		WhatsAppProvider: os.Getenv("WHATSAPP_PROVIDER"),
		BusinessNumber:   os.Getenv("WHATSAPP_BUSINESS_NUMBER"),
		FlutterwaveKey:   os.Getenv("FLUTTERWAVE_SECRET_KEY"),
		FlutterwaveURL:   os.Getenv("FLUTTERWAVE_API_URL"),
		ResendAPIKey:     os.Getenv("RESEND_API_KEY"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
		EmailFromName:    os.Getenv("EMAIL_FROM_NAME"),
		AdminAPIKey:      os.Getenv("ADMIN_API_KEY"),
		PairingProbeSecs: envInt("PAIRING_PROBE_INTERVAL_SECONDS", 3),
		PairingCeilSecs:  envInt("PAIRING_CEILING_SECONDS", 120),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.WhatsAppProvider == "" {
		cfg.WhatsAppProvider = "simulated"
	}
	if cfg.FlutterwaveURL == "" {
		cfg.FlutterwaveURL = "https://api.flutterwave.com/v3"
	}
	if cfg.EmailFrom == "" {
		cfg.EmailFrom = "hello@odiabiz.ng"
	}
	if cfg.EmailFromName == "" {
		cfg.EmailFromName = "OdiaBiz AI"
	}

	return cfg
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return n
}
