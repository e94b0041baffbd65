package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DBDSN            string
	LogFile          string
	PaymentKeyID     string
	PaymentKeySecret string
	PaymentBaseURL   string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	cfg := Config{
		Port:             getenv("PORT", "8080"),
		DBDSN:            getenv("DB_DSN", "zarika.db"), // sqlite file in project root
		LogFile:          getenv("LOG_FILE", "./zarika.log"),
		PaymentKeyID:     getenv("PAYMENT_KEY_ID", ""),
		PaymentKeySecret: getenv("PAYMENT_KEY_SECRET", ""),
		PaymentBaseURL:   getenv("PAYMENT_BASE_URL", "https://api.razorpay.com/v1"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s PAYMENT_BASE_URL=%s key_set=%t",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.PaymentBaseURL, cfg.PaymentKeySecret != "")
	return cfg
}
