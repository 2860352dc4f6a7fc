package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment   string
	ListenAddr    string
	DatabaseURL   string
	JWTSecret     string
	JWTTTL        time.Duration
	AMQPURL       string
	CloudinaryURL string
	PaymentSecret string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := &Config{
		Environment:   os.Getenv("ENV"),
		ListenAddr:    os.Getenv("LISTEN_ADDR"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTTTL:        24 * time.Hour,
		AMQPURL:       os.Getenv("AMQP_URL"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		PaymentSecret: os.Getenv("PAYMENT_SECRET"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if ttl := os.Getenv("JWT_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
		}
		cfg.JWTTTL = d
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	return cfg, nil
}
