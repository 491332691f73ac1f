// internal/config/config.go
package config

import (
	"os"
	"time"
)

type Config struct {
	Database struct {
		Host     string `json:"host"`
		Port     string `json:"port"`
		User     string `json:"user"`
		Password string `json:"password"`
		Name     string `json:"name"`
		SSLMode  string `json:"sslmode"`
		PoolSize int    `json:"pool_size"`
	} `json:"database"`
	URL struct {
		Backend  string `json:"backend"`
		Frontend string `json:"frontend"`
	} `json:"url"`
	Crypto struct {
		TokenSecret  string        `json:"token_secret"`
		AccessExpiry time.Duration `json:"access_expiry"`
		LinkExpiry   time.Duration `json:"link_expiry"`
	} `json:"crypto"`
	S3 struct {
		Fake      bool   `json:"fake"`
		Bucket    string `json:"bucket"`
		Region    string `json:"region"`
		AccessKey string `json:"access_key"`
		Secret    string `json:"secret"`
	} `json:"s3"`
	Email struct {
		Env            string `json:"env"` // "test" or "sendgrid"
		SendgridAPIKey string `json:"sendgrid_api_key"`
		From           string `json:"from"`
	} `json:"email"`
	MercadoPago struct {
		BaseURL      string        `json:"base_url"`
		AccessToken  string        `json:"access_token"`
		ClientID     string        `json:"client_id"`
		ClientSecret string        `json:"client_secret"`
		Timeout      time.Duration `json:"timeout"`
	} `json:"mp"`
	Staff struct {
		StaffEmail string `json:"staff_email"`
	} `json:"staff"`
	Server struct {
		Port         string        `json:"port"`
		ReadTimeout  time.Duration `json:"read_timeout"`
		WriteTimeout time.Duration `json:"write_timeout"`
	} `json:"server"`
}

func Load() *Config {
	cfg := &Config{}

	// Database configuration
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.Name = getEnv("DB_NAME", "adoptyme")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.PoolSize = 25

	// Public URLs
	cfg.URL.Backend = getEnv("BACKEND_URL", "http://localhost:8080")
	cfg.URL.Frontend = getEnv("FRONTEND_URL", "http://localhost:3000")

	// Token configuration
	cfg.Crypto.TokenSecret = getEnv("TOKEN_SECRET", "your-secret-key")
	cfg.Crypto.AccessExpiry = time.Hour * 24
	cfg.Crypto.LinkExpiry = time.Hour * 48

	// Object storage
	cfg.S3.Fake = getEnv("S3_FAKE", "") == "true"
	cfg.S3.Bucket = getEnv("S3_BUCKET", "adoptyme-files")
	cfg.S3.Region = getEnv("S3_REGION", "us-east-1")
	cfg.S3.AccessKey = getEnv("S3_ACCESS_KEY", "")
	cfg.S3.Secret = getEnv("S3_SECRET", "")

	// Email configuration
	cfg.Email.Env = getEnv("EMAIL_ENV", "test")
	cfg.Email.SendgridAPIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.Email.From = getEnv("EMAIL_FROM", "no-reply@adoptyme.app")

	// MercadoPago configuration
	cfg.MercadoPago.BaseURL = getEnv("MP_BASE_URL", "https://api.mercadopago.com")
	cfg.MercadoPago.AccessToken = getEnv("MP_ACCESS_TOKEN", "")
	cfg.MercadoPago.ClientID = getEnv("MP_CLIENT_ID", "")
	cfg.MercadoPago.ClientSecret = getEnv("MP_CLIENT_SECRET", "")
	cfg.MercadoPago.Timeout = time.Second * 15

	// Platform staff
	cfg.Staff.StaffEmail = getEnv("STAFF_EMAIL", "")

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.ReadTimeout = time.Second * 15
	cfg.Server.WriteTimeout = time.Second * 15

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
