// Package config reads application settings from the environment.
package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all application configuration.
type Config struct {
	Addr      string `env:"ADDR" env-default:":8080"`
	Env       string `env:"ENV" env-default:"production"`
	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`

	// Store selects the persistence backend: "badger" or "postgres".
	Store       string `env:"STORE" env-default:"badger"`
	BadgerPath  string `env:"BADGER_PATH" env-default:"data/starlog"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	// Blob selects the asset backend: "fs" or "s3".
	Blob        string `env:"BLOB" env-default:"fs"`
	BlobDir     string `env:"BLOB_DIR" env-default:"data/uploads"`
	BlobBaseURL string `env:"BLOB_BASE_URL" env-default:"http://localhost:8080/uploads"`

	S3Bucket          string `env:"S3_BUCKET"`
	S3Region          string `env:"S3_REGION"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`

	JWTSecret string        `env:"JWT_SECRET" env-default:"starlog-dev-secret"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"168h"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
