package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	ConfigFile         string        `env:"CONFIG_FILE" envDefault:"config.yaml"`
	OutputFolder       string        `env:"OUTPUT_FOLDER" envDefault:"output"`
	ImageFolder        string        `env:"IMAGE_FOLDER" envDefault:"images"`
	ImagesDryRun       bool          `env:"IMAGES_DRY_RUN"`
	DownloadWorkers    int           `env:"DOWNLOAD_WORKERS" envDefault:"4"`
	HTTPTimeout        time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
	DatabaseURL        string        `env:"DATABASE_URL"`
	GCSBucket          string        `env:"GCS_BUCKET"`
	OutputPrefix       string        `env:"OUTPUT_PREFIX" envDefault:"output"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	ArchiveInlineLimit int64         `env:"ARCHIVE_INLINE_LIMIT" envDefault:"33554432"`

	RabbitMQ RabbitMQ
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL               string `env:"RABBITMQ_URL"`
	Exchange          string `env:"RABBITMQ_EXCHANGE" envDefault:"pdsa-ex"`
	Queue             string `env:"RABBITMQ_QUEUE" envDefault:"pdsa-generator.commands"`
	CommandRoutingKey string `env:"RABBITMQ_COMMAND_ROUTING_KEY" envDefault:"pdsa.generate"`
	NotifyRoutingKey  string `env:"RABBITMQ_NOTIFY_ROUTING_KEY" envDefault:"pdsa.finished"`
}

// Load loads variables of envFiles, when they exist, and parses environment into Config.
// Variables already set in environment take precedence over env files.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("can't load env file %q: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("can't parse env variables: %w", err)
	}

	return &cfg, nil
}
