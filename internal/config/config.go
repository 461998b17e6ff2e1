package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all service settings
type Config struct {
	Environment string `yaml:"environment"`

	HTTP struct {
		Host         string        `yaml:"host"`
		Port         string        `yaml:"port"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"http"`

	Minio struct {
		Endpoint  string `yaml:"endpoint"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		UseSSL    bool   `yaml:"use_ssl"`
	} `yaml:"minio"`

	WorkingBucket  string `yaml:"working_bucket"`
	DocumentBucket string `yaml:"document_bucket"`

	Transcribe struct {
		Endpoint string `yaml:"endpoint"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"transcribe"`

	YTDLPBinary string `yaml:"ytdlp_binary"`

	PollInterval    time.Duration `yaml:"poll_interval"`
	MaxPollAttempts int           `yaml:"max_poll_attempts"`
	MaxPollFailures int           `yaml:"max_poll_failures"`
}

// LoadEnv loads environment variables from a .env file if one exists.
// Missing files are not an error; variables may be set system-wide.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
	}
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}
	return nil
}

// Load builds the configuration from defaults, environment variables
// and an optional YAML file named by TUBESCRIBE_CONFIG. The file, when
// present, wins over the environment.
func Load() (*Config, error) {
	cfg := defaults()
	applyEnv(cfg)

	if path := os.Getenv("TUBESCRIBE_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Environment = "development"
	cfg.HTTP.Host = "0.0.0.0"
	cfg.HTTP.Port = "5000"
	cfg.HTTP.ReadTimeout = 30 * time.Second
	// POST /transcribe holds the connection open until the external
	// job finishes, so the write timeout must cover the poll budget
	cfg.HTTP.WriteTimeout = 20 * time.Minute
	cfg.HTTP.IdleTimeout = 2 * time.Minute
	cfg.Minio.Endpoint = "localhost:9000"
	cfg.Minio.AccessKey = "minioadmin"
	cfg.Minio.SecretKey = "minioadmin"
	cfg.WorkingBucket = "tubescribe-audio"
	cfg.DocumentBucket = "tubescribe-transcriptions"
	cfg.PollInterval = 10 * time.Second
	cfg.MaxPollAttempts = 90
	cfg.MaxPollFailures = 5
	return cfg
}

func applyEnv(cfg *Config) {
	setString(&cfg.Environment, "ENVIRONMENT")
	setString(&cfg.HTTP.Host, "HTTP_HOST")
	setString(&cfg.HTTP.Port, "HTTP_PORT")
	setString(&cfg.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&cfg.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&cfg.Minio.SecretKey, "MINIO_SECRET_KEY")
	cfg.Minio.UseSSL = os.Getenv("MINIO_USE_SSL") == "true"
	setString(&cfg.WorkingBucket, "WORKING_BUCKET")
	setString(&cfg.DocumentBucket, "DOCUMENT_BUCKET")
	setString(&cfg.Transcribe.Endpoint, "TRANSCRIBE_ENDPOINT")
	setString(&cfg.Transcribe.APIKey, "TRANSCRIBE_API_KEY")
	setString(&cfg.YTDLPBinary, "YTDLP_BINARY")
	setDuration(&cfg.PollInterval, "POLL_INTERVAL")
	setInt(&cfg.MaxPollAttempts, "MAX_POLL_ATTEMPTS")
	setInt(&cfg.MaxPollFailures, "MAX_POLL_FAILURES")
}

func (c *Config) validate() error {
	if c.Transcribe.Endpoint == "" {
		return fmt.Errorf("TRANSCRIBE_ENDPOINT is required")
	}
	if c.WorkingBucket == "" || c.DocumentBucket == "" {
		return fmt.Errorf("working and document bucket names are required")
	}
	if c.WorkingBucket == c.DocumentBucket {
		return fmt.Errorf("working and document buckets must differ")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
