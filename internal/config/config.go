package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	ierr "github.com/pulseboard/pulseboard/internal/errors"
)

// Configuration holds everything the server needs to run. Values come from
// config.yaml overridden by PULSEBOARD_* environment variables; a local .env
// file is loaded first when present.
type Configuration struct {
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Artifact  ArtifactConfig  `mapstructure:"artifact"`
	Reports   ReportsConfig   `mapstructure:"reports"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type MongoConfig struct {
	URI      string        `mapstructure:"uri"`
	Database string        `mapstructure:"database"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type CORSConfig struct {
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type ArtifactConfig struct {
	// Provider is "local" or "s3"
	Provider string `mapstructure:"provider"`
	LocalDir string `mapstructure:"local_dir"`
	S3       struct {
		Bucket          string        `mapstructure:"bucket"`
		Region          string        `mapstructure:"region"`
		KeyPrefix       string        `mapstructure:"key_prefix"`
		PresignExpiry   time.Duration `mapstructure:"presign_expiry"`
		AccessKeyID     string        `mapstructure:"access_key_id"`
		SecretAccessKey string        `mapstructure:"secret_access_key"`
	} `mapstructure:"s3"`
}

type ReportsConfig struct {
	Workers    int           `mapstructure:"workers"`
	QueueSize  int           `mapstructure:"queue_size"`
	MaxRetries uint64        `mapstructure:"max_retries"`
	GenTimeout time.Duration `mapstructure:"generation_timeout"`
}

type SchedulerConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Interval time.Duration `mapstructure:"interval"`
}

type SentryConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	DSN         string  `mapstructure:"dsn"`
	Environment string  `mapstructure:"environment"`
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// NewConfig loads and validates the configuration
func NewConfig() (*Configuration, error) {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("PULSEBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read config file").
				Mark(ierr.ErrInternal)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to parse configuration").
			Mark(ierr.ErrInternal)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "pulseboard")
	v.SetDefault("mongo.timeout", 10*time.Second)
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("cors.allowed_origin", "http://localhost:3000")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("cache.cleanup_interval", 10*time.Minute)
	v.SetDefault("artifact.provider", "local")
	v.SetDefault("artifact.local_dir", "./artifacts")
	v.SetDefault("artifact.s3.presign_expiry", 15*time.Minute)
	v.SetDefault("reports.workers", 4)
	v.SetDefault("reports.queue_size", 64)
	v.SetDefault("reports.max_retries", 3)
	v.SetDefault("reports.generation_timeout", 2*time.Minute)
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.interval", time.Minute)
	v.SetDefault("sentry.enabled", false)
	v.SetDefault("sentry.sample_rate", 1.0)
	v.SetDefault("logging.level", "info")
}

// Validate checks the configuration for required values
func (c *Configuration) Validate() error {
	if c.Auth.Secret == "" {
		return ierr.NewError("auth.secret is required").
			WithHint("Set PULSEBOARD_AUTH_SECRET").
			Mark(ierr.ErrValidation)
	}
	if c.Mongo.URI == "" {
		return ierr.NewError("mongo.uri is required").
			WithHint("Set PULSEBOARD_MONGO_URI").
			Mark(ierr.ErrValidation)
	}
	if c.Artifact.Provider == "s3" && c.Artifact.S3.Bucket == "" {
		return ierr.NewError("artifact.s3.bucket is required when provider is s3").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetDefaultConfig returns a configuration suitable for tests and scripts
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Server: ServerConfig{Address: ":8080"},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "pulseboard_test",
			Timeout:  10 * time.Second,
		},
		Auth: AuthConfig{
			Secret:   "test-secret",
			TokenTTL: 24 * time.Hour,
		},
		CORS:  CORSConfig{AllowedOrigin: "http://localhost:3000"},
		Cache: CacheConfig{Enabled: false},
		Artifact: ArtifactConfig{
			Provider: "local",
			LocalDir: "./artifacts",
		},
		Reports: ReportsConfig{
			Workers:    2,
			QueueSize:  16,
			MaxRetries: 2,
			GenTimeout: time.Minute,
		},
		Scheduler: SchedulerConfig{Enabled: false, Interval: time.Minute},
		Logging:   LoggingConfig{Level: "debug"},
	}
}
