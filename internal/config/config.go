// Package config loads service settings from config.yaml and TRAFFIC_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP    HTTPConfig    `mapstructure:"http"`
	Store   StoreConfig   `mapstructure:"store"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	Report  ReportConfig  `mapstructure:"report"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type HTTPConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type StoreConfig struct {
	Driver          string        `mapstructure:"driver"`
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type KafkaConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Brokers    []string      `mapstructure:"brokers"`
	Topic      string        `mapstructure:"topic"`
	GroupID    string        `mapstructure:"group_id"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

type ReportConfig struct {
	Timezone     string        `mapstructure:"timezone"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.read_timeout", 10*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.max_open_conns", 20)
	v.SetDefault("store.max_idle_conns", 5)
	v.SetDefault("store.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("store.auto_migrate", false)
	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "traffic.detections")
	v.SetDefault("kafka.group_id", "traffic-report")
	v.SetDefault("kafka.retry_delay", time.Second)
	v.SetDefault("report.timezone", "UTC")
	v.SetDefault("report.fetch_timeout", 10*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Load reads config.yaml from ./configs, the working directory or any of
// extraPaths. A missing file is not an error; environment variables such as
// TRAFFIC_HTTP_PORT override file values.
func Load(extraPaths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range extraPaths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TRAFFIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("store.url", "DATABASE_URL", "TRAFFIC_STORE_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory":
	case "postgres":
		if c.Store.URL == "" {
			return fmt.Errorf("store.url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}
	if c.Kafka.Enabled && (len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "") {
		return fmt.Errorf("kafka.brokers and kafka.topic are required when kafka is enabled")
	}
	if _, err := time.LoadLocation(c.Report.Timezone); err != nil {
		return fmt.Errorf("invalid report.timezone %q: %w", c.Report.Timezone, err)
	}
	return nil
}
