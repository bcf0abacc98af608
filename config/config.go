package config

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"go.yaml.in/yaml/v4"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	RouteBox RouteBoxConfig `yaml:"routebox"`
	Geocoder GeocoderConfig `yaml:"geocoder"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

type KafkaConfig struct {
	Host                  string `yaml:"host"`
	Port                  int    `yaml:"port"`
	RouteEventsTopicName  string `yaml:"route_events_topic_name"`
	StopUpdatesTopicName  string `yaml:"stop_updates_topic_name"`
	RouteDelayedTopicName string `yaml:"route_delayed_topic_name"`
}

type RedisConfig struct {
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type RouteBoxConfig struct {
	HTTPAddr           string   `yaml:"http_addr"`
	KafkaConsumerGroup string   `yaml:"kafka_consumer_group"`
	CacheTTLSeconds    int      `yaml:"cache_ttl_seconds"`
	RateLimitPerMinute int      `yaml:"rate_limit_per_minute"`
	CORSOrigins        []string `yaml:"cors_origins"`

	MonitorIntervalSeconds int `yaml:"monitor_interval_seconds"`
	MonitorBatchSize       int `yaml:"monitor_batch_size"`
	MonitorConcurrency     int `yaml:"monitor_concurrency"`
	MonitorPublishRetries  int `yaml:"monitor_publish_retries"`
	MonitorRetryBackoffMs  int `yaml:"monitor_retry_backoff_ms"`

	WorkerHTTPAddr string `yaml:"worker_http_addr"`
}

type GeocoderConfig struct {
	// Mode is "nominatim", "fake" or empty (disabled).
	Mode            string `yaml:"mode"`
	BaseURL         string `yaml:"base_url"`
	UserAgent       string `yaml:"user_agent"`
	Country         string `yaml:"country"`
	CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
}

func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	config.applyEnv()
	return &config, nil
}

// LoadEnv reads .env style files into the process environment. Missing files
// are skipped; variables already set are kept.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errors.Wrapf(err, "load %s", f)
		}
	}
	return nil
}

// applyEnv lets secrets come from the environment instead of the YAML file.
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

func (d DatabaseConfig) ConnString() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.Username, d.Password, d.Host, d.Port, d.DBName, sslMode)
}

func (k KafkaConfig) Brokers() []string {
	return []string{fmt.Sprintf("%s:%d", k.Host, k.Port)}
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
