package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/caarlos0/env/v9"

	"github.com/vibedit/vibedit-orders-service/internal/logging"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	Server   ServerConfig   `envPrefix:"SERVER_"`
	Database DatabaseConfig `envPrefix:"DB_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	Features FeatureFlags   `envPrefix:"FEATURE_"`
	Logging  logging.Config `envPrefix:"LOG_"`
	Metrics  MetricsConfig  `envPrefix:"METRICS_"`
}

type ServerConfig struct {
	Port            int           `env:"PORT" envDefault:"8082"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

type DatabaseConfig struct {
	Host            string        `env:"HOST" envDefault:"localhost"`
	Port            int           `env:"PORT" envDefault:"5432"`
	User            string        `env:"USER" envDefault:"vibedit"`
	Password        string        `env:"PASSWORD" envDefault:"vibedit"`
	Name            string        `env:"NAME" envDefault:"vibedit_orders"`
	SSLMode         string        `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"5m"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME" envDefault:"2m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT" envDefault:"2m"`
}

func (d DatabaseConfig) ConnectionString() string {
	return "host=" + d.Host +
		" port=" + strconv.Itoa(d.Port) +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" sslmode=" + d.SSLMode
}

type RedisConfig struct {
	Host         string        `env:"HOST" envDefault:"localhost"`
	Port         int           `env:"PORT" envDefault:"6379"`
	Password     string        `env:"PASSWORD"`
	DB           int           `env:"DB" envDefault:"0"`
	TTL          time.Duration `env:"TTL" envDefault:"5m"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"100"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"10"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type KafkaConfig struct {
	Brokers       []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	OrdersTopic   string   `env:"ORDERS_TOPIC" envDefault:"orders"`
	PaymentsTopic string   `env:"PAYMENTS_TOPIC" envDefault:"payments"`
	ConsumerGroup string   `env:"CONSUMER_GROUP" envDefault:"orders-service"`
}

type FeatureFlags struct {
	EnableOrderCaching bool `env:"ORDER_CACHING" envDefault:"true"`
	EnableOrderEvents  bool `env:"ORDER_EVENTS" envDefault:"true"`
	EnablePaymentsSync bool `env:"PAYMENTS_SYNC" envDefault:"true"`
	EnableDebugRoutes  bool `env:"DEBUG_ROUTES" envDefault:"false"`
}

type MetricsConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	Path    string `env:"PATH" envDefault:"/metrics"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values env.Parse cannot express.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Database.Port)
	}
	if c.Features.EnableOrderEvents && c.Kafka.OrdersTopic == "" {
		return fmt.Errorf("orders topic is required when order events are enabled")
	}
	if c.Features.EnablePaymentsSync && c.Kafka.PaymentsTopic == "" {
		return fmt.Errorf("payments topic is required when payment sync is enabled")
	}
	if (c.Features.EnableOrderEvents || c.Features.EnablePaymentsSync) && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("at least one kafka broker is required")
	}
	return nil
}
