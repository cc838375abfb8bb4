package config

import (
	"time"

	"github.com/joho/godotenv"
)

type StoreDriver string

const (
	StoreDriverFile  StoreDriver = "file"
	StoreDriverMongo StoreDriver = "mongo"
)

type StoreConfig struct {
	Driver StoreDriver
	Path   string
}

type UploadConfig struct {
	Dir        string
	PublicPath string
}

type MongoConfig struct {
	URI                    string
	Database               string
	Timeout                time.Duration
	ConnectTimeout         time.Duration
	ServerSelectionTimeout time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type RabbitMQConfig struct {
	URL             string
	MaxRetries      int
	RetryDelay      time.Duration
	ExchangeConfigs []ExchangeConfig
}

type ExchangeConfig struct {
	Name       string
	Type       string // direct, topic, fanout, headers
	Durable    bool
	AutoDelete bool
}

type OutboxConfig struct {
	BatchSize int
	Interval  time.Duration
}

type HTTPConfig struct {
	Port          string
	BindInterface string
}

type AuthConfig struct {
	AdminUsername string
	AdminPassword string
	JWTSecret     string
	TokenTTL      time.Duration
}

type LoggerConfig struct {
	Endpoint     string
	ServiceName  string
	IsProduction bool
}

type Config struct {
	Store    StoreConfig
	Upload   UploadConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Outbox   OutboxConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
	Logger   LoggerConfig
}

func NewConfig() *Config {
	_ = godotenv.Load()
	return &Config{
		Store: StoreConfig{
			Driver: StoreDriver(getStringEnv("STORE_DRIVER", string(StoreDriverFile))),
			Path:   getStringEnv("STORE_PATH", "db.json"),
		},
		Upload: UploadConfig{
			Dir:        getStringEnv("UPLOAD_DIR", "public/images/products"),
			PublicPath: getStringEnv("UPLOAD_PUBLIC_PATH", "/images/products"),
		},
		Mongo: MongoConfig{
			URI:                    getStringEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database:               getStringEnv("MONGO_DATABASE", "storefront"),
			Timeout:                time.Duration(getIntEnv("MONGO_TIMEOUT", 10)) * time.Second,
			ConnectTimeout:         time.Duration(getIntEnv("MONGO_CONNECT_TIMEOUT", 10)) * time.Second,
			ServerSelectionTimeout: time.Duration(getIntEnv("MONGO_SERVER_SELECTION_TIMEOUT", 5)) * time.Second,
		},
		Redis: RedisConfig{
			URL:      getStringEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getStringEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        getStringEnv("RABBITMQ_URL", "amqp://localhost:5672"),
			MaxRetries: getIntEnv("RABBITMQ_MAX_RETRIES", 3),
			RetryDelay: time.Duration(getIntEnv("RABBITMQ_RETRY_DELAY", 1)) * time.Second,
			ExchangeConfigs: []ExchangeConfig{
				{
					Name:       getStringEnv("RABBITMQ_EXCHANGE_NAME", "exchange.order"),
					Type:       getStringEnv("RABBITMQ_EXCHANGE_TYPE", "direct"),
					Durable:    getBoolEnv("RABBITMQ_EXCHANGE_DURABLE", true),
					AutoDelete: getBoolEnv("RABBITMQ_EXCHANGE_AUTO_DELETE", false),
				},
			},
		},
		Outbox: OutboxConfig{
			BatchSize: getIntEnv("OUTBOX_BATCH_SIZE", 100),
			Interval:  time.Duration(getIntEnv("OUTBOX_INTERVAL", 500)) * time.Millisecond,
		},
		HTTP: HTTPConfig{
			Port:          getStringEnv("HTTP_PORT", "3001"),
			BindInterface: getStringEnv("HTTP_BIND_INTERFACE", "0.0.0.0"),
		},
		Auth: AuthConfig{
			AdminUsername: getStringEnv("ADMIN_USERNAME", "admin"),
			AdminPassword: getStringEnv("ADMIN_PASSWORD", "admin"),
			JWTSecret:     getStringEnv("JWT_SECRET", "change-me"),
			TokenTTL:      time.Duration(getIntEnv("TOKEN_TTL_HOURS", 24)) * time.Hour,
		},
		Logger: LoggerConfig{
			Endpoint:     getStringEnv("OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:  getStringEnv("OTEL_SERVICE_NAME", "smoke-oasis-shop"),
			IsProduction: getBoolEnv("IS_PRODUCTION", false),
		},
	}
}
