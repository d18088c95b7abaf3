package config

import (
	"botlist-service/internal/utils/runtime"
	"fmt"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"strings"
	"time"
)

const (
	developmentFlag = "development"
	httpPortFlag    = "http-port"

	mongoDBURIFlag      = "mongodb-uri"
	mongoDBDatabaseFlag = "mongodb-database"

	notifierFlag      = "notifier"
	notifyTimeoutFlag = "notify-timeout"

	kafkaHostFlag  = "kafka-host"
	kafkaPortFlag  = "kafka-port"
	kafkaTopicFlag = "kafka-topic"

	rabbitMQHostFlag     = "rabbitmq-host"
	rabbitMQPortFlag     = "rabbitmq-port"
	rabbitMQUsernameFlag = "rabbitmq-username"
	rabbitMQPasswordFlag = "rabbitmq-password"
	rabbitMQExchangeFlag = "rabbitmq-exchange"

	redisAddrFlag     = "redis-addr"
	redisPasswordFlag = "redis-password"
	redisDBFlag       = "redis-db"

	enrichmentURLFlag      = "enrichment-url"
	enrichmentCacheTTLFlag = "enrichment-cache-ttl"
	enrichmentTimeoutFlag  = "enrichment-timeout"

	jwtSigningKeyFlag = "jwt-signing-key"
	maxPageLimitFlag  = "max-page-limit"
)

const (
	NotifierKafka    = "kafka"
	NotifierRabbitMQ = "rabbitmq"
	NotifierLog      = "log"
)

type Config struct {
	MongoDB    MongoDBConfig
	Notifier   NotifierConfig
	Kafka      KafkaConfig
	RabbitMQ   RabbitMQConfig
	Redis      RedisConfig
	Enrichment EnrichmentConfig

	Development bool

	HTTPPort      int
	JWTSigningKey string

	// MaxPageLimit caps the page size of bot listings. Zero disables the cap.
	MaxPageLimit int
}

type MongoDBConfig struct {
	URI      string
	Database string
}

type NotifierConfig struct {
	Type    string
	Timeout time.Duration
}

type KafkaConfig struct {
	Host  string
	Port  int
	Topic string
}

type RabbitMQConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Exchange string
}

// RedisConfig is optional. An empty Addr keeps the enrichment cache in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type EnrichmentConfig struct {
	BaseURL  string
	CacheTTL time.Duration
	Timeout  time.Duration
}

func LoadGlobalConfig() (*Config, error) {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	viper.SetDefault(developmentFlag, true)
	viper.SetDefault(httpPortFlag, 8080)
	viper.SetDefault(mongoDBURIFlag, "mongodb://localhost:27017")
	viper.SetDefault(mongoDBDatabaseFlag, "botlist")
	viper.SetDefault(notifierFlag, NotifierKafka)
	viper.SetDefault(notifyTimeoutFlag, 5*time.Second)
	viper.SetDefault(kafkaHostFlag, "localhost")
	viper.SetDefault(kafkaPortFlag, 9092)
	viper.SetDefault(kafkaTopicFlag, "botlist-events")
	viper.SetDefault(rabbitMQHostFlag, "localhost")
	viper.SetDefault(rabbitMQPortFlag, 5672)
	viper.SetDefault(rabbitMQUsernameFlag, "guest")
	viper.SetDefault(rabbitMQPasswordFlag, "guest")
	viper.SetDefault(rabbitMQExchangeFlag, "botlist:events")
	viper.SetDefault(redisAddrFlag, "")
	viper.SetDefault(redisPasswordFlag, "")
	viper.SetDefault(redisDBFlag, 0)
	viper.SetDefault(enrichmentURLFlag, "https://galaxy-api-gets.vercel.app")
	viper.SetDefault(enrichmentCacheTTLFlag, time.Hour)
	viper.SetDefault(enrichmentTimeoutFlag, 10*time.Second)
	viper.SetDefault(jwtSigningKeyFlag, "")
	viper.SetDefault(maxPageLimitFlag, 100)

	pflag.Bool(developmentFlag, viper.GetBool(developmentFlag), "Development mode")
	pflag.Int32(httpPortFlag, viper.GetInt32(httpPortFlag), "HTTP port")
	pflag.String(mongoDBURIFlag, viper.GetString(mongoDBURIFlag), "MongoDB URI")
	pflag.String(mongoDBDatabaseFlag, viper.GetString(mongoDBDatabaseFlag), "MongoDB database name")
	pflag.String(notifierFlag, viper.GetString(notifierFlag), "Notifier backend (kafka, rabbitmq, log)")
	pflag.Duration(notifyTimeoutFlag, viper.GetDuration(notifyTimeoutFlag), "Timeout for a single notification")
	pflag.String(kafkaHostFlag, viper.GetString(kafkaHostFlag), "Kafka host")
	pflag.Int32(kafkaPortFlag, viper.GetInt32(kafkaPortFlag), "Kafka port")
	pflag.String(kafkaTopicFlag, viper.GetString(kafkaTopicFlag), "Kafka topic for lifecycle events")
	pflag.String(rabbitMQHostFlag, viper.GetString(rabbitMQHostFlag), "RabbitMQ host")
	pflag.Int32(rabbitMQPortFlag, viper.GetInt32(rabbitMQPortFlag), "RabbitMQ port")
	pflag.String(rabbitMQUsernameFlag, viper.GetString(rabbitMQUsernameFlag), "RabbitMQ username")
	pflag.String(rabbitMQPasswordFlag, viper.GetString(rabbitMQPasswordFlag), "RabbitMQ password")
	pflag.String(rabbitMQExchangeFlag, viper.GetString(rabbitMQExchangeFlag), "RabbitMQ exchange for lifecycle events")
	pflag.String(redisAddrFlag, viper.GetString(redisAddrFlag), "Redis address for the shared enrichment cache")
	pflag.String(redisPasswordFlag, viper.GetString(redisPasswordFlag), "Redis password")
	pflag.Int32(redisDBFlag, viper.GetInt32(redisDBFlag), "Redis database")
	pflag.String(enrichmentURLFlag, viper.GetString(enrichmentURLFlag), "Bot metadata API base URL")
	pflag.Duration(enrichmentCacheTTLFlag, viper.GetDuration(enrichmentCacheTTLFlag), "Bot metadata cache lifetime")
	pflag.Duration(enrichmentTimeoutFlag, viper.GetDuration(enrichmentTimeoutFlag), "Bot metadata request timeout")
	pflag.String(jwtSigningKeyFlag, viper.GetString(jwtSigningKeyFlag), "HMAC key used to verify session tokens")
	pflag.Int32(maxPageLimitFlag, viper.GetInt32(maxPageLimitFlag), "Maximum bots per listing page, 0 for no limit")
	pflag.Parse()

	runtime.Must(viper.BindPFlags(pflag.CommandLine))

	// Bind the viper flags to environment variables
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	for _, key := range []string{
		developmentFlag, httpPortFlag, mongoDBURIFlag, mongoDBDatabaseFlag, notifierFlag, notifyTimeoutFlag,
		kafkaHostFlag, kafkaPortFlag, kafkaTopicFlag, rabbitMQHostFlag, rabbitMQPortFlag, rabbitMQUsernameFlag,
		rabbitMQPasswordFlag, rabbitMQExchangeFlag, redisAddrFlag, redisPasswordFlag, redisDBFlag,
		enrichmentURLFlag, enrichmentCacheTTLFlag, enrichmentTimeoutFlag, jwtSigningKeyFlag, maxPageLimitFlag,
	} {
		runtime.Must(viper.BindEnv(key))
	}

	cfg := &Config{
		MongoDB: MongoDBConfig{
			URI:      viper.GetString(mongoDBURIFlag),
			Database: viper.GetString(mongoDBDatabaseFlag),
		},
		Notifier: NotifierConfig{
			Type:    viper.GetString(notifierFlag),
			Timeout: viper.GetDuration(notifyTimeoutFlag),
		},
		Kafka: KafkaConfig{
			Host:  viper.GetString(kafkaHostFlag),
			Port:  int(viper.GetInt32(kafkaPortFlag)),
			Topic: viper.GetString(kafkaTopicFlag),
		},
		RabbitMQ: RabbitMQConfig{
			Host:     viper.GetString(rabbitMQHostFlag),
			Port:     int(viper.GetInt32(rabbitMQPortFlag)),
			Username: viper.GetString(rabbitMQUsernameFlag),
			Password: viper.GetString(rabbitMQPasswordFlag),
			Exchange: viper.GetString(rabbitMQExchangeFlag),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString(redisAddrFlag),
			Password: viper.GetString(redisPasswordFlag),
			DB:       int(viper.GetInt32(redisDBFlag)),
		},
		Enrichment: EnrichmentConfig{
			BaseURL:  viper.GetString(enrichmentURLFlag),
			CacheTTL: viper.GetDuration(enrichmentCacheTTLFlag),
			Timeout:  viper.GetDuration(enrichmentTimeoutFlag),
		},
		Development:   viper.GetBool(developmentFlag),
		HTTPPort:      int(viper.GetInt32(httpPortFlag)),
		JWTSigningKey: viper.GetString(jwtSigningKeyFlag),
		MaxPageLimit:  int(viper.GetInt32(maxPageLimitFlag)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Notifier.Type {
	case NotifierKafka, NotifierRabbitMQ, NotifierLog:
	default:
		return fmt.Errorf("unknown notifier %q", c.Notifier.Type)
	}

	if c.JWTSigningKey == "" && !c.Development {
		return fmt.Errorf("%s is required outside development mode", jwtSigningKeyFlag)
	}
	if c.MaxPageLimit < 0 {
		return fmt.Errorf("%s must not be negative", maxPageLimitFlag)
	}
	if c.Enrichment.CacheTTL <= 0 {
		return fmt.Errorf("%s must be positive", enrichmentCacheTTLFlag)
	}

	return nil
}
