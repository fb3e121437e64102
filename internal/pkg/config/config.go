package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

type (
	Tasks struct {
		DiscountExpiryInterval time.Duration
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout
		RateLimiterQPS   int           // middleware rate limiter capacity
		RateLimiterBurst int           // middleware rate limiter burst/refill
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host              string
		Port              string
		User              string
		Password          string
		DBName            string
		SSLMode           string
		MigrationsEnabled bool
		MaxConns          int // 0 - значение по умолчанию пула
		MinConns          int
	}

	// ForwarderService - партнер-экспедитор, у которого запрашивается тариф,
	// если для направления нет своего правила. Пустой GRPCHost отключает запросы.
	ForwarderService struct {
		GRPCHost       string
		Code           string
		RequestTimeout time.Duration
	}

	Redis struct {
		URL            string
		KeyPrefix      string
		DialTimeout    time.Duration
		ReadTimeout    time.Duration
		PricingRuleTTL time.Duration
	}

	Pricing struct {
		DefaultVolumetricDivisor float64
	}

	Log struct {
		Level string
	}

	Kafka struct {
		PortHealthcheck    string
		Brokers            string
		Topic              string
		ConsumerGroup      string
		StatusChangedTopic string
		Sarama             Sarama
		Handlers           KafkaHandlers
	}

	Sarama struct {
		Version                   string
		ConsumerOffsetsAutocommit bool
	}

	KafkaHandlers struct {
		TrackingEvent TrackingEvent
	}

	TrackingEvent struct {
		ProcessTimeout time.Duration
	}

	Config struct {
		Tasks     Tasks
		Server    HTTPServer
		Database  Database
		Forwarder ForwarderService
		Redis     Redis
		Pricing   Pricing
		Kafka     Kafka
		Log       Log
	}
)

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	discountInterval, err := osGetEnvDuration("BACKGROUND_DISCOUNT_EXPIRY_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	saramaOffsetsAutocommit, err := osGetBool("KAFKA_SARAMA_OFFSETS_AUTOCOMMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	trackingEventTimeout, err := osGetEnvDuration("KAFKA_HANDLER_TRACKING_EVENT_PROCESS_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	migrationsEnabled, err := osGetBool("POSTGRES_MIGRATIONS_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbMaxConns, err := osGetInt("POSTGRES_MAX_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	dbMinConns, err := osGetInt("POSTGRES_MIN_CONNS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	forwarderTimeout, err := osGetEnvDuration("FORWARDER_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisDialTimeout, err := osGetEnvDuration("REDIS_DIAL_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	redisReadTimeout, err := osGetEnvDuration("REDIS_READ_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pricingRuleTTL, err := osGetEnvDuration("REDIS_PRICING_RULE_TTL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	divisor, err := osGetFloat("PRICING_DEFAULT_VOLUMETRIC_DIVISOR")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	return &Config{
		Tasks: Tasks{
			DiscountExpiryInterval: discountInterval,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:              os.Getenv("POSTGRES_HOST"),
			Port:              os.Getenv("POSTGRES_PORT"),
			User:              os.Getenv("POSTGRES_USER"),
			Password:          os.Getenv("POSTGRES_PASSWORD"),
			DBName:            os.Getenv("POSTGRES_DB"),
			SSLMode:           os.Getenv("POSTGRES_SSLMODE"),
			MigrationsEnabled: migrationsEnabled,
			MaxConns:          dbMaxConns,
			MinConns:          dbMinConns,
		},
		Forwarder: ForwarderService{
			GRPCHost:       os.Getenv("FORWARDER_GRPC_HOST"),
			Code:           os.Getenv("FORWARDER_CODE"),
			RequestTimeout: forwarderTimeout,
		},
		Redis: Redis{
			URL:            os.Getenv("REDIS_URL"),
			KeyPrefix:      os.Getenv("REDIS_KEY_PREFIX"),
			DialTimeout:    redisDialTimeout,
			ReadTimeout:    redisReadTimeout,
			PricingRuleTTL: pricingRuleTTL,
		},
		Pricing: Pricing{
			DefaultVolumetricDivisor: divisor,
		},
		Log: Log{
			Level: os.Getenv("LOG_LEVEL"),
		},
		Kafka: Kafka{
			Brokers:            os.Getenv("KAFKA_BROKERS"),
			Topic:              os.Getenv("KAFKA_TOPIC"),
			ConsumerGroup:      os.Getenv("KAFKA_CONSUMER_GROUP"),
			StatusChangedTopic: os.Getenv("KAFKA_STATUS_CHANGED_TOPIC"),
			PortHealthcheck:    os.Getenv("KAFKA_HTTP_HEALTHCHECK_PORT"),
			Sarama: Sarama{
				Version:                   os.Getenv("KAFKA_SARAMA_VERSION"),
				ConsumerOffsetsAutocommit: saramaOffsetsAutocommit,
			},
			Handlers: KafkaHandlers{
				TrackingEvent: TrackingEvent{
					ProcessTimeout: trackingEventTimeout,
				},
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MinConns < 0 {
		return errors.New("POSTGRES_MAX_CONNS and POSTGRES_MIN_CONNS must not be negative")
	}
	if cfg.Database.MaxConns > 0 && cfg.Database.MinConns > cfg.Database.MaxConns {
		return errors.New("POSTGRES_MIN_CONNS must not exceed POSTGRES_MAX_CONNS")
	}

	if cfg.Tasks.DiscountExpiryInterval == time.Duration(0) {
		return errors.New("BACKGROUND_DISCOUNT_EXPIRY_INTERVAL is required")
	}

	if cfg.Forwarder.GRPCHost != "" && cfg.Forwarder.Code == "" {
		return errors.New("FORWARDER_CODE is required when FORWARDER_GRPC_HOST is set")
	}
	if cfg.Forwarder.GRPCHost != "" && cfg.Forwarder.RequestTimeout == time.Duration(0) {
		return errors.New("FORWARDER_REQUEST_TIMEOUT is required when FORWARDER_GRPC_HOST is set")
	}

	if cfg.Redis.URL == "" {
		return errors.New("REDIS_URL is required")
	}
	if cfg.Redis.PricingRuleTTL == time.Duration(0) {
		return errors.New("REDIS_PRICING_RULE_TTL is required")
	}

	if cfg.Pricing.DefaultVolumetricDivisor < 0 {
		return errors.New("PRICING_DEFAULT_VOLUMETRIC_DIVISOR must not be negative")
	}

	if cfg.Kafka.Brokers == "" {
		return errors.New("KAFKA_BROKERS is required")
	}
	if cfg.Kafka.Topic == "" {
		return errors.New("KAFKA_TOPIC is required")
	}
	if cfg.Kafka.ConsumerGroup == "" {
		return errors.New("KAFKA_CONSUMER_GROUP is required")
	}
	if cfg.Kafka.StatusChangedTopic == "" {
		return errors.New("KAFKA_STATUS_CHANGED_TOPIC is required")
	}
	if cfg.Kafka.PortHealthcheck == "" {
		return errors.New("KAFKA_HTTP_HEALTHCHECK_PORT is required")
	}

	if cfg.Kafka.Sarama.Version == "" {
		return errors.New("KAFKA_SARAMA_VERSION is required")
	}

	if cfg.Kafka.Handlers.TrackingEvent.ProcessTimeout == time.Duration(0) {
		return errors.New("KAFKA_HANDLER_TRACKING_EVENT_PROCESS_TIMEOUT is required")
	}

	return nil
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetFloat(s string) (float64, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}
