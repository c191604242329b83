package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	ScoringWeighted = "weighted"
	ScoringFIFO     = "fifo"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Queue     QueueConfig
	Scheduler SchedulerConfig
	Redis     RedisConfig
	Broker    BrokerConfig
	Webhook   WebhookConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

type JWTConfig struct {
	Secret              string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenDuration time.Duration `envconfig:"JWT_ACCESS_TOKEN_DURATION" default:"15m"`
}

type QueueConfig struct {
	OfferTimeoutMinutes    int `envconfig:"QUEUE_OFFER_TIMEOUT_MINUTES" default:"15"`
	PurchaseTimeoutMinutes int `envconfig:"QUEUE_PURCHASE_TIMEOUT_MINUTES" default:"10"`
	MaxQueueSize           int `envconfig:"QUEUE_MAX_SIZE" default:"1000"`

	SuspiciousIPThreshold int           `envconfig:"QUEUE_SUSPICIOUS_IP_THRESHOLD" default:"5"`
	SuspiciousIPWindow    time.Duration `envconfig:"QUEUE_SUSPICIOUS_IP_WINDOW" default:"1h"`
	IPHashKey             string        `envconfig:"QUEUE_IP_HASH_KEY" default:"ticket-allocator"`

	Scoring         string        `envconfig:"QUEUE_SCORING" default:"weighted"`
	EarlyJoinBonus  int           `envconfig:"QUEUE_EARLY_JOIN_BONUS" default:"10"`
	EarlyJoinWindow time.Duration `envconfig:"QUEUE_EARLY_JOIN_WINDOW" default:"10m"`
	FlaggedPenalty  int           `envconfig:"QUEUE_FLAGGED_PENALTY" default:"100"`
}

func (c QueueConfig) OfferTimeout() time.Duration {
	return time.Duration(c.OfferTimeoutMinutes) * time.Minute
}

func (c QueueConfig) PurchaseTimeout() time.Duration {
	return time.Duration(c.PurchaseTimeoutMinutes) * time.Minute
}

type SchedulerConfig struct {
	Enabled           bool          `envconfig:"SCHEDULER_ENABLED" default:"true"`
	SweepInterval     time.Duration `envconfig:"SCHEDULER_SWEEP_INTERVAL" default:"30s"`
	AllocateInterval  time.Duration `envconfig:"SCHEDULER_ALLOCATE_INTERVAL" default:"1m"`
	DispatchInterval  time.Duration `envconfig:"SCHEDULER_DISPATCH_INTERVAL" default:"5s"`
	AuditInterval     time.Duration `envconfig:"SCHEDULER_AUDIT_INTERVAL" default:"5m"`
	SweepBatchSize    int           `envconfig:"SCHEDULER_SWEEP_BATCH_SIZE" default:"500"`
	DispatchBatchSize int           `envconfig:"SCHEDULER_DISPATCH_BATCH_SIZE" default:"100"`
	Parallelism       int           `envconfig:"SCHEDULER_PARALLELISM" default:"8"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type BrokerConfig struct {
	URL      string `envconfig:"RABBITMQ_URL"`
	Exchange string `envconfig:"RABBITMQ_EXCHANGE" default:"ticket.notifications"`
}

type WebhookConfig struct {
	Secret string `envconfig:"PAYMENT_WEBHOOK_SECRET"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Store.Driver != StoreDriverPostgres && cfg.Store.Driver != StoreDriverMemory {
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}
	if cfg.Queue.Scoring != ScoringWeighted && cfg.Queue.Scoring != ScoringFIFO {
		return Config{}, fmt.Errorf("unsupported QUEUE_SCORING %q", cfg.Queue.Scoring)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver: StoreDriverMemory,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeZone:   "UTC",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:              "test-secret",
			AccessTokenDuration: 15 * time.Minute,
		},
		Queue: QueueConfig{
			OfferTimeoutMinutes:    15,
			PurchaseTimeoutMinutes: 10,
			MaxQueueSize:           1000,
			SuspiciousIPThreshold:  5,
			SuspiciousIPWindow:     time.Hour,
			IPHashKey:              "test",
			Scoring:                ScoringWeighted,
			EarlyJoinBonus:         10,
			EarlyJoinWindow:        10 * time.Minute,
			FlaggedPenalty:         100,
		},
		Scheduler: SchedulerConfig{
			Enabled:           false,
			SweepInterval:     time.Second,
			AllocateInterval:  time.Second,
			DispatchInterval:  time.Second,
			AuditInterval:     time.Second,
			SweepBatchSize:    100,
			DispatchBatchSize: 100,
			Parallelism:       4,
		},
		Broker: BrokerConfig{
			Exchange: "ticket.notifications",
		},
		Webhook: WebhookConfig{
			Secret: "test-webhook-secret",
		},
	}
}
