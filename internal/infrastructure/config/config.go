package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is the development signing secret; production refuses it
const DefaultJWTSecret = "marketplace-dev-secret-change-me"

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Log        LogConfig
	Event      EventConfig
	HTTP       HTTPConfig
	Commission CommissionConfig
	Kafka      KafkaConfig
	Storage    StorageConfig
	Telemetry  TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Driver          string // postgres, sqlite
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	Path            string // sqlite file path or ":memory:"
	AutoMigrate     bool   // sqlite only
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port address
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                string
	AccessTokenExpiration time.Duration
	Issuer                string
}

// EventConfig holds event processing configuration
type EventConfig struct {
	IdempotencyEnabled bool
	IdempotencyTTL     time.Duration
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string
}

// CommissionConfig holds the platform commission settings
type CommissionConfig struct {
	DefaultRate decimal.Decimal
	Currency    string
	// VendorRates maps vendor ids to a rate overriding DefaultRate
	VendorRates map[string]decimal.Decimal
}

// KafkaConfig holds the payout signal producer settings
type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	PayoutTopic  string
	WriteTimeout time.Duration
	RequiredAcks int // -1 all, 0 none, 1 leader
}

// StorageConfig holds S3-compatible object storage settings for dispute evidence
type StorageConfig struct {
	Provider           string // s3, stub
	Bucket             string
	AccessKey          string
	SecretKey          string
	Endpoint           string
	Region             string
	UseSSL             bool
	UsePathStyle       bool
	PresignExpiration  time.Duration
	DownloadExpiration time.Duration
	StubBaseURL        string
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable tracing export
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string
	Insecure          bool // development only
	MetricsEnabled    bool // Prometheus /metrics endpoint
	DBTraceEnabled    bool
	DBSlowQueryThresh time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with MKT_ prefix (e.g., MKT_DATABASE_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/marketplace")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("MKT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaultRate, err := parseRate(v.GetString("commission.default_rate"))
	if err != nil {
		return nil, fmt.Errorf("commission.default_rate: %w", err)
	}
	vendorRates := make(map[string]decimal.Decimal)
	for vendorID, raw := range v.GetStringMapString("commission.vendor_rates") {
		rate, err := parseRate(raw)
		if err != nil {
			return nil, fmt.Errorf("commission.vendor_rates.%s: %w", vendorID, err)
		}
		vendorRates[vendorID] = rate
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Driver:          v.GetString("database.driver"),
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			Path:            v.GetString("database.path"),
			AutoMigrate:     v.GetBool("database.auto_migrate"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:                v.GetString("jwt.secret"),
			AccessTokenExpiration: v.GetDuration("jwt.access_token_expiration"),
			Issuer:                v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Event: EventConfig{
			IdempotencyEnabled: !v.IsSet("event.idempotency_enabled") || v.GetBool("event.idempotency_enabled"),
			IdempotencyTTL:     v.GetDuration("event.idempotency_ttl"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Commission: CommissionConfig{
			DefaultRate: defaultRate,
			Currency:    strings.ToUpper(v.GetString("commission.currency")),
			VendorRates: vendorRates,
		},
		Kafka: KafkaConfig{
			Enabled:      v.GetBool("kafka.enabled"),
			Brokers:      v.GetStringSlice("kafka.brokers"),
			PayoutTopic:  v.GetString("kafka.payout_topic"),
			WriteTimeout: v.GetDuration("kafka.write_timeout"),
			RequiredAcks: v.GetInt("kafka.required_acks"),
		},
		Storage: StorageConfig{
			Provider:           v.GetString("storage.provider"),
			Bucket:             v.GetString("storage.bucket"),
			AccessKey:          v.GetString("storage.access_key"),
			SecretKey:          v.GetString("storage.secret_key"),
			Endpoint:           v.GetString("storage.endpoint"),
			Region:             v.GetString("storage.region"),
			UseSSL:             v.GetBool("storage.use_ssl"),
			UsePathStyle:       v.GetBool("storage.use_path_style"),
			PresignExpiration:  v.GetDuration("storage.presign_expiration"),
			DownloadExpiration: v.GetDuration("storage.download_expiration"),
			StubBaseURL:        v.GetString("storage.stub_base_url"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			MetricsEnabled:    !v.IsSet("telemetry.metrics_enabled") || v.GetBool("telemetry.metrics_enabled"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
		},
	}

	// MKT_KAFKA_BROKERS arrives as one comma separated string
	if len(cfg.Kafka.Brokers) == 1 && strings.Contains(cfg.Kafka.Brokers[0], ",") {
		cfg.Kafka.Brokers = strings.Split(cfg.Kafka.Brokers[0], ",")
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseRate(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "marketplace"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "marketplace"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "marketplace.db"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = DefaultJWTSecret
	}
	if cfg.JWT.AccessTokenExpiration == 0 {
		cfg.JWT.AccessTokenExpiration = time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "marketplace"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Event.IdempotencyTTL == 0 {
		cfg.Event.IdempotencyTTL = 24 * time.Hour
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // 1MB
	}
	// An empty CORS origin list allows no cross-origin requests.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Commission.DefaultRate.IsZero() {
		cfg.Commission.DefaultRate = decimal.RequireFromString("0.15")
	}
	if cfg.Commission.Currency == "" {
		cfg.Commission.Currency = "USD"
	}
	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{"localhost:9092"}
	}
	if cfg.Kafka.PayoutTopic == "" {
		cfg.Kafka.PayoutTopic = "marketplace.payouts"
	}
	if cfg.Kafka.WriteTimeout == 0 {
		cfg.Kafka.WriteTimeout = 10 * time.Second
	}
	if cfg.Kafka.RequiredAcks == 0 {
		cfg.Kafka.RequiredAcks = -1
	}
	if cfg.Storage.Provider == "" {
		cfg.Storage.Provider = "stub"
	}
	if cfg.Storage.Bucket == "" {
		cfg.Storage.Bucket = "marketplace-evidence"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.PresignExpiration == 0 {
		cfg.Storage.PresignExpiration = 15 * time.Minute
	}
	if cfg.Storage.DownloadExpiration == 0 {
		cfg.Storage.DownloadExpiration = time.Hour
	}
	if cfg.Storage.StubBaseURL == "" {
		cfg.Storage.StubBaseURL = "http://localhost:9000"
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("database.driver must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}

	one := decimal.NewFromInt(1)
	if c.Commission.DefaultRate.IsNegative() || c.Commission.DefaultRate.GreaterThan(one) {
		return fmt.Errorf("commission.default_rate must be between 0 and 1, got %s", c.Commission.DefaultRate)
	}
	for vendorID, rate := range c.Commission.VendorRates {
		if rate.IsNegative() || rate.GreaterThan(one) {
			return fmt.Errorf("commission.vendor_rates.%s must be between 0 and 1, got %s", vendorID, rate)
		}
	}
	if len(c.Commission.Currency) != 3 {
		return fmt.Errorf("commission.currency must be a 3-letter ISO code, got %q", c.Commission.Currency)
	}

	switch c.Storage.Provider {
	case "stub":
	case "s3":
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("storage.access_key and storage.secret_key are required for the s3 provider")
		}
	default:
		return fmt.Errorf("storage.provider must be s3 or stub, got %q", c.Storage.Provider)
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers is required when kafka is enabled")
	}

	if c.App.Env == "production" {
		if c.JWT.Secret == DefaultJWTSecret {
			return fmt.Errorf("jwt.secret must be set in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Driver != "postgres" {
			return fmt.Errorf("database.driver must be postgres in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
