package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the console configuration
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Upstream UpstreamConfig
	Auth     AuthConfig
	Tenancy  TenancyConfig
	Features FeaturesConfig
	Store    StoreConfig
	Redis    RedisConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Metrics  MetricsConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// UpstreamConfig points at the hospital API
type UpstreamConfig struct {
	BaseURL string
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
}

type TenancyConfig struct {
	BaseDomain string
	LocalHosts []string
	// UseDemoTenants seeds the domain table with the built-in demo tenants
	UseDemoTenants bool
}

type FeaturesConfig struct {
	// TierFile is an optional YAML file overriding the built-in tiers
	TierFile string
}

type StoreConfig struct {
	Type string // memory, redis
	TTL  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type MetricsConfig struct {
	Enabled bool
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("server.host"),
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Upstream: UpstreamConfig{
			BaseURL: v.GetString("upstream.base_url"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
			Issuer:    v.GetString("auth.issuer"),
		},
		Tenancy: TenancyConfig{
			BaseDomain:     v.GetString("tenancy.base_domain"),
			LocalHosts:     splitList(v.GetString("tenancy.local_hosts")),
			UseDemoTenants: v.GetBool("tenancy.demo_tenants"),
		},
		Features: FeaturesConfig{
			TierFile: v.GetString("features.tier_file"),
		},
		Store: StoreConfig{
			Type: v.GetString("store.type"),
			TTL:  v.GetDuration("store.ttl"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Database: DatabaseConfig{
			Enabled:  v.GetBool("database.enabled"),
			Host:     v.GetString("database.host"),
			Port:     v.GetInt("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			DBName:   v.GetString("database.name"),
			SSLMode:  v.GetString("database.sslmode"),
			LogLevel: v.GetString("database.log_level"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
			AllowedMethods: splitList(v.GetString("cors.allowed_methods")),
			AllowedHeaders: splitList(v.GetString("cors.allowed_headers")),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("upstream.base_url", "http://localhost:8000/api")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "")

	v.SetDefault("tenancy.base_domain", "")
	v.SetDefault("tenancy.local_hosts", "localhost,127.0.0.1")
	v.SetDefault("tenancy.demo_tenants", false)

	v.SetDefault("features.tier_file", "")

	v.SetDefault("store.type", "memory")
	v.SetDefault("store.ttl", 0)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "hospital_console")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000")
	v.SetDefault("cors.allowed_methods", "GET,POST,PUT,DELETE,OPTIONS")
	v.SetDefault("cors.allowed_headers", "Accept,Authorization,Content-Type,X-Request-ID,X-Session-ID")

	v.SetDefault("metrics.enabled", true)
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid server port %d", c.Server.Port))
	}
	if u, err := url.Parse(c.Upstream.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid UPSTREAM_BASE_URL %q", c.Upstream.BaseURL))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required"))
	}
	switch c.Store.Type {
	case "memory", "redis":
	default:
		errs = append(errs, fmt.Errorf("unsupported STORE_TYPE %q", c.Store.Type))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("unsupported LOG_FORMAT %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// RedisAddr returns host:port of Redis
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
