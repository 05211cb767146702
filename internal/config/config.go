package config

import (
	"flag"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port int
	Env  string
	DB   struct {
		DSN            string
		MaxOpenConns   int
		MaxIdleTime    time.Duration
		Migrate        bool
		MigrationsPath string
	}
	Redis struct {
		URL          string
		MaxOpenConns int
		MaxIdleConns int
		MaxIdleTime  time.Duration
	}
	RateLimit struct {
		Enabled        bool
		Capacity       int
		RefillTokens   int
		RefillInterval time.Duration
	}
	JWTSecret        string
	AMQPURL          string
	HoldTTL          time.Duration
	ReaperInterval   time.Duration
	OtelCollectorUrl string
	DisplayVersion   bool
}

// Load parses args into a Config. Every flag defaults to the matching
// environment variable, e.g. -db-dsn reads DB_DSN.
func Load(args []string) (Config, error) {
	var cfg Config

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 3000)
	v.SetDefault("env", "dev")
	v.SetDefault("db-max-open-conns", 25)
	v.SetDefault("db-max-idle-time", 15*time.Minute)
	v.SetDefault("db-migrations", "file://migrations")
	v.SetDefault("redis-url", "localhost:6379")
	v.SetDefault("redis-max-open-conns", 25)
	v.SetDefault("redis-max-idle-conns", 10)
	v.SetDefault("redis-max-idle-time", 2*time.Minute)
	v.SetDefault("ratelimit-enabled", true)
	v.SetDefault("ratelimit-capacity", 10)
	v.SetDefault("ratelimit-refill-tokens", 1)
	v.SetDefault("ratelimit-refill-interval", time.Second)
	v.SetDefault("hold-ttl", 2*time.Minute)
	v.SetDefault("reaper-interval", time.Minute)

	fs := flag.NewFlagSet("booking-api", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "port", v.GetInt("port"), "server port")
	fs.StringVar(&cfg.Env, "env", v.GetString("env"), "Environment (dev|staging|prod)")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", v.GetString("db-dsn"), "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", v.GetInt("db-max-open-conns"), "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", v.GetDuration("db-max-idle-time"), "PostgreSQL max idle time for connections")
	fs.BoolVar(&cfg.DB.Migrate, "migrate", v.GetBool("migrate"), "Apply database migrations at startup")
	fs.StringVar(&cfg.DB.MigrationsPath, "db-migrations", v.GetString("db-migrations"), "Migrations source URL")

	fs.StringVar(&cfg.Redis.URL, "redis-url", v.GetString("redis-url"), "Redis URL")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", v.GetInt("redis-max-open-conns"), "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", v.GetInt("redis-max-idle-conns"), "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", v.GetDuration("redis-max-idle-time"), "Redis max idle time for connections")

	fs.BoolVar(&cfg.RateLimit.Enabled, "ratelimit-enabled", v.GetBool("ratelimit-enabled"), "Enable the rate limiter")
	fs.IntVar(&cfg.RateLimit.Capacity, "ratelimit-capacity", v.GetInt("ratelimit-capacity"), "Rate limiter bucket size")
	fs.IntVar(&cfg.RateLimit.RefillTokens, "ratelimit-refill-tokens", v.GetInt("ratelimit-refill-tokens"), "Tokens added per refill interval")
	fs.DurationVar(&cfg.RateLimit.RefillInterval, "ratelimit-refill-interval", v.GetDuration("ratelimit-refill-interval"), "Rate limiter refill interval")

	fs.StringVar(&cfg.JWTSecret, "jwt-secret", v.GetString("jwt-secret"), "HS256 secret used to verify bearer tokens")
	fs.StringVar(&cfg.AMQPURL, "amqp-url", v.GetString("amqp-url"), "RabbitMQ URL, booking events are only logged when empty")
	fs.DurationVar(&cfg.HoldTTL, "hold-ttl", v.GetDuration("hold-ttl"), "Seat hold lifetime")
	fs.DurationVar(&cfg.ReaperInterval, "reaper-interval", v.GetDuration("reaper-interval"), "Expired hold cleanup interval, 0 disables the cleanup")
	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", v.GetString("otel-collector-url"), "OpenTelemetry collector gRPC endpoint")

	fs.BoolVar(&cfg.DisplayVersion, "version", false, "Display version and exit")

	err := fs.Parse(args)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}
