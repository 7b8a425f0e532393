package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーション設定を表す
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
	Booking  BookingConfig
}

// AppConfig は実行環境とログ設定
type AppConfig struct {
	Env      string
	LogLevel string
}

// IsProduction は本番環境かを返す
func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig はカタログ用データベース設定
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	CatalogSource  string // memory | postgres
	MigrationsPath string
}

// RedisConfig はRedis設定
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// AMQPConfig はチケット発行イベントの送信先
type AMQPConfig struct {
	URL   string
	Queue string
}

// Enabled は送信先が設定されているかを返す
func (c *AMQPConfig) Enabled() bool {
	return c.URL != ""
}

// BookingConfig は座席予約の設定
type BookingConfig struct {
	LockDuration  time.Duration
	BasePrice     int
	Pricing       string // regular | weekend
	WeekendDays   string // 例: "sat,sun"
	StatsInterval time.Duration
}

// Load は環境変数から設定を読み込む
// カレントディレクトリに .env があれば先に読み込む（既存の環境変数は上書きしない）
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Env:      getEnv("APP_ENV", "development"),
			LogLevel: getEnv("LOG_LEVEL", ""),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "movie_booking"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			CatalogSource:  getEnv("CATALOG_SOURCE", "memory"),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		AMQP: AMQPConfig{
			URL:   getEnv("AMQP_URL", ""),
			Queue: getEnv("AMQP_QUEUE", "ticket.issued"),
		},
		Booking: BookingConfig{
			LockDuration:  getDurationEnv("BOOKING_LOCK_DURATION", 600*time.Second),
			BasePrice:     getIntEnv("BOOKING_BASE_PRICE", 1000),
			Pricing:       strings.ToLower(getEnv("BOOKING_PRICING", "regular")),
			WeekendDays:   getEnv("BOOKING_WEEKEND_DAYS", "sat,sun"),
			StatsInterval: getDurationEnv("STATS_INTERVAL", 30*time.Second),
		},
	}

	// DATABASE_URL があれば個別設定より優先する
	if raw := os.Getenv("DATABASE_URL"); raw != "" {
		applyDatabaseURL(&cfg.Database, raw)
	}
	// REDIS_URL があれば個別設定より優先し、Redis を有効にする
	if raw := os.Getenv("REDIS_URL"); raw != "" {
		applyRedisURL(&cfg.Redis, raw)
	}
	return cfg
}

func applyDatabaseURL(c *DatabaseConfig, raw string) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return
	}
	c.Host = u.Hostname()
	if p := u.Port(); p != "" {
		c.Port = p
	}
	if u.User != nil {
		c.User = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			c.Password = pw
		}
	}
	if name := strings.TrimPrefix(u.Path, "/"); name != "" {
		c.DBName = name
	}
	c.SSLMode = "require"
	if mode := u.Query().Get("sslmode"); mode != "" {
		c.SSLMode = mode
	}
}

func applyRedisURL(c *RedisConfig, raw string) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return
	}
	c.Enabled = true
	c.Host = u.Hostname()
	if p := u.Port(); p != "" {
		c.Port = p
	}
	if u.User != nil {
		if pw, ok := u.User.Password(); ok {
			c.Password = pw
		}
	}
}

// DSN はPostgreSQL接続文字列を返す
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

// UsePostgres はカタログをPostgreSQLから読むかを返す
func (c *DatabaseConfig) UsePostgres() bool {
	return c.CatalogSource == "postgres"
}

// Addr はRedis接続アドレスを返す
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
