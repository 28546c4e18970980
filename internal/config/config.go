// config предоставляет структуру конфигурации read-api
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
//
// Конфигурация читается один раз на старте и дальше только передаётся по значению.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/pagination"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	GRPC       GRPCConfig       `yaml:"grpc"`
	DB         DBConfig         `yaml:"db"`
	Mongo      MongoConfig      `yaml:"mongo"`
	S3         S3Config         `yaml:"s3"`
	Pagination PaginationConfig `yaml:"pagination"`
	Analytics  AnalyticsConfig  `yaml:"analytics"`
	Auth       AuthConfig       `yaml:"auth"`
	Cache      CacheConfig      `yaml:"cache"`
	Startup    StartupConfig    `yaml:"startup"`
	Timeouts   TimeoutConfig    `yaml:"timeouts"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host     string `yaml:"host"      env:"HTTP_HOST"      env-default:"0.0.0.0"`
	Port     string `yaml:"port"      env:"HTTP_PORT"      env-default:"8080"`
	BasePath string `yaml:"base_path" env:"HTTP_BASE_PATH" env-default:"/api"`
}

// GRPCConfig — порт gRPC health-сервера для проб.
type GRPCConfig struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50090"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Addr возвращает адрес в формате host:port.
func (g GRPCConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// DBConfig — PostgreSQL.
type DBConfig struct {
	URL string `yaml:"url" env:"DATABASE_URL" env-required:"true"`
	// Применять встроенные миграции на старте.
	Migrate bool `yaml:"migrate" env:"DB_MIGRATE" env-default:"false"`
}

// MongoConfig — MongoDB с деревьями комментариев.
type MongoConfig struct {
	URL string `yaml:"url" env:"MONGO_URL" env-required:"true"`
}

// S3Config — объектное хранилище медиа (видео, подкасты).
type S3Config struct {
	Endpoint   string        `yaml:"endpoint"    env:"S3_ENDPOINT"`
	AccessKey  string        `yaml:"access_key"  env:"S3_ACCESS_KEY"`
	SecretKey  string        `yaml:"secret_key"  env:"S3_SECRET_KEY"`
	Bucket     string        `yaml:"bucket"      env:"S3_BUCKET"      env-default:"media"`
	Region     string        `yaml:"region"      env:"S3_REGION"      env-default:"us-east-1"`
	PresignTTL time.Duration `yaml:"presign_ttl" env:"S3_PRESIGN_TTL" env-default:"1h"`
}

// Enabled — медиа-URL подписываются, только если задан endpoint.
func (s S3Config) Enabled() bool {
	return s.Endpoint != ""
}

// PaginationConfig — потолок размера страницы для всех эндпоинтов.
type PaginationConfig struct {
	PerPageMax int `yaml:"per_page_max" env:"API_PER_PAGE_MAX" env-default:"1000"`
}

// AnalyticsConfig — ограничения исторической статистики.
type AnalyticsConfig struct {
	MaxDays int `yaml:"max_days" env:"ANALYTICS_MAX_DAYS" env-default:"366"`
}

// AuthConfig — проверка bearer-токенов и API-ключей.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"         env:"JWT_SECRET"`
	Issuer          string        `yaml:"issuer"             env:"JWT_ISSUER"          env-default:"auth-service"`
	Audience        []string      `yaml:"audience"           env:"JWT_AUDIENCE"        env-separator:","`
	Leeway          time.Duration `yaml:"leeway"             env:"JWT_LEEWAY"          env-default:"5s"`
	APIKeyCacheSize int           `yaml:"api_key_cache_size" env:"API_KEY_CACHE_SIZE"  env-default:"4096"`
	APIKeyCacheTTL  time.Duration `yaml:"api_key_cache_ttl"  env:"API_KEY_CACHE_TTL"   env-default:"5m"`
}

// CacheConfig — заголовки edge-кэша для публичных ответов.
type CacheConfig struct {
	MaxAge               time.Duration `yaml:"max_age"                env:"CACHE_MAX_AGE"                env-default:"10m"`
	StaleWhileRevalidate time.Duration `yaml:"stale_while_revalidate" env:"CACHE_STALE_WHILE_REVALIDATE" env-default:"30s"`
	StaleIfError         time.Duration `yaml:"stale_if_error"         env:"CACHE_STALE_IF_ERROR"         env-default:"24h"`
}

// StartupConfig — повторные попытки подключения к зависимостям на старте.
type StartupConfig struct {
	Attempts uint64        `yaml:"attempts" env:"STARTUP_ATTEMPTS" env-default:"5"`
	Interval time.Duration `yaml:"interval" env:"STARTUP_INTERVAL" env-default:"2s"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
	Connect time.Duration `yaml:"connect" env:"CONNECT_TIMEOUT" env-default:"10s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	readFile := func(p string) error {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		return nil
	}

	switch {
	case path != "":
		if err := readFile(path); err != nil {
			return nil, err
		}
	case os.Getenv("CONFIG_PATH") != "":
		if err := readFile(os.Getenv("CONFIG_PATH")); err != nil {
			return nil, err
		}
	default:
		if _, err := os.Stat("local.yaml"); err == nil {
			if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
				return nil, fmt.Errorf("failed to read local.yaml: %w", err)
			}
			break
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate нормализует и проверяет значения.
func (c *Config) validate() error {
	if c.DB.URL == "" {
		return fmt.Errorf("db.url is required")
	}
	if c.Mongo.URL == "" {
		return fmt.Errorf("mongo.url is required")
	}
	if c.Pagination.PerPageMax <= 0 {
		c.Pagination.PerPageMax = pagination.FallbackMax
	}
	if c.Analytics.MaxDays <= 0 {
		return fmt.Errorf("analytics.max_days must be > 0")
	}
	if c.Auth.JWTSecret == "" && c.Env == "prod" {
		return fmt.Errorf("auth.jwt_secret is required in prod")
	}
	if c.Auth.APIKeyCacheSize <= 0 {
		return fmt.Errorf("auth.api_key_cache_size must be > 0")
	}
	if c.S3.Enabled() && c.S3.Bucket == "" {
		return fmt.Errorf("s3.bucket is required when s3.endpoint is set")
	}
	if c.Timeouts.Service <= 0 {
		return fmt.Errorf("timeouts.service must be > 0")
	}
	return nil
}
