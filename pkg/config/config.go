package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreRedis    = "redis"

	CatalogPostgres = "postgres"
	CatalogRemote   = "remote"
	CatalogStatic   = "static"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Preferences PreferenceConfig
	Catalog     CatalogConfig
	Recommender RecommenderConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	AllowOrigins   []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// seed the products table with the built-in catalog when it is empty
	Seed bool
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type PreferenceConfig struct {
	Store string
	TTL   time.Duration
}

type CatalogConfig struct {
	Source  string
	URL     string
	Timeout time.Duration
}

type RecommenderConfig struct {
	SearchLatency time.Duration
	DefaultCount  int
	NoiseSeed     int64
}

// UsesPostgres reports whether any component needs the database.
func (c *Config) UsesPostgres() bool {
	return c.Preferences.Store == StorePostgres || c.Catalog.Source == CatalogPostgres
}

func (c *Config) UsesRedis() bool {
	return c.Preferences.Store == StoreRedis
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	requestTimeout, err := getDuration("REQUEST_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	prefTTL, err := getDuration("PREFERENCE_TTL", "0s")
	if err != nil {
		return nil, err
	}
	catalogTimeout, err := getDuration("CATALOG_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	searchLatency, err := getDuration("SEARCH_LATENCY", "0s")
	if err != nil {
		return nil, err
	}

	recommendCount, err := strconv.Atoi(getEnv("RECOMMEND_COUNT", "6"))
	if err != nil || recommendCount <= 0 {
		return nil, errors.New("RECOMMEND_COUNT must be a positive integer")
	}

	noiseSeed, err := strconv.ParseInt(getEnv("NOISE_SEED", "0"), 10, 64)
	if err != nil {
		return nil, errors.New("invalid NOISE_SEED")
	}

	seed, err := strconv.ParseBool(getEnv("DB_SEED", "true"))
	if err != nil {
		return nil, errors.New("invalid DB_SEED")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "SmartMarket API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RequestTimeout: requestTimeout,
			AllowOrigins:   getList("ALLOW_ORIGINS", "http://localhost:3000,http://localhost:8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "smart_market"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
			Seed:     seed,
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Preferences: PreferenceConfig{
			Store: getEnv("PREFERENCE_STORE", StoreRedis),
			TTL:   prefTTL,
		},
		Catalog: CatalogConfig{
			Source:  getEnv("CATALOG_SOURCE", CatalogStatic),
			URL:     getEnv("CATALOG_URL", ""),
			Timeout: catalogTimeout,
		},
		Recommender: RecommenderConfig{
			SearchLatency: searchLatency,
			DefaultCount:  recommendCount,
			NoiseSeed:     noiseSeed,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Preferences.Store {
	case StorePostgres, StoreRedis:
	default:
		return fmt.Errorf("unknown PREFERENCE_STORE %q", c.Preferences.Store)
	}

	switch c.Catalog.Source {
	case CatalogPostgres, CatalogStatic:
	case CatalogRemote:
		if c.Catalog.URL == "" {
			return errors.New("missing catalog url")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.Catalog.Source)
	}

	if c.UsesPostgres() && c.Database.Password == "" {
		return errors.New("missing database password")
	}

	if c.Preferences.TTL < 0 {
		return errors.New("PREFERENCE_TTL cannot be negative")
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getDuration(key, defaultVal string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultVal))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getList(key, defaultVal string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, defaultVal), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
