package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Storage StorageConfig
	Store   StoreConfig
	JWT     JWTConfig
	Remote  RemoteConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	AllowOrigins string
}

type LoggerConfig struct {
	Level string
	Env   string
	// File enables a rotated log file next to stdout when set.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// StorageConfig selects where the snapshot blob lives.
type StorageConfig struct {
	Type  string // memory, file, redis, sql, multi
	Key   string
	File  FileStorageConfig
	Redis RedisConfig
	SQL   SQLConfig
	Multi []string
}

type FileStorageConfig struct {
	Dir string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type SQLConfig struct {
	Driver string // sqlite or oracle
	DSN    string
	Table  string
}

type StoreConfig struct {
	Version    string
	BcryptCost int
	SeedAdmin  SeedAdminConfig
}

// SeedAdminConfig is the product admin created when the store is (re)seeded.
type SeedAdminConfig struct {
	Name     string
	Email    string
	Password string
}

type JWTConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

// RemoteConfig configures the simulated MySQL backend.
type RemoteConfig struct {
	Host       string
	Port       int
	Database   string
	User       string
	Password   string
	MinLatency time.Duration
	MaxLatency time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("server.allow_origins", "*")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.max_size_mb", 50)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age_days", 28)

	v.SetDefault("storage.type", "file")
	v.SetDefault("storage.key", "quizhub:database")
	v.SetDefault("storage.file.dir", "./data")
	v.SetDefault("storage.redis.address", "localhost:6379")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.sql.driver", "sqlite")
	v.SetDefault("storage.sql.dsn", "file:quizhub.db")
	v.SetDefault("storage.sql.table", "quizhub_snapshots")

	v.SetDefault("store.version", "2.0.0")
	v.SetDefault("store.bcrypt_cost", 10)
	v.SetDefault("store.seed_admin.name", "Product Admin")
	v.SetDefault("store.seed_admin.email", "admin@quizhub.local")
	v.SetDefault("store.seed_admin.password", "admin123")

	v.SetDefault("jwt.access_token_ttl", 60)

	v.SetDefault("remote.port", 3306)
	v.SetDefault("remote.min_latency", 500)
	v.SetDefault("remote.max_latency", 1500)
}

// LoadConfig reads config.yaml from the usual locations, then applies
// environment overrides (for example STORAGE_REDIS_ADDRESS).
func LoadConfig() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Add config paths based on environment
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../configs")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}
	return load(v)
}

// LoadConfigFromFile reads configuration from an explicit path.
func LoadConfigFromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			AllowOrigins: v.GetString("server.allow_origins"),
		},
		Logger: LoggerConfig{
			Level:      v.GetString("logger.level"),
			Env:        v.GetString("logger.env"),
			File:       v.GetString("logger.file"),
			MaxSizeMB:  v.GetInt("logger.max_size_mb"),
			MaxBackups: v.GetInt("logger.max_backups"),
			MaxAgeDays: v.GetInt("logger.max_age_days"),
		},
		Storage: StorageConfig{
			Type: v.GetString("storage.type"),
			Key:  v.GetString("storage.key"),
			File: FileStorageConfig{Dir: v.GetString("storage.file.dir")},
			Redis: RedisConfig{
				Address:  v.GetString("storage.redis.address"),
				Password: v.GetString("storage.redis.password"),
				DB:       v.GetInt("storage.redis.db"),
			},
			SQL: SQLConfig{
				Driver: v.GetString("storage.sql.driver"),
				DSN:    v.GetString("storage.sql.dsn"),
				Table:  v.GetString("storage.sql.table"),
			},
			Multi: v.GetStringSlice("storage.multi"),
		},
		Store: StoreConfig{
			Version:    v.GetString("store.version"),
			BcryptCost: v.GetInt("store.bcrypt_cost"),
			SeedAdmin: SeedAdminConfig{
				Name:     v.GetString("store.seed_admin.name"),
				Email:    v.GetString("store.seed_admin.email"),
				Password: v.GetString("store.seed_admin.password"),
			},
		},
		JWT: JWTConfig{
			SecretKey:      v.GetString("jwt.secret_key"),
			AccessTokenTTL: time.Duration(v.GetInt("jwt.access_token_ttl")) * time.Minute,
		},
		Remote: RemoteConfig{
			Host:       v.GetString("remote.host"),
			Port:       v.GetInt("remote.port"),
			Database:   v.GetString("remote.database"),
			User:       v.GetString("remote.user"),
			Password:   v.GetString("remote.password"),
			MinLatency: time.Duration(v.GetInt("remote.min_latency")) * time.Millisecond,
			MaxLatency: time.Duration(v.GetInt("remote.max_latency")) * time.Millisecond,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the application cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "memory", "file", "redis", "sql":
	case "multi":
		if len(c.Storage.Multi) == 0 {
			return errors.New("storage.multi must list at least one backend")
		}
		for _, t := range c.Storage.Multi {
			if t == "multi" {
				return errors.New("storage.multi cannot nest multi")
			}
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	if c.Storage.Key == "" {
		return errors.New("storage.key is required")
	}
	if c.Store.Version == "" {
		return errors.New("store.version is required")
	}
	if c.Remote.MaxLatency < c.Remote.MinLatency {
		return errors.New("remote.max_latency must not be below remote.min_latency")
	}
	return nil
}
