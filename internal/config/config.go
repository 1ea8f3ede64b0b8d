package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BankSourceFile     = "file"
	BankSourceDatabase = "database"

	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

type Config struct {
	Env        string
	Logger     LoggerConfig
	Server     ServerConfig
	Quiz       QuizConfig
	Bank       BankConfig
	DB         DBConfig
	Redis      RedisConfig
	Dictionary DictionaryConfig
	Session    SessionConfig
	Telegram   TelegramConfig
}

type LoggerConfig struct {
	Env   string
	Level string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// QuizConfig controls how sessions are sampled and how long they live.
type QuizConfig struct {
	Size       int
	Seed       int64 // 0 seeds from the clock
	SessionTTL time.Duration
}

type BankConfig struct {
	Source string
	Path   string // empty uses the embedded vocabulary document
}

type DBConfig struct {
	Driver string
	DSN    string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

type DictionaryConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type SessionConfig struct {
	Secret     string
	CookieName string
}

type TelegramConfig struct {
	Token string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("log.level", "info")

	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "20s")

	v.SetDefault("quiz.size", 5)
	v.SetDefault("quiz.seed", 0)
	v.SetDefault("quiz.session_ttl", "2h")

	v.SetDefault("bank.source", BankSourceFile)
	v.SetDefault("bank.path", "")

	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.dsn", "")

	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("dictionary.base_url", "https://api.dictionaryapi.dev/api/v2/entries/en")
	v.SetDefault("dictionary.timeout", "5s")
	v.SetDefault("dictionary.cache_ttl", "24h")

	v.SetDefault("session.secret", "")
	v.SetDefault("session.cookie_name", "vocab_session")

	v.SetDefault("telegram.token", "")
}

// LoadConfig reads config.yaml (optional), a .env file (optional) and the
// environment. Environment variables win: server.port is SERVER_PORT.
func LoadConfig() (*Config, error) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

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

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	env := v.GetString("env")
	return &Config{
		Env: env,
		Logger: LoggerConfig{
			Env:   env,
			Level: v.GetString("log.level"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Quiz: QuizConfig{
			Size:       v.GetInt("quiz.size"),
			Seed:       v.GetInt64("quiz.seed"),
			SessionTTL: v.GetDuration("quiz.session_ttl"),
		},
		Bank: BankConfig{
			Source: strings.ToLower(v.GetString("bank.source")),
			Path:   v.GetString("bank.path"),
		},
		DB: DBConfig{
			Driver: strings.ToLower(v.GetString("db.driver")),
			DSN:    v.GetString("db.dsn"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Dictionary: DictionaryConfig{
			BaseURL:  strings.TrimRight(v.GetString("dictionary.base_url"), "/"),
			Timeout:  v.GetDuration("dictionary.timeout"),
			CacheTTL: v.GetDuration("dictionary.cache_ttl"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("session.secret"),
			CookieName: v.GetString("session.cookie_name"),
		},
		Telegram: TelegramConfig{
			Token: v.GetString("telegram.token"),
		},
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Quiz.Size < 1 {
		return fmt.Errorf("quiz.size must be at least 1, got %d", c.Quiz.Size)
	}
	if c.Quiz.SessionTTL <= 0 {
		return fmt.Errorf("quiz.session_ttl must be positive, got %s", c.Quiz.SessionTTL)
	}

	switch c.Bank.Source {
	case BankSourceFile:
	case BankSourceDatabase:
		if c.DB.DSN == "" {
			return errors.New("db.dsn is required when bank.source is database")
		}
	default:
		return fmt.Errorf("unsupported bank.source: %q", c.Bank.Source)
	}

	switch c.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db.driver: %q", c.DB.Driver)
	}

	if c.Dictionary.BaseURL == "" {
		return errors.New("dictionary.base_url is required")
	}
	if c.Session.CookieName == "" {
		return errors.New("session.cookie_name is required")
	}
	return nil
}
