package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	// ErrMissingToken is returned when the Telegram host is started without a token
	ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is not set")
	// ErrInvalidConfig is wrapped by every validation failure in Load
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env           string   `mapstructure:"env"`      // current application environment (local, production)
	TelegramToken string   `mapstructure:"-"`        // Telegram API token loaded from environment
	Bank          Bank     `mapstructure:"bank"`     // term bank source
	Quiz          Quiz     `mapstructure:"quiz"`     // round sizing
	Database      Database `mapstructure:"database"` // session store
	Sessions      Sessions `mapstructure:"sessions"` // session expiry
}

// Bank points at the spreadsheet the term bank is read from.
type Bank struct {
	Path  string `mapstructure:"path"`
	Sheet string `mapstructure:"sheet"` // first sheet when empty
}

// Quiz contains the round limits.
type Quiz struct {
	QuestionsPerRound int `mapstructure:"questions_per_round"`
	MaxRounds         int `mapstructure:"max_rounds"`
}

// Database contains session store connection parameters.
type Database struct {
	Driver string `mapstructure:"driver"` // sqlite3 or postgres
	DSN    string `mapstructure:"dsn"`
}

// Sessions controls how long an idle chat session is kept.
type Sessions struct {
	TTL           time.Duration `mapstructure:"ttl"`
	PurgeInterval time.Duration `mapstructure:"purge_interval"`
}

// RequireToken returns ErrMissingToken when no Telegram token is configured.
func (c *Config) RequireToken() (string, error) {
	if c.TelegramToken == "" {
		return "", ErrMissingToken
	}
	return c.TelegramToken, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", "local")
	v.SetDefault("bank.path", "puzzleU46.xlsx")
	v.SetDefault("bank.sheet", "")
	v.SetDefault("quiz.questions_per_round", 10)
	v.SetDefault("quiz.max_rounds", 3)
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "data/wordquiz.db")
	v.SetDefault("sessions.ttl", "24h")
	v.SetDefault("sessions.purge_interval", "1h")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("telegram_token", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("bank.path", "BANK_PATH")
	_ = v.BindEnv("quiz.questions_per_round", "QUESTIONS_PER_ROUND")
	_ = v.BindEnv("quiz.max_rounds", "MAX_ROUNDS")
	_ = v.BindEnv("database.dsn", "DATABASE_URL")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.TelegramToken = v.GetString("telegram_token")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Bank.Path == "" {
		return fmt.Errorf("%w: bank.path is empty", ErrInvalidConfig)
	}
	if c.Quiz.QuestionsPerRound <= 0 {
		return fmt.Errorf("%w: quiz.questions_per_round must be positive, got %d", ErrInvalidConfig, c.Quiz.QuestionsPerRound)
	}
	if c.Quiz.MaxRounds <= 0 {
		return fmt.Errorf("%w: quiz.max_rounds must be positive, got %d", ErrInvalidConfig, c.Quiz.MaxRounds)
	}
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("%w: unsupported database.driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	if c.Sessions.TTL <= 0 {
		return fmt.Errorf("%w: sessions.ttl must be positive", ErrInvalidConfig)
	}
	if c.Sessions.PurgeInterval <= 0 {
		return fmt.Errorf("%w: sessions.purge_interval must be positive", ErrInvalidConfig)
	}
	return nil
}
