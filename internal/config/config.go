package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	API      APIConfig      `mapstructure:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Forward  ForwardConfig  `mapstructure:"forward"`
	Caption  CaptionConfig  `mapstructure:"caption"`
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Dialect  string `mapstructure:"dialect"` // "sqlite" or "postgres"
	Path     string `mapstructure:"path"`    // sqlite file path
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// APIConfig holds API server settings
type APIConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`

	App   LogLevelConfig `mapstructure:"app"`
	Store LogLevelConfig `mapstructure:"store"`
}

// LogLevelConfig represents log level configuration for a specific component
type LogLevelConfig struct {
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// TelegramConfig holds Telegram Bot API transport settings
type TelegramConfig struct {
	APIBaseURL     string `mapstructure:"api_base_url"`
	BotToken       string `mapstructure:"bot_token"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	ParseMode      string `mapstructure:"parse_mode"`
}

// ForwardConfig holds dump forwarding settings
type ForwardConfig struct {
	RetryAttempts    int   `mapstructure:"retry_attempts"`
	InitialBackoffMS int64 `mapstructure:"initial_backoff_ms"`
}

// CaptionConfig holds caption pipeline settings
type CaptionConfig struct {
	DefaultPrefixes []string `mapstructure:"default_prefixes"`
	DefaultTitle    string   `mapstructure:"default_title"`
}

var cfg *Config

// bindEnvWithAlternatives binds a viper key to environment variables with alternative names
// so both CAPRELAY_TELEGRAM_BOT_TOKEN and BOT_TOKEN resolve to the same key
func bindEnvWithAlternatives(key string, alternatives ...string) {
	viper.BindEnv(key)
	for _, alt := range alternatives {
		if value := os.Getenv(alt); value != "" {
			viper.Set(key, value)
			break
		}
	}
}

// Load reads configuration from file and environment variables
func Load() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/caprelay")

	setDefaults()

	viper.SetEnvPrefix("CAPRELAY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	bindEnvWithAlternatives("database.dialect", "DB_DIALECT")
	bindEnvWithAlternatives("database.path", "DB_PATH")
	bindEnvWithAlternatives("database.host", "DB_HOST")
	bindEnvWithAlternatives("database.port", "DB_PORT")
	bindEnvWithAlternatives("database.user", "DB_USER")
	bindEnvWithAlternatives("database.password", "DB_PASSWORD")
	bindEnvWithAlternatives("database.dbname", "DB_NAME")
	bindEnvWithAlternatives("database.sslmode", "DB_SSLMODE")

	bindEnvWithAlternatives("api.port", "PORT", "API_PORT")

	bindEnvWithAlternatives("logging.level", "LOG_LEVEL")
	viper.BindEnv("logging.format")
	viper.BindEnv("logging.app.level")
	viper.BindEnv("logging.store.level")

	bindEnvWithAlternatives("telegram.bot_token", "BOT_TOKEN")
	bindEnvWithAlternatives("telegram.api_base_url", "TELEGRAM_API_BASE_URL")
	viper.BindEnv("telegram.timeout_seconds")
	viper.BindEnv("telegram.parse_mode")

	viper.BindEnv("forward.retry_attempts")
	viper.BindEnv("forward.initial_backoff_ms")

	viper.BindEnv("caption.default_prefixes")
	viper.BindEnv("caption.default_title")

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		return &Config{}
	}
	return cfg
}

// Reload reloads the configuration from file
func Reload() error {
	return Load()
}

func setDefaults() {
	// Database defaults
	viper.SetDefault("database.dialect", "sqlite")
	viper.SetDefault("database.path", "./data/caprelay.db")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.sslmode", "disable")

	// API defaults
	viper.SetDefault("api.port", 8080)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	// Telegram defaults
	viper.SetDefault("telegram.api_base_url", "https://api.telegram.org")
	viper.SetDefault("telegram.timeout_seconds", 30)
	viper.SetDefault("telegram.parse_mode", "Markdown")

	// Forward defaults
	viper.SetDefault("forward.retry_attempts", 3)
	viper.SetDefault("forward.initial_backoff_ms", 500)

	// Caption defaults
	viper.SetDefault("caption.default_prefixes", []string{
		"/leech -n", "/leech1 -n", "/leech2 -n", "/leechx -n",
		"/leech4 -n", "/leech3 -n", "/leech5 -n",
	})
	viper.SetDefault("caption.default_title", "Unknown Anime")
}

func validate() error {
	switch cfg.Database.Dialect {
	case "sqlite":
		if cfg.Database.Path == "" {
			return fmt.Errorf("database.path is required for sqlite")
		}
	case "postgres":
		if cfg.Database.User == "" {
			return fmt.Errorf("database.user is required for postgres")
		}
		if cfg.Database.DBName == "" {
			return fmt.Errorf("database.dbname is required for postgres")
		}
	default:
		return fmt.Errorf("database.dialect must be one of: sqlite, postgres")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats := map[string]bool{"json": true, "text": true}

	if cfg.Logging.Format != "" && !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}
	if cfg.Logging.Level != "" && !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	if cfg.Logging.App.Level != "" && !validLevels[cfg.Logging.App.Level] {
		return fmt.Errorf("logging.app.level must be one of: debug, info, warn, error")
	}
	if cfg.Logging.Store.Level != "" && !validLevels[cfg.Logging.Store.Level] {
		return fmt.Errorf("logging.store.level must be one of: debug, info, warn, error")
	}

	if cfg.Forward.RetryAttempts < 1 {
		return fmt.Errorf("forward.retry_attempts must be at least 1")
	}

	return nil
}

// GetAppLogLevel returns the log level for application logging
// Priority: logging.app.level → logging.level → "info"
func (c *Config) GetAppLogLevel() string {
	if c.Logging.App.Level != "" {
		return c.Logging.App.Level
	}
	if c.Logging.Level != "" {
		return c.Logging.Level
	}
	return "info"
}

// GetStoreLogLevel returns the log level for persistence logging
// Priority: logging.store.level → logging.level → "info"
func (c *Config) GetStoreLogLevel() string {
	if c.Logging.Store.Level != "" {
		return c.Logging.Store.Level
	}
	if c.Logging.Level != "" {
		return c.Logging.Level
	}
	return "info"
}
