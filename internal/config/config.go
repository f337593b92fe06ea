package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidStationsURL          = errors.New("invalid stations api url")
)

// DefaultStationsAPIURL is the public stations endpoint used when nothing else is configured.
const DefaultStationsAPIURL = "https://stations-api.takeo-t.workers.dev/stations"

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string        `mapstructure:"env"`              // current application environment (local, dev, production etc)
	TelegramAPIToken string        `mapstructure:"-"`                // Telegram API token loaded from environment
	StationsAPIURL   string        `mapstructure:"stations_api_url"` // endpoint returning the station catalog as a JSON array
	FetchTimeout     time.Duration `mapstructure:"fetch_timeout"`    // upper bound for the catalog request
	HTTP             HTTP          `mapstructure:"http"`             // manage API server section
	Session          Session       `mapstructure:"session"`          // quiz session housekeeping section
	DB               DB            `mapstructure:"database"`         // database configuration section
}

// HTTP contains settings of the manage API server.
type HTTP struct {
	Addr string `mapstructure:"addr"` // listen address, empty disables the server
}

// Session contains settings for in-memory quiz sessions.
type Session struct {
	IdleTTL         time.Duration `mapstructure:"idle_ttl"`         // sessions untouched for longer are evicted
	JanitorSchedule string        `mapstructure:"janitor_schedule"` // cron spec of the eviction job
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Enabled reports whether result persistence is configured.
func (db DB) Enabled() bool {
	return db.URL != ""
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from an optional .env file, config files and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("stations_api_url", DefaultStationsAPIURL)
	v.SetDefault("fetch_timeout", "15s")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("session.idle_ttl", "24h")
	v.SetDefault("session.janitor_schedule", "*/10 * * * *")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("stations_api_url", "STATIONS_API_URL")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")

	if err := validateStationsURL(cfg.StationsAPIURL); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validateStationsURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidStationsURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidStationsURL, raw)
	}
	return nil
}
