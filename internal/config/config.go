package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	ListenAddr       string
	APIURL           *url.URL
	CORSAllowOrigins []string
	EnablePprof      bool
}

type DBConfig struct {
	Driver string
	DSN    string
}

type LedgerConfig struct {
	MaxRetries int
}

type AlertsConfig struct {
	ScanInterval   time.Duration
	TelegramToken  string
	TelegramChatID int64
}

type CacheConfig struct {
	RedisAddr    string
	DashboardTTL time.Duration
}

type Config struct {
	HTTP   HTTPConfig
	DB     DBConfig
	Ledger LedgerConfig
	Alerts AlertsConfig
	Cache  CacheConfig
}

var (
	ErrAPIURLMissing   = errors.New("API_URL is required")
	ErrAPIURLInvalid   = errors.New("API_URL must be an absolute URL")
	ErrDriverInvalid   = errors.New("DB_DRIVER must be one of 'sqlite', 'postgres'")
	ErrDSNMissing      = errors.New("DB_DSN is required for the postgres driver")
	ErrTelegramChatID  = errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	ErrNegativeRetries = errors.New("LEDGER_MAX_RETRIES must not be negative")
)

// Load reads the configuration from the environment and an optional
// app.env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()

	setDefaults(v)

	// The file is optional, the environment is sufficient
	_ = v.ReadInConfig()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("LEDGER_MAX_RETRIES", 5)
	v.SetDefault("ALERT_SCAN_INTERVAL", "1h")
	v.SetDefault("DASHBOARD_CACHE_TTL", "1m")
	v.SetDefault("ENABLE_PPROF", false)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		HTTP: HTTPConfig{
			ListenAddr:       v.GetString("LISTEN_ADDR"),
			CORSAllowOrigins: strings.Fields(v.GetString("CORS_ALLOW_ORIGINS")),
			EnablePprof:      v.GetBool("ENABLE_PPROF"),
		},
		DB: DBConfig{
			Driver: strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
			DSN:    v.GetString("DB_DSN"),
		},
		Ledger: LedgerConfig{
			MaxRetries: v.GetInt("LEDGER_MAX_RETRIES"),
		},
		Alerts: AlertsConfig{
			ScanInterval:   v.GetDuration("ALERT_SCAN_INTERVAL"),
			TelegramToken:  v.GetString("TELEGRAM_BOT_TOKEN"),
			TelegramChatID: v.GetInt64("TELEGRAM_CHAT_ID"),
		},
		Cache: CacheConfig{
			RedisAddr:    v.GetString("REDIS_ADDR"),
			DashboardTTL: v.GetDuration("DASHBOARD_CACHE_TTL"),
		},
	}

	if cfg.DB.Driver == "sqlite" && cfg.DB.DSN == "" {
		cfg.DB.DSN = "data/gorm.db"
	}

	rawURL := strings.TrimSpace(v.GetString("API_URL"))
	if rawURL == "" {
		return nil, ErrAPIURLMissing
	}

	apiURL, err := url.Parse(strings.TrimSuffix(rawURL, "/"))
	if err != nil || !apiURL.IsAbs() {
		return nil, fmt.Errorf("%w: '%s'", ErrAPIURLInvalid, rawURL)
	}
	cfg.HTTP.APIURL = apiURL

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.DB.Driver {
	case "sqlite":
	case "postgres":
		if cfg.DB.DSN == "" {
			return ErrDSNMissing
		}
	default:
		return fmt.Errorf("%w, got '%s'", ErrDriverInvalid, cfg.DB.Driver)
	}

	if cfg.Ledger.MaxRetries < 0 {
		return ErrNegativeRetries
	}

	if cfg.Alerts.TelegramToken != "" && cfg.Alerts.TelegramChatID == 0 {
		return ErrTelegramChatID
	}

	return nil
}
