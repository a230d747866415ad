package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	Timezone string `mapstructure:"TIMEZONE"`

	StoreDriver   string        `mapstructure:"STORE_DRIVER"`
	DatabaseURL   string        `mapstructure:"DATABASE_URL"`
	KVTable       string        `mapstructure:"KV_TABLE"`
	RedisAddr     string        `mapstructure:"REDIS_ADDR"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	RedisPoolSize int           `mapstructure:"REDIS_POOL_SIZE"`
	SelectionTTL  time.Duration `mapstructure:"SELECTION_TTL"`

	CatalogFile string `mapstructure:"CATALOG_FILE"`

	WhatsAppPhone      string `mapstructure:"WHATSAPP_PHONE"`
	TwilioAccountSID   string `mapstructure:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken    string `mapstructure:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom string `mapstructure:"TWILIO_WHATSAPP_FROM"`
	SendGridAPIKey     string `mapstructure:"SENDGRID_API_KEY"`
	SendGridFromEmail  string `mapstructure:"SENDGRID_FROM_EMAIL"`
	SendGridFromName   string `mapstructure:"SENDGRID_FROM_NAME"`
	ConfirmationEmail  string `mapstructure:"CONFIRMATION_EMAIL"`

	RefreshSchedule string `mapstructure:"REFRESH_SCHEDULE"`
	AdminToken      string `mapstructure:"ADMIN_TOKEN"`
	CORSOrigins     string `mapstructure:"CORS_ORIGINS"`
}

var defaults = map[string]any{
	"APP_PORT":             "8080",
	"ENV":                  "development",
	"LOG_LEVEL":            "info",
	"TIMEZONE":             "Asia/Colombo",
	"STORE_DRIVER":         "memory",
	"DATABASE_URL":         "",
	"KV_TABLE":             "kv_entries",
	"REDIS_ADDR":           "localhost:6379",
	"REDIS_PASSWORD":       "",
	"REDIS_DB":             0,
	"REDIS_POOL_SIZE":      10,
	"SELECTION_TTL":        "24h",
	"CATALOG_FILE":         "",
	"WHATSAPP_PHONE":       "94767806639",
	"TWILIO_ACCOUNT_SID":   "",
	"TWILIO_AUTH_TOKEN":    "",
	"TWILIO_WHATSAPP_FROM": "",
	"SENDGRID_API_KEY":     "",
	"SENDGRID_FROM_EMAIL":  "",
	"SENDGRID_FROM_NAME":   "RentoMobile",
	"CONFIRMATION_EMAIL":   "",
	"REFRESH_SCHEDULE":     "@every 1h",
	"ADMIN_TOKEN":          "",
	"CORS_ORIGINS":         "*",
}

// Load reads .env (if present), an optional config.yaml and the process
// environment, in increasing order of precedence.
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case "memory", "postgres", "redis":
	default:
		return fmt.Errorf("STORE_DRIVER must be memory, postgres or redis, got %q", c.StoreDriver)
	}
	if c.StoreDriver == "postgres" && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL not set")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Location returns the zone "today" is evaluated in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
