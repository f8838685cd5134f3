package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	Log     LogConfig
	CORS    CORSConfig
	Email   EmailConfig
	Invoice InvoiceConfig
	Sweep   SweepConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT verification settings. Tokens are issued by the
// external identity service; this backend only validates them.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	AccessKey   string `mapstructure:"access_key"`
	SecretKey   string `mapstructure:"secret_key"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// InvoiceConfig holds invoice computation defaults.
type InvoiceConfig struct {
	TaxRate          string `mapstructure:"tax_rate"`
	DuplicateDueDays int    `mapstructure:"duplicate_due_days"`
}

// SweepConfig holds overdue sweep worker settings.
type SweepConfig struct {
	IntervalSecs int `mapstructure:"interval_secs"`
}

// Load reads configuration from environment variables with the INVOKIT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("INVOKIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "invokit")
	v.SetDefault("db.password", "invokit_secret")
	v.SetDefault("db.name", "invokit_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "invokit")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.access_key", "")
	v.SetDefault("email.secret_key", "")
	v.SetDefault("email.from_address", "billing@invokit.app")
	v.SetDefault("email.from_name", "Invokit Billing")

	// Invoice defaults
	v.SetDefault("invoice.tax_rate", "0.10")
	v.SetDefault("invoice.duplicate_due_days", 30)

	// Sweep defaults
	v.SetDefault("sweep.interval_secs", 3600)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "INVOKIT_SERVER_PORT",
		"server.read_timeout":        "INVOKIT_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "INVOKIT_SERVER_WRITE_TIMEOUT",
		"server.environment":         "INVOKIT_SERVER_ENVIRONMENT",
		"db.host":                    "INVOKIT_DB_HOST",
		"db.port":                    "INVOKIT_DB_PORT",
		"db.user":                    "INVOKIT_DB_USER",
		"db.password":                "INVOKIT_DB_PASSWORD",
		"db.name":                    "INVOKIT_DB_NAME",
		"db.sslmode":                 "INVOKIT_DB_SSLMODE",
		"db.max_open":                "INVOKIT_DB_MAX_OPEN",
		"db.max_idle":                "INVOKIT_DB_MAX_IDLE",
		"jwt.secret":                 "INVOKIT_JWT_SECRET",
		"jwt.issuer":                 "INVOKIT_JWT_ISSUER",
		"log.level":                  "INVOKIT_LOG_LEVEL",
		"log.format":                 "INVOKIT_LOG_FORMAT",
		"cors.allowed_origins":       "INVOKIT_CORS_ALLOWED_ORIGINS",
		"email.provider":             "INVOKIT_EMAIL_PROVIDER",
		"email.region":               "INVOKIT_EMAIL_REGION",
		"email.access_key":           "INVOKIT_EMAIL_ACCESS_KEY",
		"email.secret_key":           "INVOKIT_EMAIL_SECRET_KEY",
		"email.from_address":         "INVOKIT_EMAIL_FROM_ADDRESS",
		"email.from_name":            "INVOKIT_EMAIL_FROM_NAME",
		"invoice.tax_rate":           "INVOKIT_INVOICE_TAX_RATE",
		"invoice.duplicate_due_days": "INVOKIT_INVOICE_DUPLICATE_DUE_DAYS",
		"sweep.interval_secs":        "INVOKIT_SWEEP_INTERVAL_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if INVOKIT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("INVOKIT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		AccessKey:   v.GetString("email.access_key"),
		SecretKey:   v.GetString("email.secret_key"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}

	cfg.Invoice = InvoiceConfig{
		TaxRate:          v.GetString("invoice.tax_rate"),
		DuplicateDueDays: v.GetInt("invoice.duplicate_due_days"),
	}

	cfg.Sweep = SweepConfig{
		IntervalSecs: v.GetInt("sweep.interval_secs"),
	}

	return cfg, nil
}
