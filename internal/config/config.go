package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"money-tracker-go/pkg/logger"
)

type Config struct {
	HTTPPort    string
	Env         string
	StoreDriver string
	CORSOrigins []string
	DB          DBConfig
	Auth        AuthConfig
	Prices      PricesConfig
	Snapshot    SnapshotConfig
	Mail        MailConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret   string
	TokenTTL    time.Duration
	PinHashMode string
}

type PricesConfig struct {
	BTCURL          string
	GoldURL         string
	FXURL           string
	Currency        string
	Timeout         time.Duration
	RefreshSchedule string
}

type SnapshotConfig struct {
	Dir string
}

type MailConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	PinHashModePlain  = "plain"
	PinHashModeBcrypt = "bcrypt"
)

// the quote currency is appended
const defaultBTCURL = "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin&vs_currencies="

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	currency := strings.ToUpper(getEnv("PRICE_CURRENCY", "THB"))

	cfg := Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		StoreDriver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		CORSOrigins: getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "money_tracker"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", ""),
			TokenTTL:    getEnvDuration("JWT_TTL", 24*time.Hour),
			PinHashMode: strings.ToLower(getEnv("PIN_HASH_MODE", PinHashModePlain)),
		},
		Prices: PricesConfig{
			BTCURL:          getEnv("PRICE_BTC_URL", defaultBTCURL+strings.ToLower(currency)),
			GoldURL:         getEnv("PRICE_GOLD_URL", "https://api.gold-api.com/price/XAU"),
			FXURL:           getEnv("PRICE_FX_URL", "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-daily.xml"),
			Currency:        currency,
			Timeout:         getEnvDuration("PRICE_TIMEOUT", 10*time.Second),
			RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", ""),
		},
		Snapshot: SnapshotConfig{
			Dir: getEnv("SNAPSHOT_DIR", "data/snapshots"),
		},
		Mail: MailConfig{
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     getEnv("SMTP_PORT", "587"),
			SMTPUsername: getEnv("SMTP_USERNAME", ""),
			SMTPPassword: getEnv("SMTP_PASSWORD", ""),
			SenderEmail:  getEnv("SENDER_EMAIL", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q", StoreDriverPostgres, StoreDriverMemory)
	}
	switch c.Auth.PinHashMode {
	case PinHashModePlain, PinHashModeBcrypt:
	default:
		return fmt.Errorf("PIN_HASH_MODE must be %q or %q", PinHashModePlain, PinHashModeBcrypt)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func (c MailConfig) Enabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
