package config

import (
	"strings"
	"testing"
	"time"

	"money-tracker-go/pkg/logger"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("PIN_HASH_MODE", "BCRYPT")
	t.Setenv("PRICE_CURRENCY", "usd")
	t.Setenv("PRICE_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SENDER_EMAIL", "")

	cfg, err := Load(logger.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.StoreDriver != StoreDriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.StoreDriver)
	}
	if cfg.Auth.PinHashMode != PinHashModeBcrypt {
		t.Fatalf("expected bcrypt mode, got %q", cfg.Auth.PinHashMode)
	}
	if cfg.Prices.Currency != "USD" || cfg.Prices.Timeout != 3*time.Second {
		t.Fatalf("unexpected prices config: %+v", cfg.Prices)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Fatalf("expected two trimmed origins, got %v", cfg.CORSOrigins)
	}
	if cfg.Mail.Enabled() {
		t.Fatalf("expected mail disabled without smtp host")
	}
}

func TestBTCURLFollowsCurrency(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("PIN_HASH_MODE", "plain")
	t.Setenv("PRICE_CURRENCY", "usd")
	t.Setenv("PRICE_BTC_URL", "")

	cfg, err := Load(logger.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasSuffix(cfg.Prices.BTCURL, "vs_currencies=usd") {
		t.Fatalf("expected btc url quoted in usd, got %q", cfg.Prices.BTCURL)
	}

	t.Setenv("PRICE_BTC_URL", "http://prices.test/btc")
	cfg, err = Load(logger.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Prices.BTCURL != "http://prices.test/btc" {
		t.Fatalf("expected explicit btc url, got %q", cfg.Prices.BTCURL)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("PIN_HASH_MODE", "plain")

	_, err := Load(logger.NewNop())
	if err == nil || !strings.Contains(err.Error(), "JWT_SECRET") {
		t.Fatalf("expected JWT_SECRET error, got %v", err)
	}
}

func TestValidateRejectsUnknownModes(t *testing.T) {
	base := Config{StoreDriver: StoreDriverPostgres, Auth: AuthConfig{JWTSecret: "s", PinHashMode: PinHashModePlain}}
	if err := base.validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	badDriver := base
	badDriver.StoreDriver = "sqlite"
	if err := badDriver.validate(); err == nil {
		t.Fatalf("expected error for unknown store driver")
	}

	badMode := base
	badMode.Auth.PinHashMode = "md5"
	if err := badMode.validate(); err == nil {
		t.Fatalf("expected error for unknown pin hash mode")
	}
}

func TestEnvFallbacks(t *testing.T) {
	t.Setenv("TEST_INT", "nope")
	t.Setenv("TEST_DURATION", "soon")
	t.Setenv("TEST_LIST", "")

	if got := getEnvInt("TEST_INT", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
	if got := getEnvDuration("TEST_DURATION", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback 1m, got %s", got)
	}
	if got := getEnvList("TEST_LIST", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected fallback list, got %v", got)
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "money", SSLMode: "disable", TimeZone: "UTC"}
	want := "host=db user=u password=p dbname=money port=5432 sslmode=disable TimeZone=UTC"
	if got := cfg.GetDSN(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	cfg.DSN = "postgres://override"
	if got := cfg.GetDSN(); got != "postgres://override" {
		t.Fatalf("expected explicit dsn, got %q", got)
	}
}
