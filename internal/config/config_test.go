package config

import (
	"testing"
	"time"

	"github.com/totl-app/totl-api/internal/platform/logging"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("expected dev env, got %q", cfg.AppEnv)
	}
	if cfg.ServiceName != "totl-api" {
		t.Fatalf("unexpected service name %q", cfg.ServiceName)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr %q", cfg.HTTPAddr)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level %v", cfg.LogLevel)
	}
	if !cfg.CacheEnabled || cfg.CacheTTL != 60*time.Second {
		t.Fatalf("unexpected cache config: enabled=%t ttl=%s", cfg.CacheEnabled, cfg.CacheTTL)
	}
	if cfg.RecountWorkers != 4 {
		t.Fatalf("unexpected recount workers %d", cfg.RecountWorkers)
	}
	if cfg.OneSignalEnabled {
		t.Fatal("onesignal should be disabled by default")
	}
	if cfg.OneSignalBaseURL != "https://onesignal.com/api/v1" {
		t.Fatalf("unexpected onesignal base url %q", cfg.OneSignalBaseURL)
	}
}

func TestLoadRejectsInvalidAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid APP_ENV")
	}
}

func TestLoadOneSignalRequiresCredentials(t *testing.T) {
	t.Setenv("ONESIGNAL_ENABLED", "true")
	t.Setenv("ONESIGNAL_APP_ID", "")
	t.Setenv("ONESIGNAL_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when onesignal enabled without credentials")
	}

	t.Setenv("ONESIGNAL_APP_ID", "app-1")
	t.Setenv("ONESIGNAL_API_KEY", "key-1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.OneSignalEnabled || cfg.OneSignalAppID != "app-1" {
		t.Fatalf("unexpected onesignal config: %+v", cfg)
	}
}

func TestLoadUptraceRequiresDSN(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when uptrace enabled without DSN")
	}
}

func TestLoadParsesLogLevels(t *testing.T) {
	cases := map[string]logging.Level{
		"debug":   logging.LevelDebug,
		"warn":    logging.LevelWarn,
		"warning": logging.LevelWarn,
		"error":   logging.LevelError,
		"bogus":   logging.LevelInfo,
	}

	for raw, want := range cases {
		t.Setenv("APP_LOG_LEVEL", raw)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load error for level %q: %v", raw, err)
		}
		if cfg.LogLevel != want {
			t.Fatalf("level %q: want %v, got %v", raw, want, cfg.LogLevel)
		}
	}
}

func TestLoadRejectsNonPositiveRecountWorkers(t *testing.T) {
	t.Setenv("RECOUNT_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for RECOUNT_WORKERS=0")
	}
}
