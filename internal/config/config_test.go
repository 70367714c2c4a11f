package config

import (
	"os"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	unsetEnvWithCleanup(t, "SERVER_PORT")
	unsetEnvWithCleanup(t, "PORT")
	unsetEnvWithCleanup(t, "MURAL_API_BASE_URL")
	unsetEnvWithCleanup(t, "PAGE_SIZE")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.ServerPort)
	}
	if cfg.MuralAPIBaseURL != "https://api-staging.muralpay.com/api" {
		t.Fatalf("expected staging base URL default, got %q", cfg.MuralAPIBaseURL)
	}
	if cfg.PageSize != 20 {
		t.Fatalf("expected default page size 20, got %d", cfg.PageSize)
	}
	if cfg.AccountsCacheTTLSec != 60 {
		t.Fatalf("expected default accounts TTL 60s, got %d", cfg.AccountsCacheTTLSec)
	}
	if cfg.BanksCacheTTLHours != 24 {
		t.Fatalf("expected default banks TTL 24h, got %d", cfg.BanksCacheTTLHours)
	}
}

func TestLoadConfig_UsesMuralPayAPIKeyAlias(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	unsetEnvWithCleanup(t, "MURAL_API_KEY")
	setEnvWithCleanup(t, "MURAL_PAY_API_KEY", "alias-only-key")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MuralAPIKey != "alias-only-key" {
		t.Fatalf("expected MuralAPIKey from alias env var, got %q", cfg.MuralAPIKey)
	}
}

func TestLoadConfig_PrimaryKeyTakesPrecedenceOverAlias(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "MURAL_API_KEY", "primary-key")
	setEnvWithCleanup(t, "MURAL_PAY_API_KEY", "alias-key")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MuralAPIKey != "primary-key" {
		t.Fatalf("expected MuralAPIKey to prioritize MURAL_API_KEY, got %q", cfg.MuralAPIKey)
	}
}

func TestLoadConfig_PortEnvOverridesServerPort(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "SERVER_PORT", "8080")
	setEnvWithCleanup(t, "PORT", "9090")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "9090" {
		t.Fatalf("expected platform PORT to win, got %q", cfg.ServerPort)
	}
}

func TestLoadConfig_TrimsBaseURLTrailingSlash(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "MURAL_API_BASE_URL", "https://api.muralpay.com/api/")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.MuralAPIBaseURL != "https://api.muralpay.com/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.MuralAPIBaseURL)
	}
}

func TestLoadConfig_CoercesInvalidNumericValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	setEnvWithCleanup(t, "PAGE_SIZE", "-5")
	setEnvWithCleanup(t, "ACCOUNTS_CACHE_TTL_SECONDS", "0")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.PageSize != 20 {
		t.Fatalf("expected invalid page size coerced to 20, got %d", cfg.PageSize)
	}
	if cfg.AccountsCacheTTLSec != 60 {
		t.Fatalf("expected invalid accounts TTL coerced to 60, got %d", cfg.AccountsCacheTTLSec)
	}
}

func setEnvWithCleanup(t *testing.T, key string, value string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("failed to set env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
			return
		}
		_ = os.Unsetenv(key)
	})
}

func unsetEnvWithCleanup(t *testing.T, key string) {
	t.Helper()
	prev, hadPrev := os.LookupEnv(key)
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("failed to unset env %s: %v", key, err)
	}
	t.Cleanup(func() {
		if hadPrev {
			_ = os.Setenv(key, prev)
		}
	})
}
