package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quoteflow.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const validYAML = `
server:
  addr: ":9090"
database:
  path: "test.db"
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
  token_ttl: 1h
`

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("token ttl = %v", cfg.Auth.TokenTTL)
	}
	if cfg.Auth.BcryptCost != 12 {
		t.Errorf("bcrypt cost default = %d, want 12", cfg.Auth.BcryptCost)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("logging defaults = %q/%q", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadRejectsShortSecret(t *testing.T) {
	_, err := Load(writeConfig(t, "auth:\n  jwt_secret: \"short\"\n"))
	if err == nil {
		t.Fatal("expected validation error for short jwt secret")
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_QF_SECRET", "0123456789abcdef0123456789abcdef")
	cfg, err := Load(writeConfig(t, "auth:\n  jwt_secret: \"${TEST_QF_SECRET}\"\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.JWTSecret != os.Getenv("TEST_QF_SECRET") {
		t.Errorf("secret not expanded, got %q", cfg.Auth.JWTSecret)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("QUOTEFLOW_SERVER_ADDR", ":7070")
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want env override :7070", cfg.Server.Addr)
	}
}

func TestHolderReloadKeepsOldConfigOnFailure(t *testing.T) {
	path := writeConfig(t, validYAML)
	h, err := NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder: %v", err)
	}
	defer h.Stop()

	var outcomes []error
	h.OnReload(func(err error) { outcomes = append(outcomes, err) })

	if err := os.WriteFile(path, []byte("auth:\n  jwt_secret: \"short\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := h.Reload(); err == nil {
		t.Fatal("expected reload to fail on invalid config")
	}
	if got := h.Get().Server.Addr; got != ":9090" {
		t.Errorf("old config not kept, addr = %q", got)
	}

	if err := os.WriteFile(path, []byte(validYAML+"logging:\n  level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := h.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := h.Get().Logging.Level; got != "debug" {
		t.Errorf("level = %q after reload", got)
	}
	if len(outcomes) != 2 || outcomes[0] == nil || outcomes[1] != nil {
		t.Errorf("reload observer saw %v", outcomes)
	}
}
