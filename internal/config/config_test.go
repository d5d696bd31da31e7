package config

import (
	"errors"
	"testing"
)

// mapBackend is an in-memory ConfigBackend for tests.
type mapBackend struct {
	strings map[string]string
	ints    map[string]int
}

func (b mapBackend) GetString(key string) (string, bool, error) {
	v, ok := b.strings[key]
	return v, ok, nil
}

func (b mapBackend) GetInt(key string) (int, bool, error) {
	v, ok := b.ints[key]
	return v, ok, nil
}

func (b mapBackend) SetString(key, val string) error { return nil }
func (b mapBackend) SetInt(key string, val int) error { return nil }
func (b mapBackend) Delete(key string) error          { return nil }

// mockKeychain is a test double for the secret store.
type mockKeychain struct {
	values map[string]string
	err    error
}

func (m mockKeychain) Get(service, account string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.values[account], nil
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, s := range specs {
		t.Setenv(s.env, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := loadWith(mapBackend{}, mockKeychain{err: errors.New("no store")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8090 {
		t.Errorf("Server.Port = %d, want 8090", cfg.Server.Port)
	}
	if cfg.Anthropic.Model != "claude-3-5-sonnet-20241022" {
		t.Errorf("Anthropic.Model = %q", cfg.Anthropic.Model)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
	if cfg.Storage.DataDir == "" {
		t.Error("Storage.DataDir is empty")
	}
	// Missing API key is not a load error; the server checks at startup.
	if cfg.Anthropic.APIKey != "" {
		t.Errorf("Anthropic.APIKey = %q, want empty", cfg.Anthropic.APIKey)
	}
}

func TestBackendValues(t *testing.T) {
	clearEnv(t)

	b := mapBackend{
		strings: map[string]string{
			"anthropic.model":  "claude-3-haiku-20240307",
			"storage.data_dir": "/tmp/portfolio-test",
			"log.level":        "debug",
		},
		ints: map[string]int{"server.port": 9000},
	}
	cfg, err := loadWith(b, mockKeychain{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Anthropic.Model != "claude-3-haiku-20240307" {
		t.Errorf("Anthropic.Model = %q", cfg.Anthropic.Model)
	}
	if cfg.Storage.DataDir != "/tmp/portfolio-test" {
		t.Errorf("Storage.DataDir = %q", cfg.Storage.DataDir)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestEnvOverridesBackend(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORTFOLIO_ANTHROPIC_MODEL", "env-model")
	t.Setenv("PORTFOLIO_SERVER_PORT", "7777")

	b := mapBackend{
		strings: map[string]string{"anthropic.model": "backend-model"},
		ints:    map[string]int{"server.port": 9000},
	}
	cfg, err := loadWith(b, mockKeychain{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Anthropic.Model != "env-model" {
		t.Errorf("Anthropic.Model = %q, want env override", cfg.Anthropic.Model)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Server.Port = %d, want env override", cfg.Server.Port)
	}
}

func TestSecretsFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORTFOLIO_ANTHROPIC_API_KEY", "env-key")
	t.Setenv("PORTFOLIO_ADMIN_TOKEN", "env-token")

	cfg, err := loadWith(mapBackend{}, mockKeychain{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Anthropic.APIKey != "env-key" {
		t.Errorf("APIKey = %q", cfg.Anthropic.APIKey)
	}
	if cfg.Admin.Token != "env-token" {
		t.Errorf("Admin.Token = %q", cfg.Admin.Token)
	}
}

func TestKeychainFallback(t *testing.T) {
	clearEnv(t)

	kc := mockKeychain{values: map[string]string{
		"anthropic_api_key": "keychain-secret",
		"admin_token":       "keychain-token",
	}}
	cfg, err := loadWith(mapBackend{}, kc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Anthropic.APIKey != "keychain-secret" {
		t.Errorf("APIKey = %q, want keychain value", cfg.Anthropic.APIKey)
	}
	if cfg.Admin.Token != "keychain-token" {
		t.Errorf("Admin.Token = %q, want keychain value", cfg.Admin.Token)
	}
}

func TestEnvWinsOverKeychain(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORTFOLIO_ANTHROPIC_API_KEY", "env-key")

	kc := mockKeychain{values: map[string]string{"anthropic_api_key": "keychain-key"}}
	cfg, err := loadWith(mapBackend{}, kc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Anthropic.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env to win", cfg.Anthropic.APIKey)
	}
}

func TestShowAllHidesSecrets(t *testing.T) {
	cfg := defaults()
	cfg.Anthropic.APIKey = "super-secret"
	cfg.Admin.Token = "also-secret"

	for _, info := range ShowAll(cfg) {
		if info.Key == "anthropic.api_key" || info.Key == "admin.token" {
			t.Errorf("secret key %q exposed by ShowAll", info.Key)
		}
		if info.Value == "super-secret" || info.Value == "also-secret" {
			t.Errorf("secret value leaked via key %q", info.Key)
		}
	}
}

func TestSetKey_RejectsSecrets(t *testing.T) {
	if err := SetKey("anthropic.api_key", "x"); err == nil {
		t.Error("setting a secret via SetKey should fail")
	}
	if err := SetKey("no.such.key", "x"); err == nil {
		t.Error("setting an unknown key should fail")
	}
}
