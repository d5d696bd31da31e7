package config

import "strings"

type Config struct {
	Server    ServerConfig
	Anthropic AnthropicConfig
	Storage   StorageConfig
	Admin     AdminConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port int
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string // empty means the public API endpoint
}

type StorageConfig struct {
	DataDir string
}

type AdminConfig struct {
	Token string // empty disables the admin API
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 8090,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-3-5-sonnet-20241022",
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the platform-native backend, environment
// variables, and the platform secret store.
//
// On macOS the backend is UserDefaults (domain: com.portfolio-assistant.app)
// and secrets fall back to macOS Keychain. On Linux the backend is a JSON
// file at $XDG_CONFIG_HOME/portfolio-assistant/config.json and secrets fall
// back to a secrets file under the data directory.
//
// Environment variables (PORTFOLIO_*) override backend values on all
// platforms. A missing Anthropic API key is not an error here: the server
// refuses to start without one, but offline commands still need a config.
func Load() (Config, error) {
	return loadWith(newPlatformBackend(), keychainReader{})
}

// keychain abstracts secret-store access for testing.
type keychain interface {
	Get(service, account string) (string, error)
}

const keychainService = "portfolio-assistant"

func loadWith(b ConfigBackend, kc keychain) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if cfg.Anthropic.APIKey == "" {
		if key, err := kc.Get(keychainService, "anthropic_api_key"); err == nil && key != "" {
			cfg.Anthropic.APIKey = key
		}
	}
	if cfg.Admin.Token == "" {
		if tok, err := kc.Get(keychainService, "admin_token"); err == nil && tok != "" {
			cfg.Admin.Token = tok
		}
	}

	return cfg, nil
}

// keychainReader reads from the platform secret store.
type keychainReader struct{}

func (keychainReader) Get(service, account string) (string, error) {
	out, err := keychainExec(service, account)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
