package publisher

import (
	"encoding/json"
	"errors"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the WordPress credentials plus optional LLM and server
// settings shared by the CLI and the web server.
type Config struct {
	BaseURL     string     `json:"base_url"`
	Username    string     `json:"username"`
	AppPassword string     `json:"app_password"`
	LLM         *LLMConfig `json:"llm,omitempty"`
	ServerAddr  string     `json:"server_addr,omitempty"`
	ExportDir   string     `json:"export_dir,omitempty"`
}

// LLMConfig 预留给生成模块的模型配置（可选，不影响发布流程）。
type LLMConfig struct {
	Provider string `json:"provider,omitempty"`
	Model    string `json:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty"`
}

// HasCredentials reports whether the config carries everything needed to
// talk to WordPress. Publishing is optional, so absence is not an error
// at load time.
func (c Config) HasCredentials() bool {
	return c.BaseURL != "" && c.Username != "" && c.AppPassword != ""
}

// LoadConfig reads JSON config from disk and overlays environment
// variables on top. A .env file next to the binary is honored when
// present; credentials never need to live in the JSON file.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			// Env-only setups need no config file.
		case err != nil:
			return Config{}, err
		default:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, err
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setIfEnv := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setIfEnv(&cfg.BaseURL, "WP_BASE_URL")
	setIfEnv(&cfg.Username, "WP_USERNAME")
	setIfEnv(&cfg.AppPassword, "WP_APP_PASSWORD")
	setIfEnv(&cfg.ServerAddr, "SERVER_ADDR")
	setIfEnv(&cfg.ExportDir, "EXPORT_DIR")

	llmKeys := []string{"LLM_PROVIDER", "LLM_MODEL", "LLM_API_KEY", "LLM_BASE_URL"}
	anySet := false
	for _, k := range llmKeys {
		if os.Getenv(k) != "" {
			anySet = true
			break
		}
	}
	if cfg.LLM == nil && !anySet {
		return
	}
	if cfg.LLM == nil {
		cfg.LLM = &LLMConfig{}
	}
	setIfEnv(&cfg.LLM.Provider, "LLM_PROVIDER")
	setIfEnv(&cfg.LLM.Model, "LLM_MODEL")
	setIfEnv(&cfg.LLM.APIKey, "LLM_API_KEY")
	setIfEnv(&cfg.LLM.BaseURL, "LLM_BASE_URL")
}
