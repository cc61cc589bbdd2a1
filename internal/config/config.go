package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/xxxsen/common/logger"

	"github.com/voyagehq/sofdesk/internal/ai"
)

const envPrefix = "sofdesk"

type Config struct {
	Port                  int              `json:"port"`
	LogConfig             logger.LogConfig `json:"log_config"`
	AI                    ai.Settings      `json:"ai"`
	UploadThrottleSeconds int              `json:"upload_throttle_seconds"`
	MaxUploadBytes        int64            `json:"max_upload_bytes"`
	StatsCron             string           `json:"stats_cron"`
	CORSOrigins           []string         `json:"cors_origins"`
}

// credentials are the env-only overrides; API keys never need to live in the
// config file.
type credentials struct {
	GroqAPIKey   string `envconfig:"GROQ_API_KEY"`
	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	GeminiAPIKey string `envconfig:"GEMINI_API_KEY"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = 20 << 20
	}
	if cfg.StatsCron == "" {
		cfg.StatsCron = "0 * * * *"
	}
	if cfg.AI.Groq.Model == "" {
		cfg.AI.Groq.Model = "llama-3.3-70b-versatile"
	}
	if cfg.AI.OpenAI.Model == "" {
		cfg.AI.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.AI.Gemini.Model == "" {
		cfg.AI.Gemini.Model = "gemini-2.0-flash"
	}
	if err := applyEnvCredentials(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnvCredentials(cfg *Config) error {
	// A missing .env is fine; keys may come from the shell.
	_ = godotenv.Load(".env")

	var creds credentials
	if err := envconfig.Process(envPrefix, &creds); err != nil {
		return fmt.Errorf("read env credentials: %w", err)
	}
	if key := strings.TrimSpace(creds.GroqAPIKey); key != "" {
		cfg.AI.Groq.APIKey = key
	}
	if key := strings.TrimSpace(creds.OpenAIAPIKey); key != "" {
		cfg.AI.OpenAI.APIKey = key
	}
	if key := strings.TrimSpace(creds.GeminiAPIKey); key != "" {
		cfg.AI.Gemini.APIKey = key
	}
	return nil
}
