package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`

	LLMProvider string  `yaml:"llm_provider"` // "openai" or "anthropic"
	LLMBaseURL  string  `yaml:"llm_base_url"`
	LLMAPIKey   string  `yaml:"-"`
	Model       string  `yaml:"model"`       // pipeline tasks
	AgentModel  string  `yaml:"agent_model"` // tool routing
	Temperature float64 `yaml:"temperature"`

	DatabaseURL string `yaml:"database_url"`
	RedisURL    string `yaml:"redis_url"`
	NatsURL     string `yaml:"nats_url"`
	NatsToken   string `yaml:"-"`

	SpeechKey      string `yaml:"-"`
	SpeechRegion   string `yaml:"speech_region"`
	SpeechLanguage string `yaml:"speech_language"`

	SearchAPIKey  string `yaml:"-"`
	SearchBaseURL string `yaml:"search_base_url"`

	SessionTTL     time.Duration `yaml:"session_ttl"`
	GuidelineTopK  int           `yaml:"guideline_top_k"`
	WebSearchLimit int           `yaml:"web_search_limit"`
}

func defaults() Config {
	return Config{
		Port:           8760,
		LogLevel:       "info",
		LLMProvider:    "openai",
		Model:          "gpt-4o-mini",
		AgentModel:     "gpt-4o",
		Temperature:    0.3,
		SpeechLanguage: "ko-KR",
		SessionTTL:     30 * time.Minute,
		GuidelineTopK:  3,
		WebSearchLimit: 3,
	}
}

// Load builds the configuration: defaults, then the optional YAML file
// named by REFIT_CONFIG, then environment variables.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("REFIT_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = envInt("REFIT_PORT", cfg.Port)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)
	cfg.LLMProvider = envStr("REFIT_LLM_PROVIDER", cfg.LLMProvider)
	cfg.LLMBaseURL = envStr("LLM_BASE_URL", cfg.LLMBaseURL)
	cfg.LLMAPIKey = envStr("LLM_API_KEY", cfg.LLMAPIKey)
	cfg.Model = envStr("REFIT_MODEL", cfg.Model)
	cfg.AgentModel = envStr("REFIT_AGENT_MODEL", cfg.AgentModel)
	cfg.Temperature = envFloat("REFIT_TEMPERATURE", cfg.Temperature)
	cfg.DatabaseURL = envStr("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisURL = envStr("REDIS_URL", cfg.RedisURL)
	cfg.NatsURL = envStr("NATS_URL", cfg.NatsURL)
	cfg.NatsToken = envStr("NATS_TOKEN", cfg.NatsToken)
	cfg.SpeechKey = envStr("AZURE_SPEECH_KEY", cfg.SpeechKey)
	cfg.SpeechRegion = envStr("AZURE_SPEECH_REGION", cfg.SpeechRegion)
	cfg.SpeechLanguage = envStr("REFIT_SPEECH_LANGUAGE", cfg.SpeechLanguage)
	cfg.SearchAPIKey = envStr("TAVILY_API_KEY", cfg.SearchAPIKey)
	cfg.SearchBaseURL = envStr("TAVILY_BASE_URL", cfg.SearchBaseURL)
	cfg.SessionTTL = envDur("REFIT_SESSION_TTL", cfg.SessionTTL)
	cfg.GuidelineTopK = envInt("REFIT_GUIDELINE_TOP_K", cfg.GuidelineTopK)
	cfg.WebSearchLimit = envInt("REFIT_WEB_SEARCH_LIMIT", cfg.WebSearchLimit)

	return cfg, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
