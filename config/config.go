package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Environment names of the secrets the assistant needs.
const (
	GroqAPIKeyEnv    = "GROQ_API_KEY"
	GeminiAPIKeyEnv  = "GEMINI_API_KEY"
	WeatherAPIKeyEnv = "OPENWEATHER_API_KEY"
	NewsAPIKeyEnv    = "NEWS_API_KEY"
)

// Config aggregates all application configuration
type Config struct {
	AI      AIConfig      `yaml:"ai"`
	Weather WeatherConfig `yaml:"weather"`
	News    NewsConfig    `yaml:"news"`
	Chat    ChatConfig    `yaml:"chat"`
	Servers ServersConfig `yaml:"servers"`
	Log     LogConfig     `yaml:"log"`
}

type AIConfig struct {
	Plugin   string       `yaml:"plugin" env:"AI_PLUGIN" env-default:"groq"`
	MaxTurns int          `yaml:"max_turns" env:"AGENT_MAX_TURNS" env-default:"5"`
	Groq     GroqConfig   `yaml:"groq"`
	Gemini   GeminiConfig `yaml:"gemini"`
	Ollama   OllamaConfig `yaml:"ollama"`
}

type GroqConfig struct {
	APIKey  string `yaml:"api_key" env:"GROQ_API_KEY"`
	Model   string `yaml:"model" env:"GROQ_MODEL" env-default:"llama3-8b-8192"`
	BaseURL string `yaml:"base_url" env:"GROQ_BASE_URL" env-default:"https://api.groq.com/openai/v1/"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
}

type OllamaConfig struct {
	Model   string `yaml:"model" env:"OLLAMA_MODEL" env-default:"qwen3:4b"`
	BaseURL string `yaml:"base_url" env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434"`
}

type WeatherConfig struct {
	APIKey  string        `yaml:"api_key" env:"OPENWEATHER_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"OPENWEATHER_BASE_URL" env-default:"https://api.openweathermap.org/data/2.5"`
	Timeout time.Duration `yaml:"timeout" env:"WEATHER_TIMEOUT" env-default:"10s"`
}

type NewsConfig struct {
	APIKey  string        `yaml:"api_key" env:"NEWS_API_KEY"`
	BaseURL string        `yaml:"base_url" env:"NEWS_BASE_URL" env-default:"https://newsapi.org/v2"`
	Timeout time.Duration `yaml:"timeout" env:"NEWS_TIMEOUT" env-default:"10s"`
}

type ChatConfig struct {
	// HistoryTurns is how many past turns are replayed to the model; 0 keeps
	// every turn independent.
	HistoryTurns int `yaml:"history_turns" env:"CHAT_HISTORY_TURNS" env-default:"10"`
}

type ServersConfig struct {
	// Command launches the tool providers. Empty means this executable.
	Command string `yaml:"command" env:"SERVER_COMMAND"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"warn"`
}

// Load reads configuration from .env, config.yaml and environment variables
// Priority: Env Vars > .env > Config File > Defaults
func Load() (*Config, error) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	var cfg Config
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		// If file doesn't exist, just read env vars
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}

// LoadProvider reads configuration from the process environment only.
// Tool providers use it so that they never see secrets from .env or
// config.yaml that the orchestrator did not hand them.
func LoadProvider() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env config: %w", err)
	}
	return &cfg, nil
}

// ModelKey returns the environment name and value of the credential the
// selected AI plugin needs. The name is empty when the plugin needs none.
func (c *Config) ModelKey() (string, string) {
	switch strings.ToLower(c.AI.Plugin) {
	case "gemini":
		return GeminiAPIKeyEnv, c.AI.Gemini.APIKey
	case "ollama":
		return "", ""
	default:
		return GroqAPIKeyEnv, c.AI.Groq.APIKey
	}
}

// Validate checks that every required secret is present. All missing
// secrets are reported together.
func (c *Config) Validate() error {
	var missing []string

	if name, value := c.ModelKey(); name != "" && strings.TrimSpace(value) == "" {
		missing = append(missing, name)
	}
	if strings.TrimSpace(c.Weather.APIKey) == "" {
		missing = append(missing, WeatherAPIKeyEnv)
	}
	if strings.TrimSpace(c.News.APIKey) == "" {
		missing = append(missing, NewsAPIKeyEnv)
	}

	if len(missing) > 0 {
		return &MissingKeysError{Keys: missing}
	}

	switch strings.ToLower(c.AI.Plugin) {
	case "groq", "gemini", "ollama":
	default:
		return fmt.Errorf("unknown AI_PLUGIN %q (want groq, gemini or ollama)", c.AI.Plugin)
	}
	return nil
}

// SecretNames lists every secret environment name the application knows.
func SecretNames() []string {
	return []string{GroqAPIKeyEnv, GeminiAPIKeyEnv, WeatherAPIKeyEnv, NewsAPIKeyEnv}
}
