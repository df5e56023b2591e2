// Package config loads runtime settings from defaults, an optional YAML
// file and the environment, in that order.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultOllamaBaseURL  = "http://localhost:11434"
	DefaultOutputDir      = "stories"
	DefaultMaxTurns       = 10
	DefaultMatchThreshold = 0.6
	DefaultLogLevel       = "info"
)

// Environment variables.
const (
	EnvGeminiAPIKey     = "GEMINI_API_KEY"
	EnvOpenRouterAPIKey = "OPENROUTER_API_KEY"
	EnvOpenAIAPIKey     = "OPENAI_API_KEY"
	EnvOllamaBaseURL    = "OLLAMA_BASE_URL"
	EnvOpenRouterURL    = "OPENROUTER_BASE_URL"
	EnvOutputDir        = "BLACKSTORY_OUTPUT_DIR"
	EnvMaxTurns         = "BLACKSTORY_MAX_TURNS"
	EnvMatchThreshold   = "BLACKSTORY_MATCH_THRESHOLD"
	EnvLogLevel         = "BLACKSTORY_LOG_LEVEL"
)

type Config struct {
	GeminiAPIKey      string  `yaml:"gemini_api_key"`
	OpenRouterAPIKey  string  `yaml:"openrouter_api_key"`
	OpenRouterBaseURL string  `yaml:"openrouter_base_url"`
	OpenAIAPIKey      string  `yaml:"openai_api_key"`
	OllamaBaseURL     string  `yaml:"ollama_base_url"`
	OutputDir         string  `yaml:"output_dir"`
	MaxTurns          int     `yaml:"max_turns"`
	MatchThreshold    float64 `yaml:"match_threshold"`
	LogLevel          string  `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		OllamaBaseURL:  DefaultOllamaBaseURL,
		OutputDir:      DefaultOutputDir,
		MaxTurns:       DefaultMaxTurns,
		MatchThreshold: DefaultMatchThreshold,
		LogLevel:       DefaultLogLevel,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "config: reading config file")
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(err, "config: parsing %s", path)
	}
	return nil
}

func (c *Config) loadEnv() error {
	envString(EnvGeminiAPIKey, &c.GeminiAPIKey)
	envString(EnvOpenRouterAPIKey, &c.OpenRouterAPIKey)
	envString(EnvOpenRouterURL, &c.OpenRouterBaseURL)
	envString(EnvOpenAIAPIKey, &c.OpenAIAPIKey)
	envString(EnvOllamaBaseURL, &c.OllamaBaseURL)
	envString(EnvOutputDir, &c.OutputDir)
	envString(EnvLogLevel, &c.LogLevel)
	if err := envInt(EnvMaxTurns, &c.MaxTurns); err != nil {
		return err
	}
	return envFloat(EnvMatchThreshold, &c.MatchThreshold)
}

// Validate checks the game settings. Provider keys are checked only when a
// provider is selected.
func (c *Config) Validate() error {
	if c.MaxTurns < 1 {
		return errors.Errorf("config: MaxTurns must be >= 1, got %d", c.MaxTurns)
	}
	if c.MatchThreshold <= 0 || c.MatchThreshold > 1 {
		return errors.Errorf("config: MatchThreshold must be in (0, 1], got %g", c.MatchThreshold)
	}
	if c.OutputDir == "" {
		return errors.New("config: OutputDir must not be empty")
	}
	return nil
}

// LoadDotEnv loads a .env file into the environment. Variables already set
// are left alone and a missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.Wrap(err, "config: loading .env")
	}
	return nil
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(key string, dst *int) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return errors.Wrapf(err, "config: invalid %s value %q", key, s)
	}
	*dst = v
	return nil
}

func envFloat(key string, dst *float64) error {
	s := os.Getenv(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Wrapf(err, "config: invalid %s value %q", key, s)
	}
	*dst = v
	return nil
}
