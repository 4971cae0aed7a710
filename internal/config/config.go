package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Web      WebConfig      `yaml:"web"`
	LLM      LLMConfig      `yaml:"llm"`
	Workflow WorkflowConfig `yaml:"workflow"`
}

type WebConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

type LLMConfig struct {
	Provider       string        `yaml:"provider"`
	Model          string        `yaml:"model"`
	ApiKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url"`
	Temperature    float64       `yaml:"temperature"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxRetries     int           `yaml:"max_retries"`
}

type WorkflowConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// Defaults - референсная конфигурация: детерминированная генерация
// (temperature 0), 2 транспортных retry, 3 попытки workflow.
func Defaults() *Config {
	return &Config{
		Web: WebConfig{
			ListenAddr: ":8080",
		},
		LLM: LLMConfig{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			Temperature:    0,
			RequestTimeout: 60 * time.Second,
			MaxRetries:     2,
		},
		Workflow: WorkflowConfig{
			MaxAttempts: 3,
		},
	}
}

// Load читает конфигурацию: defaults <- config.yaml (если есть) <- переменные окружения.
// .env подхватывается через godotenv, его отсутствие не ошибка.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg := Defaults()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Web.ListenAddr, "WEB_LISTEN_ADDR")
	setString(&cfg.LLM.Provider, "LLM_PROVIDER")
	setString(&cfg.LLM.Model, "LLM_MODEL")
	setString(&cfg.LLM.ApiKey, "API_KEY")
	setString(&cfg.LLM.BaseURL, "LLM_URL")

	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.LLM.Temperature = f
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.LLM.RequestTimeout = d
		}
	}
	if v := os.Getenv("LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxRetries = n
		}
	}
	if v := os.Getenv("WORKFLOW_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workflow.MaxAttempts = n
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c *Config) validate() error {
	if c.LLM.Model == "" {
		return fmt.Errorf("llm model is required (LLM_MODEL)")
	}
	if c.Workflow.MaxAttempts < 1 {
		return fmt.Errorf("workflow max_attempts must be at least 1, got %d", c.Workflow.MaxAttempts)
	}
	return nil
}
