package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

const (
	DefaultProvider      = ProviderOpenAI
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOllamaModel   = "qwen2.5:7b-instruct"
)

var SupportedProviders = []ProviderType{ProviderOpenAI, ProviderOllama}

// Settings is the process-wide configuration snapshot. It is built once at
// program entry and handed down explicitly.
type Settings struct {
	AIProvider      string `yaml:"ai_provider"`
	OpenAIAPIKey    string `yaml:"openai_api_key"`
	OpenAIBaseURL   string `yaml:"openai_base_url"`
	OpenAIModel     string `yaml:"openai_model"`
	OllamaBaseURL   string `yaml:"ollama_base_url"`
	OllamaModel     string `yaml:"ollama_model"`
	GithubToken     string `yaml:"github_token"`
	DefaultRepoRoot string `yaml:"default_repo_root"`
	LogLevel        string `yaml:"log_level"`

	LLM         LLMSettings         `yaml:"llm"`
	ObjectStore ObjectStoreSettings `yaml:"object_store"`
}

type LLMSettings struct {
	RemoteTimeout time.Duration `yaml:"remote_timeout"`
	LocalTimeout  time.Duration `yaml:"local_timeout"`
	MaxAttempts   int           `yaml:"max_attempts"`
	MinWait       time.Duration `yaml:"min_wait"`
	MaxWait       time.Duration `yaml:"max_wait"`
	RPS           float64       `yaml:"rps"`
	Burst         int           `yaml:"burst"`
}

type ObjectStoreSettings struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// ProviderProfile addresses exactly one AI backend.
type ProviderProfile struct {
	Provider ProviderType
	BaseURL  string
	Model    string
	APIKey   string
}

func (p ProviderProfile) String() string {
	return fmt.Sprintf("%s(%s @ %s, key_set=%t)", p.Provider, p.Model, p.BaseURL, p.APIKey != "")
}

type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func IsConfigError(err error) bool {
	var cfgErr *ConfigError
	return errors.As(err, &cfgErr)
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// FromEnv builds Settings from a lookup function without touching the
// process environment itself.
func FromEnv(lookup LookupFunc) Settings {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return fallback
	}
	getDuration := func(key string, fallback time.Duration) time.Duration {
		v := get(key, "")
		if v == "" {
			return fallback
		}
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		if secs, err := strconv.ParseFloat(v, 64); err == nil {
			return time.Duration(secs * float64(time.Second))
		}
		return fallback
	}
	getInt := func(key string, fallback int) int {
		if n, err := strconv.Atoi(get(key, "")); err == nil {
			return n
		}
		return fallback
	}
	getFloat := func(key string, fallback float64) float64 {
		if f, err := strconv.ParseFloat(get(key, ""), 64); err == nil {
			return f
		}
		return fallback
	}

	return Settings{
		AIProvider:      strings.ToLower(get("AI_PROVIDER", string(DefaultProvider))),
		OpenAIAPIKey:    get("OPENAI_API_KEY", ""),
		OpenAIBaseURL:   get("OPENAI_BASE_URL", ""),
		OpenAIModel:     get("OPENAI_MODEL", DefaultOpenAIModel),
		OllamaBaseURL:   get("OLLAMA_BASE_URL", DefaultOllamaBaseURL),
		OllamaModel:     get("OLLAMA_MODEL", DefaultOllamaModel),
		GithubToken:     get("GITHUB_TOKEN", ""),
		DefaultRepoRoot: get("DEFAULT_REPO_ROOT", "."),
		LogLevel:        get("LOG_LEVEL", "info"),
		LLM: LLMSettings{
			RemoteTimeout: getDuration("LLM_REMOTE_TIMEOUT", 60*time.Second),
			LocalTimeout:  getDuration("LLM_LOCAL_TIMEOUT", 120*time.Second),
			MaxAttempts:   getInt("LLM_MAX_ATTEMPTS", 3),
			MinWait:       getDuration("LLM_RETRY_MIN_WAIT", time.Second),
			MaxWait:       getDuration("LLM_RETRY_MAX_WAIT", 8*time.Second),
			RPS:           getFloat("LLM_RPS", 0),
			Burst:         getInt("LLM_BURST", 0),
		},
		ObjectStore: ObjectStoreSettings{
			Endpoint:  get("S3_ENDPOINT", ""),
			Region:    get("S3_REGION", ""),
			AccessKey: get("S3_ACCESS_KEY", ""),
			SecretKey: get("S3_SECRET_KEY", ""),
			Bucket:    get("S3_BUCKET", ""),
			UseSSL:    strings.EqualFold(get("S3_USE_SSL", "false"), "true"),
		},
	}
}

var (
	loadOnce sync.Once
	loaded   Settings
)

// Load reads the given .env files (missing files are ignored) and then the
// process environment. The result is memoized for the process lifetime.
func Load(envFiles ...string) Settings {
	loadOnce.Do(func() {
		for _, f := range envFiles {
			if f == "" {
				continue
			}
			_ = godotenv.Load(f)
		}
		if len(envFiles) == 0 {
			_ = godotenv.Load()
		}
		loaded = FromEnv(os.LookupEnv)
	})
	return loaded
}

// LoadFile overlays the non-empty fields of a YAML config file onto base.
func LoadFile(filename string, base Settings) (Settings, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return base, fmt.Errorf("failed to read config file: %w", err)
	}

	var file Settings
	if err := yaml.Unmarshal(data, &file); err != nil {
		return base, fmt.Errorf("failed to parse config file: %w", err)
	}

	return merge(base, file), nil
}

func merge(base, over Settings) Settings {
	pick := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	pick(&base.AIProvider, strings.ToLower(over.AIProvider))
	pick(&base.OpenAIAPIKey, over.OpenAIAPIKey)
	pick(&base.OpenAIBaseURL, over.OpenAIBaseURL)
	pick(&base.OpenAIModel, over.OpenAIModel)
	pick(&base.OllamaBaseURL, over.OllamaBaseURL)
	pick(&base.OllamaModel, over.OllamaModel)
	pick(&base.GithubToken, over.GithubToken)
	pick(&base.DefaultRepoRoot, over.DefaultRepoRoot)
	pick(&base.LogLevel, over.LogLevel)

	if over.LLM.RemoteTimeout > 0 {
		base.LLM.RemoteTimeout = over.LLM.RemoteTimeout
	}
	if over.LLM.LocalTimeout > 0 {
		base.LLM.LocalTimeout = over.LLM.LocalTimeout
	}
	if over.LLM.MaxAttempts > 0 {
		base.LLM.MaxAttempts = over.LLM.MaxAttempts
	}
	if over.LLM.MinWait > 0 {
		base.LLM.MinWait = over.LLM.MinWait
	}
	if over.LLM.MaxWait > 0 {
		base.LLM.MaxWait = over.LLM.MaxWait
	}
	if over.LLM.RPS > 0 {
		base.LLM.RPS = over.LLM.RPS
	}
	if over.LLM.Burst > 0 {
		base.LLM.Burst = over.LLM.Burst
	}

	pick(&base.ObjectStore.Endpoint, over.ObjectStore.Endpoint)
	pick(&base.ObjectStore.Region, over.ObjectStore.Region)
	pick(&base.ObjectStore.AccessKey, over.ObjectStore.AccessKey)
	pick(&base.ObjectStore.SecretKey, over.ObjectStore.SecretKey)
	pick(&base.ObjectStore.Bucket, over.ObjectStore.Bucket)
	if over.ObjectStore.UseSSL {
		base.ObjectStore.UseSSL = true
	}
	return base
}

// ResolveProfile picks provider and model from the explicit arguments first,
// then from the settings, then from the built-in defaults.
func (s Settings) ResolveProfile(provider, model string) (ProviderProfile, error) {
	name := strings.ToLower(strings.TrimSpace(provider))
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(s.AIProvider))
	}
	if name == "" {
		name = string(DefaultProvider)
	}

	model = strings.TrimSpace(model)

	switch ProviderType(name) {
	case ProviderOpenAI:
		profile := ProviderProfile{
			Provider: ProviderOpenAI,
			BaseURL:  firstNonEmpty(s.OpenAIBaseURL, DefaultOpenAIBaseURL),
			Model:    firstNonEmpty(model, s.OpenAIModel, DefaultOpenAIModel),
			APIKey:   s.OpenAIAPIKey,
		}
		if profile.APIKey == "" {
			return ProviderProfile{}, &ConfigError{Field: "OPENAI_API_KEY", Reason: "is not configured"}
		}
		return profile, nil
	case ProviderOllama:
		return ProviderProfile{
			Provider: ProviderOllama,
			BaseURL:  strings.TrimRight(firstNonEmpty(s.OllamaBaseURL, DefaultOllamaBaseURL), "/"),
			Model:    firstNonEmpty(model, s.OllamaModel, DefaultOllamaModel),
		}, nil
	default:
		return ProviderProfile{}, &ConfigError{
			Field:  "AI_PROVIDER",
			Reason: fmt.Sprintf("unsupported provider %q (supported: %s)", name, supportedProviderList()),
		}
	}
}

func supportedProviderList() string {
	names := make([]string, len(SupportedProviders))
	for i, p := range SupportedProviders {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
