package llm

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/agusespa/testsmith/pkg/config"
)

type Options struct {
	RemoteTimeout time.Duration
	LocalTimeout  time.Duration
	// HTTPClient replaces the per-provider client and its timeout.
	HTTPClient *http.Client
}

func OptionsFromSettings(s config.LLMSettings) Options {
	return Options{RemoteTimeout: s.RemoteTimeout, LocalTimeout: s.LocalTimeout}
}

func (o Options) client(timeout, fallback time.Duration) *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	if timeout <= 0 {
		timeout = fallback
	}
	return &http.Client{Timeout: timeout}
}

// NewProvider builds the bare transport for profile. It performs no I/O.
func NewProvider(profile config.ProviderProfile, opts Options) (Provider, error) {
	switch profile.Provider {
	case config.ProviderOpenAI:
		if profile.APIKey == "" {
			return nil, &config.ConfigError{Field: "OPENAI_API_KEY", Reason: "is not configured"}
		}
		return NewOpenAIProvider(profile, opts.client(opts.RemoteTimeout, 60*time.Second)), nil
	case config.ProviderOllama:
		return NewOllamaProvider(profile, opts.client(opts.LocalTimeout, 120*time.Second)), nil
	default:
		return nil, &config.ConfigError{
			Field:  "AI_PROVIDER",
			Reason: fmt.Sprintf("unsupported provider %q", profile.Provider),
		}
	}
}

// NewFromSettings resolves the profile and returns the provider wrapped in
// the standard middleware stack: logging, retry, metrics and rate limiting.
func NewFromSettings(settings config.Settings, provider, model string, logger *slog.Logger) (Provider, error) {
	profile, err := settings.ResolveProfile(provider, model)
	if err != nil {
		return nil, err
	}

	base, err := NewProvider(profile, OptionsFromSettings(settings.LLM))
	if err != nil {
		return nil, err
	}

	policy := RetryPolicyFromSettings(settings.LLM)
	policy.Logger = logger

	return Wrap(base,
		WithLogging(logger),
		Retry(policy),
		WithMetrics(),
		RateLimit(settings.LLM.RPS, settings.LLM.Burst),
	), nil
}
