package llm

import (
	"net/http"
	"testing"
	"time"

	"github.com/agusespa/testsmith/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name        string
		profile     config.ProviderProfile
		expected    string
		expectError bool
	}{
		{
			name:     "openai",
			profile:  config.ProviderProfile{Provider: config.ProviderOpenAI, BaseURL: config.DefaultOpenAIBaseURL, Model: "gpt-4o-mini", APIKey: "sk"},
			expected: "openai",
		},
		{
			name:     "ollama",
			profile:  config.ProviderProfile{Provider: config.ProviderOllama, BaseURL: config.DefaultOllamaBaseURL, Model: "llama3"},
			expected: "ollama",
		},
		{
			name:        "openai without key",
			profile:     config.ProviderProfile{Provider: config.ProviderOpenAI, Model: "gpt-4o-mini"},
			expectError: true,
		},
		{
			name:        "unknown provider",
			profile:     config.ProviderProfile{Provider: "bedrock"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.profile, Options{})
			if tt.expectError {
				require.Error(t, err)
				assert.True(t, config.IsConfigError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p.Name())
			assert.Equal(t, tt.profile.Model, p.Model())
		})
	}
}

func TestNewProviderTimeouts(t *testing.T) {
	p, err := NewProvider(config.ProviderProfile{Provider: config.ProviderOllama, BaseURL: "http://x"}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 120*time.Second, p.(*OllamaProvider).client.Timeout)

	p, err = NewProvider(config.ProviderProfile{Provider: config.ProviderOllama, BaseURL: "http://x"}, Options{LocalTimeout: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, p.(*OllamaProvider).client.Timeout)

	custom := &http.Client{}
	p, err = NewProvider(config.ProviderProfile{Provider: config.ProviderOllama, BaseURL: "http://x"}, Options{HTTPClient: custom})
	require.NoError(t, err)
	assert.Same(t, custom, p.(*OllamaProvider).client)
}

func TestNewFromSettings(t *testing.T) {
	settings := config.FromEnv(func(key string) (string, bool) {
		if key == "AI_PROVIDER" {
			return "ollama", true
		}
		return "", false
	})

	p, err := NewFromSettings(settings, "", "codellama", nil)
	require.NoError(t, err)
	assert.Equal(t, "ollama", p.Name())
	assert.Equal(t, "codellama", p.Model())

	_, err = NewFromSettings(settings, "openai", "", nil)
	assert.True(t, config.IsConfigError(err))
}
