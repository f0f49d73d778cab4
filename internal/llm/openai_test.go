package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agusespa/testsmith/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAI(url string) *OpenAIProvider {
	return NewOpenAIProvider(config.ProviderProfile{
		Provider: config.ProviderOpenAI,
		BaseURL:  url,
		Model:    "gpt-4o-mini",
		APIKey:   "sk-test",
	}, nil)
}

const completionBody = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "gpt-4o-mini",
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "generated"}, "finish_reason": "stop"}]
}`

func TestOpenAIProvider_Chat_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body["model"])
		assert.InDelta(t, 0.2, body["temperature"], 0.0001)

		format, ok := body["response_format"].(map[string]any)
		require.True(t, ok, "response_format should be set in JSON mode")
		assert.Equal(t, "json_object", format["type"])

		messages, ok := body["messages"].([]any)
		require.True(t, ok)
		assert.Len(t, messages, 2)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer server.Close()

	p := newTestOpenAI(server.URL)
	reply, err := p.Chat(context.Background(), NewChatRequest("sys", "user", true))
	require.NoError(t, err)
	assert.Equal(t, "generated", reply)
	assert.Equal(t, "openai", p.Name())
	assert.Equal(t, "gpt-4o-mini", p.Model())
}

func TestOpenAIProvider_Chat_NoResponseFormatForText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, has := body["response_format"]
		assert.False(t, has)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer server.Close()

	_, err := newTestOpenAI(server.URL).Chat(context.Background(), NewChatRequest("sys", "user", false))
	require.NoError(t, err)
}

func TestOpenAIProvider_Chat_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	_, err := newTestOpenAI(server.URL).Chat(context.Background(), NewChatRequest("s", "u", false))
	var de *DecodeError
	require.ErrorAs(t, err, &de)
}

func TestOpenAIProvider_Chat_HTTPErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "api error envelope", status: http.StatusTooManyRequests, body: `{"error":{"message":"rate limited","type":"requests"}}`},
		{name: "plain text body", status: http.StatusBadGateway, body: "upstream unavailable"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key","type":"invalid_request_error"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestOpenAI(server.URL).Chat(context.Background(), NewChatRequest("s", "u", false))
			var te *TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, tt.status, te.StatusCode)
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestOpenAIProvider_Chat_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := newTestOpenAI(url).Chat(context.Background(), NewChatRequest("s", "u", false))
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 0, te.StatusCode)
}
