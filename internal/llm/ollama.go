package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/agusespa/testsmith/pkg/config"
)

type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

type ollamaRequest struct {
	Model    string        `json:"model"`
	Messages []Message     `json:"messages"`
	Options  ollamaOptions `json:"options"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaMessage struct {
	Content *string `json:"content"`
}

type ollamaResponse struct {
	Message *ollamaMessage `json:"message"`
	Choices []struct {
		Message ollamaMessage `json:"message"`
	} `json:"choices"`
}

func NewOllamaProvider(profile config.ProviderProfile, httpClient *http.Client) *OllamaProvider {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OllamaProvider{
		baseURL: strings.TrimRight(profile.BaseURL, "/"),
		model:   profile.Model,
		client:  httpClient,
	}
}

func (p *OllamaProvider) Name() string { return string(config.ProviderOllama) }

func (p *OllamaProvider) Model() string { return p.model }

func (p *OllamaProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	reqBody := ollamaRequest{
		Model:    p.model,
		Messages: req.Messages,
		Options:  ollamaOptions{Temperature: defaultTemperature},
		Stream:   false,
	}
	if req.JSON {
		reqBody.Format = "json"
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &TransportError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Provider: p.Name(), StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &TransportError{
			Provider:   p.Name(),
			StatusCode: resp.StatusCode,
			Body:       string(body),
			Err:        fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var ollamaResp ollamaResponse
	if err := json.Unmarshal(body, &ollamaResp); err != nil {
		return "", &DecodeError{Provider: p.Name(), Body: string(body), Err: err}
	}

	if ollamaResp.Message != nil && ollamaResp.Message.Content != nil {
		return *ollamaResp.Message.Content, nil
	}
	if len(ollamaResp.Choices) > 0 && ollamaResp.Choices[0].Message.Content != nil {
		return *ollamaResp.Choices[0].Message.Content, nil
	}

	return string(body), nil
}
