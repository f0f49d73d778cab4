package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agusespa/testsmith/pkg/config"
	openai "github.com/sashabaranov/go-openai"
)

type OpenAIProvider struct {
	baseURL string
	model   string
	client  *openai.Client
}

func NewOpenAIProvider(profile config.ProviderProfile, httpClient *http.Client) *OpenAIProvider {
	cfg := openai.DefaultConfig(profile.APIKey)
	if profile.BaseURL != "" {
		cfg.BaseURL = profile.BaseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	return &OpenAIProvider{
		baseURL: cfg.BaseURL,
		model:   profile.Model,
		client:  openai.NewClientWithConfig(cfg),
	}
}

func (p *OpenAIProvider) Name() string { return string(config.ProviderOpenAI) }

func (p *OpenAIProvider) Model() string { return p.model }

func (p *OpenAIProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: defaultTemperature,
	}
	if req.JSON {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", p.classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", &DecodeError{Provider: p.Name(), Err: errors.New("response contains no choices")}
	}

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &TransportError{Provider: p.Name(), StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		body := ""
		if reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &TransportError{Provider: p.Name(), StatusCode: reqErr.HTTPStatusCode, Body: body, Err: err}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &DecodeError{Provider: p.Name(), Err: err}
	}

	return &TransportError{Provider: p.Name(), Err: err}
}
