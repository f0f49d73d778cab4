package llm

import "context"

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

const defaultTemperature = 0.2

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is one system+user exchange. JSON asks the backend to constrain
// the reply to a single JSON object where it supports that.
type ChatRequest struct {
	Messages []Message
	JSON     bool
}

func NewChatRequest(system, user string, jsonMode bool) ChatRequest {
	return ChatRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: system},
			{Role: RoleUser, Content: user},
		},
		JSON: jsonMode,
	}
}

// Provider sends one chat exchange to a model backend and returns the raw
// text of the first reply.
type Provider interface {
	Name() string
	Model() string
	Chat(ctx context.Context, req ChatRequest) (string, error)
}
