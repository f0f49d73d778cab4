package llm

import (
	"context"
	"errors"
	"sync"
)

type FakeReply struct {
	Content string
	Err     error
}

// FakeProvider replays scripted replies in order; once they run out the last
// one repeats. Respond, when set, takes precedence over Replies.
type FakeProvider struct {
	NameValue  string
	ModelValue string
	Replies    []FakeReply
	Respond    func(req ChatRequest) (string, error)

	mu       sync.Mutex
	requests []ChatRequest
}

func NewFakeProvider(replies ...string) *FakeProvider {
	f := &FakeProvider{NameValue: "fake", ModelValue: "fake-model"}
	for _, r := range replies {
		f.Replies = append(f.Replies, FakeReply{Content: r})
	}
	return f
}

func (f *FakeProvider) Name() string  { return f.NameValue }
func (f *FakeProvider) Model() string { return f.ModelValue }

func (f *FakeProvider) Chat(ctx context.Context, req ChatRequest) (string, error) {
	f.mu.Lock()
	call := len(f.requests)
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Respond != nil {
		return f.Respond(req)
	}
	if len(f.Replies) == 0 {
		return "", errors.New("fake provider has no scripted replies")
	}
	if call >= len(f.Replies) {
		call = len(f.Replies) - 1
	}
	r := f.Replies[call]
	return r.Content, r.Err
}

func (f *FakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

func (f *FakeProvider) Requests() []ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ChatRequest, len(f.requests))
	copy(out, f.requests)
	return out
}
