package llm

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/agusespa/testsmith/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, MinWait: time.Millisecond, MaxWait: 4 * time.Millisecond}
}

func TestRetry_RecoversFromTransientStatuses(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"message":{"content":"finally"}}`))
	}))
	defer server.Close()

	base := NewOllamaProvider(config.ProviderProfile{BaseURL: server.URL, Model: "m"}, nil)
	p := Wrap(base, Retry(fastPolicy()))

	reply, err := p.Chat(context.Background(), NewChatRequest("s", "u", false))
	require.NoError(t, err)
	assert.Equal(t, "finally", reply)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestRetry_ReturnsLastErrorUnchanged(t *testing.T) {
	want := &TransportError{Provider: "fake", StatusCode: 500, Body: "boom"}
	fake := NewFakeProvider()
	fake.Replies = []FakeReply{{Err: want}}

	p := Wrap(fake, Retry(fastPolicy()))
	_, err := p.Chat(context.Background(), NewChatRequest("s", "u", false))

	require.Error(t, err)
	assert.Same(t, want, err)
	assert.Equal(t, 3, fake.Calls())
}

func TestRetry_DoesNotInspectErrorKind(t *testing.T) {
	plain := errors.New("anything at all")
	fake := NewFakeProvider()
	fake.Replies = []FakeReply{{Err: plain}, {Content: "ok"}}

	reply, err := Wrap(fake, Retry(fastPolicy())).Chat(context.Background(), NewChatRequest("s", "u", false))
	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, 2, fake.Calls())
}

func TestRetry_SingleAttemptOnSuccess(t *testing.T) {
	fake := NewFakeProvider("first")
	reply, err := Wrap(fake, Retry(fastPolicy())).Chat(context.Background(), NewChatRequest("s", "u", false))
	require.NoError(t, err)
	assert.Equal(t, "first", reply)
	assert.Equal(t, 1, fake.Calls())
}

func TestRetry_StopsWaitingOnCancel(t *testing.T) {
	fake := NewFakeProvider()
	fake.Replies = []FakeReply{{Err: &TransportError{Provider: "fake", StatusCode: 503}}}

	p := Wrap(fake, Retry(RetryPolicy{MaxAttempts: 3, MinWait: time.Hour, MaxWait: time.Hour}))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() {
		_, err := p.Chat(ctx, NewChatRequest("s", "u", false))
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, fake.Calls())
	case <-time.After(2 * time.Second):
		t.Fatal("retry did not return after cancellation")
	}
}

func TestRetry_LogsEachRetry(t *testing.T) {
	var buf bytes.Buffer
	policy := fastPolicy()
	policy.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	fake := NewFakeProvider()
	fake.Replies = []FakeReply{{Err: errors.New("e1")}, {Err: errors.New("e2")}, {Content: "ok"}}

	_, err := Wrap(fake, Retry(policy)).Chat(context.Background(), NewChatRequest("s", "u", false))
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("retrying llm request")))
}

func TestRetryPolicyFromSettings(t *testing.T) {
	p := RetryPolicyFromSettings(config.LLMSettings{})
	assert.Equal(t, DefaultRetryPolicy(), p)

	p = RetryPolicyFromSettings(config.LLMSettings{MaxAttempts: 5, MinWait: 2 * time.Second, MaxWait: 30 * time.Second})
	assert.Equal(t, 5, p.MaxAttempts)
	assert.Equal(t, 2*time.Second, p.MinWait)
	assert.Equal(t, 30*time.Second, p.MaxWait)
}
