package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/agusespa/testsmith/pkg/config"
	"github.com/cenkalti/backoff/v5"
)

type RetryPolicy struct {
	MaxAttempts int
	MinWait     time.Duration
	MaxWait     time.Duration
	Logger      *slog.Logger
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, MinWait: time.Second, MaxWait: 8 * time.Second}
}

func RetryPolicyFromSettings(s config.LLMSettings) RetryPolicy {
	p := DefaultRetryPolicy()
	if s.MaxAttempts > 0 {
		p.MaxAttempts = s.MaxAttempts
	}
	if s.MinWait > 0 {
		p.MinWait = s.MinWait
	}
	if s.MaxWait > 0 {
		p.MaxWait = s.MaxWait
	}
	return p
}

// Retry re-sends failed exchanges with exponential backoff. It does not look
// at the error kind, and after the last attempt it returns the last error
// exactly as the wrapped provider produced it.
func Retry(policy RetryPolicy) Middleware {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.MinWait <= 0 {
		policy.MinWait = time.Second
	}
	if policy.MaxWait < policy.MinWait {
		policy.MaxWait = policy.MinWait
	}
	if policy.Logger == nil {
		policy.Logger = slog.Default()
	}
	return func(next Provider) Provider {
		return &retrying{next: next, policy: policy}
	}
}

type retrying struct {
	next   Provider
	policy RetryPolicy
}

func (r *retrying) Name() string  { return r.next.Name() }
func (r *retrying) Model() string { return r.next.Model() }

func (r *retrying) Chat(ctx context.Context, req ChatRequest) (string, error) {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     r.policy.MinWait,
		RandomizationFactor: 0,
		Multiplier:          2,
		MaxInterval:         r.policy.MaxWait,
	}

	attempt := 0
	op := func() (string, error) {
		attempt++
		return r.next.Chat(ctx, req)
	}

	notify := func(err error, wait time.Duration) {
		retriesTotal.WithLabelValues(r.next.Name()).Inc()
		r.policy.Logger.Warn("retrying llm request",
			"provider", r.next.Name(),
			"attempt", attempt,
			"max_attempts", r.policy.MaxAttempts,
			"wait", wait,
			"error", err,
		)
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(uint(r.policy.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(notify),
	)
}
