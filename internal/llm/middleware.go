package llm

import (
	"context"
	"log/slog"
	"time"
)

// Middleware decorates a Provider with a cross-cutting concern.
type Middleware func(Provider) Provider

// Wrap applies middlewares left to right: Wrap(p, A, B) is A(B(p)).
func Wrap(inner Provider, mws ...Middleware) Provider {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			out = mws[i](out)
		}
	}
	return out
}

func WithLogging(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Provider) Provider {
		return &logged{next: next, logger: logger.With("provider", next.Name(), "model", next.Model())}
	}
}

type logged struct {
	next   Provider
	logger *slog.Logger
}

func (l *logged) Name() string  { return l.next.Name() }
func (l *logged) Model() string { return l.next.Model() }

func (l *logged) Chat(ctx context.Context, req ChatRequest) (string, error) {
	start := time.Now()
	l.logger.Debug("llm request", "messages", len(req.Messages), "json", req.JSON)

	reply, err := l.next.Chat(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		l.logger.Warn("llm request failed", "duration", elapsed, "status", StatusCode(err), "error", err)
		return reply, err
	}

	l.logger.Info("llm request completed", "duration", elapsed, "reply_bytes", len(reply))
	return reply, nil
}
