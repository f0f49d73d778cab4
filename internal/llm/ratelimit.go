package llm

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/time/rate"
)

// RateLimit caps outgoing exchanges at rps with the given burst. It is a
// no-op when rps <= 0.
func RateLimit(rps float64, burst int) Middleware {
	return func(next Provider) Provider {
		if rps <= 0 {
			return next
		}
		if burst <= 0 {
			burst = int(math.Max(1, math.Ceil(rps)))
		}
		return &rateLimited{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
	}
}

type rateLimited struct {
	next    Provider
	limiter *rate.Limiter
}

func (c *rateLimited) Name() string  { return c.next.Name() }
func (c *rateLimited) Model() string { return c.next.Model() }

func (c *rateLimited) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}
	return c.next.Chat(ctx, req)
}
