package llm

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "testsmith",
		Subsystem: "llm",
		Name:      "requests_total",
		Help:      "Chat exchanges sent to a model backend, by outcome.",
	}, []string{"provider", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "testsmith",
		Subsystem: "llm",
		Name:      "request_duration_seconds",
		Help:      "Latency of a single chat exchange.",
		Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"provider"})

	retriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "testsmith",
		Subsystem: "llm",
		Name:      "retries_total",
		Help:      "Chat exchanges re-sent after a failure.",
	}, []string{"provider"})
)

func WithMetrics() Middleware {
	return func(next Provider) Provider {
		return &metered{next: next}
	}
}

type metered struct {
	next Provider
}

func (m *metered) Name() string  { return m.next.Name() }
func (m *metered) Model() string { return m.next.Model() }

func (m *metered) Chat(ctx context.Context, req ChatRequest) (string, error) {
	start := time.Now()
	reply, err := m.next.Chat(ctx, req)
	requestDuration.WithLabelValues(m.next.Name()).Observe(time.Since(start).Seconds())
	requestsTotal.WithLabelValues(m.next.Name(), outcome(err)).Inc()
	return reply, err
}

func outcome(err error) string {
	if err == nil {
		return "success"
	}
	var te *TransportError
	if errors.As(err, &te) {
		return "transport_error"
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return "decode_error"
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "error"
}
