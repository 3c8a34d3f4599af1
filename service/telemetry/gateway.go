// Package telemetry decorates the ability gateway with prometheus metrics:
// call totals, failures by kind and call duration per provider/ability.
package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/telaro/caseflow/service/gateway"
)

// GatewayMetrics holds the collectors the instrumented gateway reports to.
type GatewayMetrics struct {
	calls    *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewGatewayMetrics registers the gateway collectors with the supplied
// registerer.
func NewGatewayMetrics(registerer prometheus.Registerer) *GatewayMetrics {
	m := &GatewayMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "caseflow",
			Subsystem: "gateway",
			Name:      "calls_total",
			Help:      "Ability invocations by provider and ability.",
		}, []string{"provider", "ability"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "caseflow",
			Subsystem: "gateway",
			Name:      "failures_total",
			Help:      "Failed ability invocations by provider, ability and kind.",
		}, []string{"provider", "ability", "kind"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "caseflow",
			Subsystem: "gateway",
			Name:      "call_duration_seconds",
			Help:      "Ability invocation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "ability"}),
	}
	registerer.MustRegister(m.calls, m.failures, m.duration)
	return m
}

// Instrument wraps a gateway so every invocation is counted and timed.
func (m *GatewayMetrics) Instrument(next gateway.Gateway) gateway.Gateway {
	return &instrumented{metrics: m, next: next}
}

type instrumented struct {
	metrics *GatewayMetrics
	next    gateway.Gateway
}

func (g *instrumented) Invoke(ctx context.Context, provider gateway.Provider, ability string, params map[string]interface{}) (map[string]interface{}, error) {
	started := time.Now()
	result, err := g.next.Invoke(ctx, provider, ability, params)
	labels := prometheus.Labels{"provider": string(provider), "ability": ability}
	g.metrics.calls.With(labels).Inc()
	g.metrics.duration.With(labels).Observe(time.Since(started).Seconds())
	if err != nil {
		g.metrics.failures.With(prometheus.Labels{
			"provider": string(provider),
			"ability":  ability,
			"kind":     failureKind(err),
		}).Inc()
	}
	return result, err
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, gateway.ErrAbilityUnavailable):
		return "unavailable"
	case errors.Is(err, gateway.ErrMalformedResult):
		return "malformed_result"
	case errors.Is(err, gateway.ErrAbility):
		return "ability_error"
	default:
		return "other"
	}
}
