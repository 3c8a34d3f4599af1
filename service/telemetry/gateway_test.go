package telemetry

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telaro/caseflow/service/gateway"
	"github.com/telaro/caseflow/service/gateway/memory"
)

func TestGatewayMetrics_Instrument(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewGatewayMetrics(registry)
	gw := metrics.Instrument(memory.New(
		memory.WithFailure(gateway.ProviderAtlas, "update_ticket",
			gateway.NewUnavailableError(gateway.ProviderAtlas, "update_ticket", context.DeadlineExceeded)),
	))

	_, err := gw.Invoke(context.Background(), gateway.ProviderCommon, "parse_request_text", nil)
	require.NoError(t, err)
	_, err = gw.Invoke(context.Background(), gateway.ProviderAtlas, "update_ticket", nil)
	require.Error(t, err)

	calls := testutil.ToFloat64(metrics.calls.WithLabelValues("COMMON", "parse_request_text"))
	assert.Equal(t, 1.0, calls)
	failures := testutil.ToFloat64(metrics.failures.WithLabelValues("ATLAS", "update_ticket", "unavailable"))
	assert.Equal(t, 1.0, failures)
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.failures.WithLabelValues("COMMON", "parse_request_text", "unavailable")))
}

func TestFailureKind(t *testing.T) {
	cause := context.DeadlineExceeded
	assert.Equal(t, "unavailable", failureKind(gateway.NewUnavailableError(gateway.ProviderCommon, "a", cause)))
	assert.Equal(t, "ability_error", failureKind(gateway.NewAbilityError(gateway.ProviderCommon, "a", cause)))
	assert.Equal(t, "malformed_result", failureKind(gateway.NewMalformedResultError(gateway.ProviderCommon, "a", cause)))
	assert.Equal(t, "other", failureKind(cause))
}
