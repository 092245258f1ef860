package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/go-gasless/internal/metrics"
)

func TestObserveProviderRequest(t *testing.T) {
	m, err := metrics.New()
	require.NoError(t, err)

	m.ObserveProviderRequest("POST", "/wallets", "ok", 20*time.Millisecond)
	m.ObserveProviderRequest("POST", "/wallets", "ok", 10*time.Millisecond)
	m.ObserveProviderRequest("POST", "/wallets", "remote_error", time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(m.ProviderRequests().WithLabelValues("POST", "/wallets", "ok")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ProviderRequests().WithLabelValues("POST", "/wallets", "remote_error")), 0)
}

func TestObserveWorkflowRun(t *testing.T) {
	m, err := metrics.New()
	require.NoError(t, err)

	m.ObserveWorkflowRun("aborted")
	assert.InDelta(t, 1, testutil.ToFloat64(m.WorkflowRuns().WithLabelValues("aborted")), 0)

	// separate registries never collide
	_, err = metrics.New()
	require.NoError(t, err)
}

func TestNilServiceIsNoop(t *testing.T) {
	var m *metrics.Service
	assert.NotPanics(t, func() {
		m.ObserveProviderRequest("GET", "/wallets/{id}", "ok", time.Second)
		m.ObserveWorkflowRun("transfer_simulated")
	})
}
