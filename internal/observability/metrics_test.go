package observability

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordScenarioRun(t *testing.T) {
	okBefore := testutil.ToFloat64(DefaultMetrics.ScenarioRunsTotal.WithLabelValues("ok"))
	tradesBefore := testutil.ToFloat64(DefaultMetrics.TradesSimulated)

	RecordScenarioRun("ok", 0.25, 120)
	RecordScenarioRun("error", 0.01, 0)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(DefaultMetrics.ScenarioRunsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(DefaultMetrics.ScenarioRunsTotal.WithLabelValues("error")))
	assert.Equal(t, tradesBefore+120, testutil.ToFloat64(DefaultMetrics.TradesSimulated))
}

func TestRegistryGaugeAndStreams(t *testing.T) {
	UpdateRegistrySize(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(DefaultMetrics.RunsRegistered))
	UpdateRegistrySize(0)
	assert.Equal(t, 0.0, testutil.ToFloat64(DefaultMetrics.RunsRegistered))

	before := testutil.ToFloat64(DefaultMetrics.WSStreamsServed)
	RecordWSStream()
	assert.Equal(t, before+1, testutil.ToFloat64(DefaultMetrics.WSStreamsServed))
}

func TestHandler_ServesRegisteredMetrics(t *testing.T) {
	RecordScenarioRun("ok", 0.1, 1)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "token_launch_lab_scenario_runs_total")
	assert.Contains(t, body, "token_launch_lab_scenario_duration_seconds")
	assert.Contains(t, body, "token_launch_lab_server_ws_streams_served_total")
}
