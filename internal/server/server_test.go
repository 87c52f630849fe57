package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token-launch-lab/internal/domain"
	"token-launch-lab/internal/scenario"
	"token-launch-lab/internal/traders"
)

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := NewServer(log.New(io.Discard, "", 0))
	ts := httptest.NewServer(s.Routes())
	t.Cleanup(ts.Close)
	return s, ts
}

// smallConfig keeps HTTP tests fast.
func smallConfig() domain.ScenarioConfig {
	cfg := scenario.DefaultConfig()
	cfg.BidCount = 40
	cfg.TradingDays = 1
	cfg.Traders = domain.TraderMix{Random: 2, Momentum: 1, Arbitrage: 1}
	return cfg
}

func TestHandleRunScenario(t *testing.T) {
	s, ts := testServer(t)

	body, err := json.Marshal(smallConfig())
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+"/api/v1/scenario", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var run RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	assert.NotEmpty(t, run.Handle)
	require.NotNil(t, run.Result)
	assert.Len(t, run.Result.RunID, 64)
	assert.Equal(t, 40, run.Result.Config.BidCount)
	assert.Equal(t, 1, s.registry.Len())
}

func TestHandleRunScenario_EmptyBodyUsesDefaults(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/scenario", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var run RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	assert.Equal(t, scenario.DefaultConfig(), run.Result.Config)
}

func TestHandleRunScenario_InvalidConfig(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/scenario", "application/json",
		strings.NewReader(`{"total_supply": -5}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetRun(t *testing.T) {
	s, ts := testServer(t)

	result, err := scenario.NewRunner().Run(smallConfig())
	require.NoError(t, err)
	handle := s.registry.Put(result)

	resp, err := http.Get(ts.URL + "/api/v1/runs/" + handle)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var run RunResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&run))
	assert.Equal(t, handle, run.Handle)
	assert.Equal(t, result.RunID, run.Result.RunID)

	resp, err = http.Get(ts.URL + "/api/v1/runs/no-such-handle")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestScenarioWS_StreamsSnapshots(t *testing.T) {
	s, ts := testServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/scenario"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	cfg := smallConfig()
	require.NoError(t, conn.WriteJSON(cfg))

	steps := traders.StepsPerDay * cfg.TradingDays
	for i := 0; i < steps; i++ {
		var frame WSFrame
		require.NoError(t, conn.ReadJSON(&frame))
		require.Equal(t, "snapshot", frame.Type, "frame %d", i)
		assert.Equal(t, i, frame.TimeIndex)
		require.NotNil(t, frame.Stable)
		require.NotNil(t, frame.Upside)
		assert.Positive(t, frame.Stable.Price)
	}

	var final WSFrame
	require.NoError(t, conn.ReadJSON(&final))
	assert.Equal(t, "result", final.Type)
	assert.Len(t, final.RunID, 64)

	stored, ok := s.registry.Get(final.Handle)
	require.True(t, ok, "streamed run must land in the registry")
	assert.Equal(t, final.RunID, stored.RunID)
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := testServer(t)

	body, err := json.Marshal(smallConfig())
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+"/api/v1/scenario", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "token_launch_lab_scenario_runs_total")
	assert.Contains(t, string(raw), "token_launch_lab_server_runs_registered")
}

func TestScenarioWS_InvalidConfig(t *testing.T) {
	_, ts := testServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/scenario"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]any{"trading_days": 0}))

	var frame map[string]string
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "error", frame["type"])
	assert.NotEmpty(t, frame["error"])
}
