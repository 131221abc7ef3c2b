package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RecordsLabelledCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncLeagueLoads("england")
	svc.IncLeagueLoads("england")
	svc.IncStatisticsCacheHits("spain")
	svc.SetStoredRows("england_teams", 20)

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.LeagueLoads.WithLabelValues("england")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.StatisticsCacheHits.WithLabelValues("spain")))
	assert.Equal(t, 20.0, testutil.ToFloat64(svc.StoredRows.WithLabelValues("england_teams")))
}

func TestMetricsHandler_ExposesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)
	svc.ObserveLoadDuration(0.3)

	rr := httptest.NewRecorder()
	NewMetricsHandler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "soccer_league_load_duration_seconds_count 1")
}
