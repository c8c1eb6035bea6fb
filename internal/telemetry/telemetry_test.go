package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveRequest("sum", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest("sum", http.StatusOK, 30*time.Millisecond)
	m.ObservePage("posts", 50)
	m.ObservePage("posts", 25)
	m.ObserveTruncated("sum")
	m.ObserveCache("hit")

	require.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("sum", "OK")))
	require.Equal(t, 2.0, testutil.ToFloat64(m.PagesFetched.WithLabelValues("posts")))
	require.Equal(t, 75.0, testutil.ToFloat64(m.DocumentsScanned.WithLabelValues("posts")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.ScansTruncated.WithLabelValues("sum")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	require.NotPanics(t, func() {
		m.ObserveRequest("count", http.StatusOK, time.Millisecond)
		m.ObservePage("posts", 1)
		m.ObserveTruncated("count")
		m.ObserveCache("miss")
	})
}

func TestMetrics_RegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := NewMetrics(nil)
	m.ObservePage("posts", 3)

	r := gin.New()
	m.RegisterRoutes(r, "/metrics")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	require.Contains(t, resp.Body.String(), `paneldeck_metrics_documents_scanned_total{collection="posts"} 3`)
}
