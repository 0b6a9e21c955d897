package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSummary(t *testing.T) {
	m := New()

	m.ObserveSummary("meeting", "high", 2*time.Millisecond)
	m.ObserveSummary("meeting", "high", time.Millisecond)
	m.StoreFailure()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.summaries.WithLabelValues("meeting", "high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeFailures))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveSummary("note", "low", time.Millisecond)
		m.StoreFailure()
	})
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveSummary("task", "medium", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `summaryhub_summaries_total{type="task",urgency="medium"} 1`)
	assert.Contains(t, string(body), "summaryhub_pipeline_seconds_bucket")
}
