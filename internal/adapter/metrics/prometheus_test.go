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

func TestObserveDelivery(t *testing.T) {
	p := NewPrometheus()

	p.ObserveDelivery("hook", "ok", 10*time.Millisecond)
	p.ObserveDelivery("hook", "ok", 20*time.Millisecond)
	p.ObserveDelivery("alarm", "transport_error", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.deliveries.WithLabelValues("hook", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.deliveries.WithLabelValues("alarm", "transport_error")))
	assert.Equal(t, 2, testutil.CollectAndCount(p.duration))
}

func TestHandlerServesSeries(t *testing.T) {
	p := NewPrometheus()
	p.ObserveDelivery("alarm", "ok", time.Millisecond)

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `slack_notifier_deliveries_total{outcome="ok",trigger="alarm"} 1`)
}
