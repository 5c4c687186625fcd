package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordFallback(t *testing.T) {
	before := testutil.ToFloat64(fallbackServedTotal.WithLabelValues("list"))
	RecordFallback("list")
	assert.Equal(t, before+1, testutil.ToFloat64(fallbackServedTotal.WithLabelValues("list")))
}

func TestSetDependencyHealth(t *testing.T) {
	SetDependencyHealth("mongodb", false)
	assert.Equal(t, 0.0, testutil.ToFloat64(dependencyHealth.WithLabelValues("mongodb")))
	SetDependencyHealth("mongodb", true)
	assert.Equal(t, 1.0, testutil.ToFloat64(dependencyHealth.WithLabelValues("mongodb")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	RecordHTTPRequest(http.MethodGet, "/api/v1/events", http.StatusOK, 5*time.Millisecond, 128)
	RecordEventCreated()
	RecordBookingCreated()

	rr := httptest.NewRecorder()
	Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "http_requests_total")
	assert.Contains(t, body, "devevent_events_created_total")
	assert.Contains(t, body, "devevent_bookings_created_total")
}
