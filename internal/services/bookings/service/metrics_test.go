package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/facility-bookings/internal/platform/metrics"
)

func scrapeMetrics(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("scrape status = %d, want %d", rr.Code, http.StatusOK)
	}
	return rr.Body.String()
}
