package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordCountsRequests(t *testing.T) {
	c := New()
	c.Record(http.MethodGet, "/api/v1/performance/periods", 200, 10*time.Millisecond)
	c.Record(http.MethodGet, "/api/v1/performance/periods", 200, 5*time.Millisecond)
	c.Record(http.MethodPost, "/api/v1/performance/goals", http.StatusTooManyRequests, time.Millisecond)

	if got := testutil.ToFloat64(c.requests.WithLabelValues(http.MethodGet, "/api/v1/performance/periods", "200")); got != 2 {
		t.Fatalf("expected 2 requests, got %v", got)
	}
	if got := testutil.ToFloat64(c.rateLimited); got != 1 {
		t.Fatalf("expected 1 rate limited request, got %v", got)
	}
}

func TestDomainCounter(t *testing.T) {
	c := New()
	c.Domain("evaluation", "duplicate")
	c.Domain("evaluation", "duplicate")
	c.Domain("period", "created")
	if got := testutil.ToFloat64(c.domainEvents.WithLabelValues("evaluation", "duplicate")); got != 2 {
		t.Fatalf("expected 2 duplicates, got %v", got)
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector
	c.Record(http.MethodGet, "/", 200, time.Millisecond)
	c.Domain("goal", "created")
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New()
	c.Domain("period", "overlap")
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `hrrecords_performance_events_total{entity="period",outcome="overlap"} 1`) {
		t.Fatalf("metric missing from output")
	}
}
