package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.QuoteServed("Editing", false)
	m.QuoteServed("Editing", false)
	m.QuoteServed("Editing", true)
	m.PromotionRedeemed("BEST2025")
	m.StatusTransition("Incomplete", "Pending")
	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)

	if got := testutil.ToFloat64(m.quotes.WithLabelValues("Editing", "false")); got != 2 {
		t.Errorf("Expected 2 quotes without fallback, got %v", got)
	}
	if got := testutil.ToFloat64(m.quotes.WithLabelValues("Editing", "true")); got != 1 {
		t.Errorf("Expected 1 quote with fallback, got %v", got)
	}
	if got := testutil.ToFloat64(m.promotions.WithLabelValues("BEST2025")); got != 1 {
		t.Errorf("Expected 1 promotion, got %v", got)
	}
	if got := testutil.ToFloat64(m.statusTransitions.WithLabelValues("Incomplete", "Pending")); got != 1 {
		t.Errorf("Expected 1 transition, got %v", got)
	}
	if got := testutil.ToFloat64(m.cacheRequests.WithLabelValues("miss")); got != 2 {
		t.Errorf("Expected 2 cache misses, got %v", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.OrderCreated("Proofreading", "1 day", decimal.RequireFromString("39.10"))
	m.ObserveHTTP("GET", "/api/v1/orders", 200, 15*time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(w.Body)
	for _, want := range []string{
		`orders_created_total{delivery="1 day",service_type="Proofreading"} 1`,
		"orders_price_amount_sum 39.1",
		"orders_http_request_duration_seconds_count",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("Expected exposition to contain %q", want)
		}
	}
}
