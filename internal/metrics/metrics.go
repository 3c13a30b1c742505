// Package metrics holds the Prometheus collectors for the orders service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "orders"

// Metrics records service activity.
type Metrics struct {
	gatherer prometheus.Gatherer

	quotes            *prometheus.CounterVec
	ordersCreated     *prometheus.CounterVec
	promotions        *prometheus.CounterVec
	priceAmount       prometheus.Histogram
	statusTransitions *prometheus.CounterVec
	cacheRequests     *prometheus.CounterVec
	paymentEvents     *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		quotes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quotes_total",
			Help:      "Price quotes served, by service type and whether the delivery fallback rate was used.",
		}, []string{"service_type", "fallback"}),
		ordersCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "created_total",
			Help:      "Orders placed, by service type and delivery time.",
		}, []string{"service_type", "delivery"}),
		promotions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "promotions_redeemed_total",
			Help:      "Orders placed with a valid promotion code.",
		}, []string{"code"}),
		priceAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "price_amount",
			Help:      "Final order price.",
			Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
		statusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Order status changes.",
		}, []string{"from", "to"}),
		cacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Order cache lookups by result.",
		}, []string{"result"}),
		paymentEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_events_total",
			Help:      "Payment events consumed, by type and outcome.",
		}, []string{"type", "outcome"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// QuoteServed counts a price quote.
func (m *Metrics) QuoteServed(serviceType string, fallback bool) {
	m.quotes.WithLabelValues(serviceType, strconv.FormatBool(fallback)).Inc()
}

// OrderCreated records a placed order and its price.
func (m *Metrics) OrderCreated(serviceType, delivery string, price decimal.Decimal) {
	m.ordersCreated.WithLabelValues(serviceType, delivery).Inc()
	m.priceAmount.Observe(price.InexactFloat64())
}

// PromotionRedeemed counts a promotion code used on an order.
func (m *Metrics) PromotionRedeemed(code string) {
	m.promotions.WithLabelValues(code).Inc()
}

// StatusTransition counts an order moving between statuses.
func (m *Metrics) StatusTransition(from, to string) {
	m.statusTransitions.WithLabelValues(from, to).Inc()
}

// CacheLookup counts a cache hit or miss.
func (m *Metrics) CacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheRequests.WithLabelValues(result).Inc()
}

// PaymentEvent counts a consumed payment event.
func (m *Metrics) PaymentEvent(eventType, outcome string) {
	m.paymentEvents.WithLabelValues(eventType, outcome).Inc()
}

// ObserveHTTP records the latency of one request.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
