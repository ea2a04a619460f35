package metrics

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics stores the Prometheus collectors used across the service.
type Metrics struct {
	AuthFailures    *prometheus.CounterVec
	Reconciliations *prometheus.CounterVec
	PasscodesIssued *prometheus.CounterVec
}

var (
	regOnce  sync.Once
	instance *Metrics
)

// Registry builds and registers the metrics singleton with the given namespace.
func Registry(namespace string) *Metrics {
	regOnce.Do(func() {
		instance = &Metrics{
			AuthFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_failures_total",
				Help:      "Total rejected requests by surface (admin, customer).",
			}, []string{"surface"}),
			Reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_reconciliations_total",
				Help:      "Total payment reconciliation attempts by outcome.",
			}, []string{"outcome"}),
			PasscodesIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "passcodes_issued_total",
				Help:      "Total one-time passcodes issued by purpose.",
			}, []string{"purpose"}),
		}

		prometheus.MustRegister(
			instance.AuthFailures,
			instance.Reconciliations,
			instance.PasscodesIssued,
		)
	})
	return instance
}

// Serve exposes /metrics on its own listener so the scrape endpoint stays off
// the public API port. Blocks; run in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("📈 Metrics listening on %s", addr)
	return srv.ListenAndServe()
}
