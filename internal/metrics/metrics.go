// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ProductionMetrics is shared by the HTTP adapter and the jobs.
type ProductionMetrics struct {
	httpDuration    *prometheus.HistogramVec
	outboxPublished prometheus.Counter
	outboxFailures  prometheus.Counter
	auditChecked    prometheus.Counter
	auditRepaired   prometheus.Counter
}

func NewProductionMetrics() *ProductionMetrics {
	return NewProductionMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func NewProductionMetricsWithRegisterer(registerer prometheus.Registerer) *ProductionMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ProductionMetrics{
		httpDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "production_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		outboxPublished: registerCounter(registerer, prometheus.CounterOpts{
			Name: "production_outbox_published_total",
			Help: "Integration events published from the outbox",
		}),
		outboxFailures: registerCounter(registerer, prometheus.CounterOpts{
			Name: "production_outbox_publish_failures_total",
			Help: "Outbox publisher runs that stopped on a message bus error",
		}),
		auditChecked: registerCounter(registerer, prometheus.CounterOpts{
			Name: "production_piece_audit_checked_total",
			Help: "Pieces whose cached state was compared with their event log",
		}),
		auditRepaired: registerCounter(registerer, prometheus.CounterOpts{
			Name: "production_piece_audit_repaired_total",
			Help: "Pieces whose cached state had drifted from their event log and was rewritten",
		}),
	}
}

func (m *ProductionMetrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpDuration.WithLabelValues(method, route, fmt.Sprint(status)).Observe(duration.Seconds())
}

func (m *ProductionMetrics) RecordPublished(n int) {
	m.outboxPublished.Add(float64(n))
}

func (m *ProductionMetrics) RecordPublishFailure() {
	m.outboxFailures.Inc()
}

func (m *ProductionMetrics) RecordAudit(checked, repaired int) {
	m.auditChecked.Add(float64(checked))
	m.auditRepaired.Add(float64(repaired))
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
