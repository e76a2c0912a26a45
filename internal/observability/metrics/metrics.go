package metrics

import "github.com/prometheus/client_golang/prometheus"

// EngineMetrics exposes counters/histograms for the availability engine.
type EngineMetrics struct {
	operationLatency *prometheus.HistogramVec
	slotsReturned    *prometheus.CounterVec
	selectionCache   *prometheus.CounterVec
	validityChecks   *prometheus.CounterVec
}

func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	m := &EngineMetrics{
		operationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "appointment",
			Subsystem: "engine",
			Name:      "operation_latency_seconds",
			Help:      "Latency of availability engine operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status"}),
		slotsReturned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appointment",
			Subsystem: "engine",
			Name:      "slots_returned_total",
			Help:      "Total assigned slots returned to callers",
		}, []string{"category", "schedule_based_on"}),
		selectionCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appointment",
			Subsystem: "engine",
			Name:      "selection_cache_total",
			Help:      "Capacity selection lookups by cache outcome",
		}, []string{"result"}),
		validityChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "appointment",
			Subsystem: "engine",
			Name:      "validity_checks_total",
			Help:      "Booking-time slot validity checks",
		}, []string{"valid"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.operationLatency, m.slotsReturned, m.selectionCache, m.validityChecks)
	return m
}

func (m *EngineMetrics) ObserveOperation(operation string, err error, seconds float64) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.operationLatency.WithLabelValues(operation, status).Observe(seconds)
}

func (m *EngineMetrics) ObserveSlots(category, scheduleBasedOn string, count int) {
	if m == nil {
		return
	}
	m.slotsReturned.WithLabelValues(category, scheduleBasedOn).Add(float64(count))
}

// ObserveSelection records where a capacity selection came from: "memo",
// "shared" or "computed".
func (m *EngineMetrics) ObserveSelection(result string) {
	if m == nil {
		return
	}
	m.selectionCache.WithLabelValues(result).Inc()
}

func (m *EngineMetrics) ObserveValidity(valid bool) {
	if m == nil {
		return
	}
	label := "false"
	if valid {
		label = "true"
	}
	m.validityChecks.WithLabelValues(label).Inc()
}
