package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics exposes counters/histograms for command and booking flows.
type SchedulingMetrics struct {
	commandsTotal      *prometheus.CounterVec
	bookingsTotal      *prometheus.CounterVec
	cancellationsTotal *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	operationLatency   *prometheus.HistogramVec
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assistant",
			Subsystem: "voice",
			Name:      "commands_total",
			Help:      "Total interpreted utterances by intent",
		}, []string{"intent"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assistant",
			Subsystem: "appointments",
			Name:      "bookings_total",
			Help:      "Total booking attempts by outcome",
		}, []string{"outcome"}),
		cancellationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assistant",
			Subsystem: "appointments",
			Name:      "cancellations_total",
			Help:      "Total cancellation attempts by outcome",
		}, []string{"outcome"}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "assistant",
			Subsystem: "notify",
			Name:      "notifications_total",
			Help:      "Total notifications created by type",
		}, []string{"type"}),
		operationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "assistant",
			Subsystem: "appointments",
			Name:      "operation_latency_seconds",
			Help:      "Latency of lifecycle manager operations",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.commandsTotal, m.bookingsTotal, m.cancellationsTotal, m.notificationsTotal, m.operationLatency)
	return m
}

func (m *SchedulingMetrics) ObserveCommand(intent string) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(intent).Inc()
}

func (m *SchedulingMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

func (m *SchedulingMetrics) ObserveCancellation(outcome string) {
	if m == nil {
		return
	}
	m.cancellationsTotal.WithLabelValues(outcome).Inc()
}

func (m *SchedulingMetrics) ObserveNotification(kind string) {
	if m == nil {
		return
	}
	m.notificationsTotal.WithLabelValues(kind).Inc()
}

func (m *SchedulingMetrics) ObserveOperation(operation string, seconds float64) {
	if m == nil {
		return
	}
	m.operationLatency.WithLabelValues(operation).Observe(seconds)
}
