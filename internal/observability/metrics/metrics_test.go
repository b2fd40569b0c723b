package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestSchedulingMetricsObserve(t *testing.T) {
	m := NewSchedulingMetrics(prometheus.NewRegistry())
	m.ObserveCommand("bookAppointment")
	m.ObserveBooking("booked")
	m.ObserveCancellation("cancelled")
	m.ObserveNotification("appointment_confirmation")
	m.ObserveOperation("book", 0.5)
}

func TestSchedulingMetricsCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSchedulingMetrics(reg)
	m.ObserveCommand("unknown")
	m.ObserveCommand("unknown")
	m.ObserveCommand("navigate")

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var found *dto.MetricFamily
	for _, fam := range families {
		if fam.GetName() == "assistant_voice_commands_total" {
			found = fam
		}
	}
	if found == nil {
		t.Fatal("expected commands_total family")
	}
	counts := map[string]float64{}
	for _, metric := range found.GetMetric() {
		counts[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
	}
	if counts["unknown"] != 2 || counts["navigate"] != 1 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestSchedulingMetricsNilSafe(t *testing.T) {
	var m *SchedulingMetrics
	m.ObserveCommand("unknown")
	m.ObserveBooking("failed")
	m.ObserveCancellation("not_found")
	m.ObserveNotification("appointment_reminder")
	m.ObserveOperation("fetch", 0.1)
}
