package maintenance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MetricMaintenanceMode mirrors the last known flag (1 = on)
	MetricMaintenanceMode = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inno8_maintenance_mode",
		Help: "Last known backend maintenance flag (1 = enabled)",
	})

	// MetricPolls counts maintenance status polls by outcome
	MetricPolls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inno8_maintenance_polls_total",
		Help: "Maintenance status polls by outcome",
	}, []string{"outcome"})
)
