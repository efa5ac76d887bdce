package content

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricSectionResolutions counts section resolutions by data source
var MetricSectionResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inno8_section_resolutions_total",
	Help: "Section resolutions by section and source (network or fallback)",
}, []string{"section", "source"})
