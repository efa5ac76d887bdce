package theme

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MetricPaletteState is 0 while the default palette is served, 1 once resolved
	MetricPaletteState = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "inno8_palette_state",
		Help: "Palette lifecycle state (0=default, 1=resolved)",
	})

	// MetricPaletteFetches counts palette fetch outcomes
	MetricPaletteFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inno8_palette_fetch_total",
		Help: "Palette fetch attempts by outcome",
	}, []string{"outcome"})
)
