package contact

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricSubmissions counts contact submissions by outcome (ok, invalid, failed, busy)
var MetricSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inno8_contact_submissions_total",
	Help: "Contact form submissions by outcome",
}, []string{"outcome"})
