package admin

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricNewsletterSignups counts public newsletter sign-ups by outcome
var MetricNewsletterSignups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inno8_newsletter_signups_total",
	Help: "Newsletter sign-ups by outcome",
}, []string{"outcome"})
