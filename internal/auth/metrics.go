package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricLoginAttempts counts proxied logins by outcome (ok, rejected, throttled, failed)
var MetricLoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "inno8_login_attempts_total",
	Help: "Admin login attempts by outcome",
}, []string{"outcome"})
