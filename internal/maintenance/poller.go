// Package maintenance tracks the backend's maintenance flag and gates public
// pages while it is on.
package maintenance

import (
	"context"
	"sync/atomic"
	"time"

	"inno8-site/internal/backend"
	xlog "inno8-site/internal/log"
)

// EndpointStatus reports the maintenance flag on the backend.
const EndpointStatus = "/maintenance-status"

// DefaultInterval is how often the flag is polled.
const DefaultInterval = 5 * time.Second

// Status is the backend's maintenance response.
type Status struct {
	MaintenanceMode bool `json:"maintenance_mode"`
}

// Fetcher is the slice of the backend client the poller needs.
type Fetcher interface {
	GetJSON(ctx context.Context, path string, out any) error
}

// Poller keeps the last known maintenance flag. It starts disabled.
type Poller struct {
	src      Fetcher
	interval time.Duration
	enabled  atomic.Bool
}

// NewPoller creates a poller. A non-positive interval uses DefaultInterval.
func NewPoller(src Fetcher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{src: src, interval: interval}
}

// Enabled reports the last known flag.
func (p *Poller) Enabled() bool {
	return p.enabled.Load()
}

// Set overrides the flag, e.g. after an admin toggle succeeded.
func (p *Poller) Set(on bool) {
	p.set(on)
}

func (p *Poller) set(on bool) {
	prev := p.enabled.Swap(on)
	if on {
		MetricMaintenanceMode.Set(1)
	} else {
		MetricMaintenanceMode.Set(0)
	}
	if prev != on {
		logger := xlog.WithComponent("maintenance")
		logger.Info().Bool("maintenance_mode", on).Msg("maintenance mode changed")
	}
}

// Poll fetches the flag once. On failure the previous value is kept.
func (p *Poller) Poll(ctx context.Context) error {
	var st Status
	if err := p.src.GetJSON(ctx, EndpointStatus, &st); err != nil {
		MetricPolls.WithLabelValues("failed").Inc()
		logger := xlog.WithComponent("maintenance")
		logger.Debug().Err(err).Str("kind", backend.Kind(err)).Msg("maintenance poll failed")
		return err
	}
	MetricPolls.WithLabelValues("ok").Inc()
	p.set(st.MaintenanceMode)
	return nil
}

// Run polls immediately and then on every interval until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	_ = p.Poll(ctx)
	for {
		select {
		case <-ticker.C:
			_ = p.Poll(ctx)
		case <-ctx.Done():
			return
		}
	}
}
