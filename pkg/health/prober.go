package health

import (
	"context"
	"time"

	"github.com/cuemby/baliusd/pkg/log"
	"github.com/cuemby/baliusd/pkg/metrics"
)

// Prober runs a Checker against a single named dependency on an interval,
// applying Status's hysteresis before publishing the result to
// pkg/metrics's component health registry, so a lone transient failure
// doesn't flip the component to unhealthy.
type Prober struct {
	name    string
	checker Checker
	config  Config
	status  *Status
}

// NewProber builds a Prober that checks checker every config.Interval and
// registers its outcome against name in pkg/metrics's component health
// registry.
func NewProber(name string, checker Checker, config Config) *Prober {
	return &Prober{
		name:    name,
		checker: checker,
		config:  config,
		status:  NewStatus(),
	}
}

// Run blocks, checking on every tick of config.Interval until ctx is
// cancelled.
func (p *Prober) Run(ctx context.Context) {
	logger := log.WithComponent("health")
	metrics.RegisterComponent(p.name, true, "awaiting first check")

	ticker := time.NewTicker(p.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.status.InStartPeriod(p.config) {
				continue
			}

			checkCtx, cancel := context.WithTimeout(ctx, p.config.Timeout)
			result := p.checker.Check(checkCtx)
			cancel()

			p.status.Update(result, p.config)
			metrics.UpdateComponent(p.name, p.status.Healthy, result.Message)

			if !p.status.Healthy {
				logger.Warn().Str("dependency", p.name).Str("message", result.Message).Msg("dependency unhealthy")
			}
		}
	}
}
