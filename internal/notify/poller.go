// Package notify refreshes the unread-notification count on a fixed
// interval while the home screen is visible.
package notify

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval is how often the badge count is refreshed.
const DefaultInterval = 5 * time.Second

// CountFunc fetches the current unread count.
type CountFunc func(ctx context.Context) (int, error)

// Poller runs a repeating unread-count fetch tied to the visible
// screen's lifecycle. Start launches the loop, Stop tears it down
// deterministically; results arriving after Stop are dropped.
type Poller struct {
	fetch    CountFunc
	interval time.Duration
	log      *zap.Logger
	cancel   context.CancelFunc
}

// NewPoller builds a poller. interval <= 0 selects DefaultInterval.
func NewPoller(fetch CountFunc, interval time.Duration, log *zap.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Poller{fetch: fetch, interval: interval, log: log}
}

// Start begins polling, delivering each count to onCount. An
// immediate first fetch runs before the ticker takes over. Calling
// Start while running restarts the loop.
func (p *Poller) Start(onCount func(int)) {
	p.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	ticker := time.NewTicker(p.interval)
	go func() {
		defer ticker.Stop()
		p.poll(ctx, onCount)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx, onCount)
			}
		}
	}()
}

// Stop cancels the polling loop. Safe to call when not running.
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Poller) poll(ctx context.Context, onCount func(int)) {
	n, err := p.fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.log.Debug("unread count fetch failed", zap.Error(err))
		}
		return
	}
	if ctx.Err() != nil {
		// Stopped while the fetch was in flight.
		return
	}
	onCount(n)
}
