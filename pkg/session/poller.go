package session

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ccollicutt/logview/pkg/aggregator"
)

// DefaultPollInterval is how often a watched session reloads.
const DefaultPollInterval = 30 * time.Second

// Poller reloads a session periodically and whenever a trigger fires.
// Reloads run one at a time on the poller goroutine; ticks that arrive
// during a slow reload are dropped rather than queued.
type Poller struct {
	session  *Session
	interval time.Duration
	triggers <-chan struct{}
	onReload func(*aggregator.Result, error)
	log      logrus.FieldLogger
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval sets the reload period.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithTrigger adds an external reload trigger, such as a file watcher.
func WithTrigger(ch <-chan struct{}) PollerOption {
	return func(p *Poller) {
		p.triggers = ch
	}
}

// WithOnReload registers a callback run after every reload attempt.
func WithOnReload(fn func(*aggregator.Result, error)) PollerOption {
	return func(p *Poller) {
		p.onReload = fn
	}
}

// NewPoller creates a Poller for s.
func NewPoller(s *Session, opts ...PollerOption) *Poller {
	p := &Poller{
		session:  s,
		interval: DefaultPollInterval,
		log:      s.log,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run reloads immediately, then on every tick or trigger, until ctx is
// cancelled. It returns early with the error if the directory becomes
// inaccessible, since that ends the session.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	if err := p.reload(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case _, ok := <-p.triggers:
			if !ok {
				p.triggers = nil
				continue
			}
		}

		if err := p.reload(ctx); err != nil {
			return err
		}
	}
}

// reload runs one reload and returns only session-ending errors.
func (p *Poller) reload(ctx context.Context) error {
	result, err := p.session.Reload(ctx)
	if ctx.Err() != nil {
		return nil
	}
	if p.onReload != nil && !errors.Is(err, ErrReloadInProgress) {
		p.onReload(result, err)
	}

	var permErr *aggregator.PermissionError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrReloadInProgress):
		p.log.Debug("skipping reload, previous one still running")
		return nil
	case errors.As(err, &permErr):
		return err
	default:
		p.log.WithError(err).Warn("reload failed")
		return nil
	}
}
