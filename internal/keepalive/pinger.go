// Package keepalive periodically requests the app's own URL so idle-shutdown
// hosting platforms keep the process warm.
package keepalive

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	DefaultInterval = 120 * time.Second
	DefaultTimeout  = 10 * time.Second

	stopWait = 5 * time.Second
)

// Options configures a Pinger.
type Options struct {
	URL       string
	Interval  time.Duration
	Timeout   time.Duration
	UserAgent string
	// OnPing, if set, is called after every ping with its error (nil on success).
	OnPing func(error)
}

// Pinger sends one GET per interval until stopped.
type Pinger struct {
	opts   Options
	client *http.Client
	logger logrus.FieldLogger

	stopWait time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	// done is kept after a timed-out Stop until the old worker exits.
	done chan struct{}

	workers atomic.Int32
}

func New(opts Options, logger logrus.FieldLogger) *Pinger {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Pinger{
		opts:     opts,
		client:   &http.Client{Timeout: opts.Timeout},
		logger:   logger.WithFields(logrus.Fields{"component": "keepalive", "url": opts.URL}),
		stopWait: stopWait,
	}
}

// Start launches the ping loop. It is a no-op while already running, and
// while a worker from a timed-out Stop has not exited yet.
func (p *Pinger) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return
	}
	if p.done != nil {
		select {
		case <-p.done:
			p.done = nil
		default:
			p.logger.Warn("Previous keep-alive worker still running, not starting another")
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true

	p.workers.Add(1)
	go p.loop(ctx, p.done)

	p.logger.Infof("Keep-alive started, pinging every %s", p.opts.Interval)
}

// Stop cancels the loop and waits up to five seconds for it to exit.
// Stopping a pinger that is not running is a no-op.
func (p *Pinger) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	p.cancel()
	select {
	case <-p.done:
		p.done = nil
	case <-time.After(p.stopWait):
		p.logger.Warn("Keep-alive worker did not exit in time")
	}

	p.running = false
	p.cancel = nil
	p.logger.Info("Keep-alive stopped")
}

// Running reports whether Start has been called without a matching Stop.
func (p *Pinger) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *Pinger) loop(ctx context.Context, done chan<- struct{}) {
	// workers drops before done closes, so a restart never overlaps this worker.
	defer close(done)
	defer p.workers.Add(-1)

	ticker := time.NewTicker(p.opts.Interval)
	defer ticker.Stop()

	for {
		p.ping(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (p *Pinger) ping(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Errorf("Keep-alive ping panicked: %v", r)
		}
	}()

	err := p.get(ctx)
	if err != nil {
		// A ping interrupted by Stop is not worth a warning.
		if ctx.Err() != nil {
			return
		}
		p.logger.WithError(err).Warn("Keep-alive ping failed")
	} else {
		p.logger.Debug("Keep-alive ping sent")
	}

	if p.opts.OnPing != nil {
		p.opts.OnPing(err)
	}
}

func (p *Pinger) get(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.opts.URL, nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	if p.opts.UserAgent != "" {
		req.Header.Set("User-Agent", p.opts.UserAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
