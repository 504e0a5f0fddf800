package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrAlreadyRunning is returned by Start on a poller that is running.
var ErrAlreadyRunning = errors.New("poller already running")

// Options configures a poller.
type Options struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// fetchFunc fetches a snapshot and returns it rendered.
type fetchFunc func(ctx context.Context) (string, error)

// Poller re-fetches a view and replaces its region on a fixed interval.
// Polls are never deduplicated: a tick fires even when the previous poll
// is still in flight. The region always shows the newest poll that
// completed, never an older one that arrived late.
type Poller struct {
	name         string
	interval     time.Duration
	region       Region
	renderer     Renderer
	errorMessage string
	fetch        fetchFunc
	logger       *slog.Logger
	seq          sequencer

	mu      sync.Mutex
	running bool
	run     uint64
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func newPoller(name, errorMessage string, region Region, renderer Renderer, fetch fetchFunc, opts Options) *Poller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Poller{
		name:         name,
		interval:     opts.Interval,
		region:       region,
		renderer:     renderer,
		errorMessage: errorMessage,
		fetch:        fetch,
		logger:       logger.With("poller", name),
	}
}

// Name returns the poller name used in logs.
func (p *Poller) Name() string {
	return p.name
}

// Interval returns the time between polls.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Start polls immediately and then on every interval until ctx is done
// or Stop is called.
func (p *Poller) Start(ctx context.Context) error {
	if p.interval <= 0 {
		return fmt.Errorf("%s poller: interval must be positive, got %s", p.name, p.interval)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running = true
	p.run++

	p.logger.Debug("starting poller", "interval", p.interval)

	p.wg.Add(1)
	go p.loop(ctx, p.run)

	return nil
}

// Stop cancels the timer and every in-flight poll and waits for them to
// return. Cancelled polls do not render. Stop is safe to call twice.
func (p *Poller) Stop() {
	p.mu.Lock()
	wasRunning := p.running
	cancel := p.cancel
	p.running = false
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()

	if wasRunning {
		p.logger.Debug("poller stopped")
	}
}

// Running reports whether the poller has been started and not stopped.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Refresh runs one poll synchronously and returns its fetch error.
func (p *Poller) Refresh(ctx context.Context) error {
	return p.poll(ctx)
}

func (p *Poller) loop(ctx context.Context, run uint64) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.spawn(ctx)
	for {
		select {
		case <-ctx.Done():
			p.finish(run)
			return
		case <-ticker.C:
			p.spawn(ctx)
		}
	}
}

// finish marks the poller stopped when its parent context ended. A
// newer Start owns the state and is left alone.
func (p *Poller) finish(run uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.run != run || !p.running {
		return
	}
	p.running = false
	p.cancel()
	p.cancel = nil
	p.logger.Debug("poller context done")
}

func (p *Poller) spawn(ctx context.Context) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		_ = p.poll(ctx)
	}()
}

func (p *Poller) poll(ctx context.Context) error {
	seq := p.seq.issue()

	content, err := p.fetch(ctx)
	if ctx.Err() != nil {
		p.logger.Debug("poll cancelled", "seq", seq)
		return ctx.Err()
	}

	if err != nil {
		p.logger.Error("poll failed", "seq", seq, "error", err)
		content = p.renderer.Error(p.errorMessage)
	}

	if !p.seq.apply(seq, func() { p.region.Replace(content) }) {
		p.logger.Debug("discarding stale poll result", "seq", seq)
	}

	return err
}
