package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuspulse/console/internal/feedback"
)

const defaultPollInterval = 15 * time.Second

// Poller owns the periodic snapshot refresh. One mutex covers the whole
// fetch: a periodic tick skips when a fetch is already in flight, while a
// forced Refresh after a mutation blocks on the same mutex, so it always
// runs after the mutation's success response and after any fetch that
// started before it. Either way at most one fetch is in flight at a time.
type Poller struct {
	API      feedback.Client
	Session  *Session
	Interval time.Duration
	Logger   zerolog.Logger

	fetchMu sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
}

// Start fetches once immediately, then on every interval tick until the
// context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	interval := p.Interval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go p.loop(runCtx, interval)
}

func (p *Poller) loop(ctx context.Context, interval time.Duration) {
	defer close(p.done)

	p.Session.SetLoading(true)
	if err := p.Refresh(ctx); err != nil {
		p.Logger.Warn().Err(err).Msg("initial snapshot fetch failed")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if !p.fetchMu.TryLock() {
				p.Logger.Debug().Msg("fetch still in flight, tick skipped")
				continue
			}
			err := p.refreshLocked(ctx)
			p.fetchMu.Unlock()
			if err != nil {
				p.Logger.Warn().Err(err).Msg("snapshot refresh failed")
			}
		case <-ctx.Done():
			return
		}
	}
}

// Refresh performs one snapshot fetch, waiting for any in-flight fetch to
// finish first. Mutation follow-ups go through here.
func (p *Poller) Refresh(ctx context.Context) error {
	p.fetchMu.Lock()
	defer p.fetchMu.Unlock()
	return p.refreshLocked(ctx)
}

func (p *Poller) refreshLocked(ctx context.Context) error {
	snap, err := p.API.FetchSnapshot(ctx)
	if err != nil {
		p.Session.MarkFetchFailed(err)
		return err
	}
	p.Session.ApplySnapshot(snap)
	return nil
}

// Stop cancels the poll loop and waits for it to exit, so no fetch callback
// can fire into a torn-down console.
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}
