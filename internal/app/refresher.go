package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultRefreshInterval is how often the store re-reads the backend when
// no interval is configured.
const DefaultRefreshInterval = 30 * time.Second

// Refresher periodically refreshes the store from the backend so customer
// edits made through other channels eventually show up. Ticks that land
// while the store is busy are skipped, not queued; Store.Refresh does the
// actual skipping.
type Refresher struct {
	store    *Store
	logger   *slog.Logger
	interval time.Duration
	cron     *cron.Cron
}

// RefresherConfig contains configuration for the refresher.
type RefresherConfig struct {
	Store  *Store
	Logger *slog.Logger

	// Interval between refreshes. Zero means DefaultRefreshInterval.
	Interval time.Duration
}

// NewRefresher creates a refresher. Panics if Store is nil.
func NewRefresher(cfg RefresherConfig) *Refresher {
	if cfg.Store == nil {
		panic("Refresher: Store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	return &Refresher{
		store:    cfg.Store,
		logger:   logger,
		interval: interval,
	}
}

// Start schedules the periodic refresh. The ctx bounds each refresh call,
// not the schedule; use Stop to halt the schedule.
func (r *Refresher) Start(ctx context.Context) error {
	if r.cron != nil {
		return fmt.Errorf("refresher already started")
	}

	c := cron.New()

	spec := fmt.Sprintf("@every %s", r.interval)
	if _, err := c.AddFunc(spec, func() {
		refreshCtx, cancel := context.WithTimeout(ctx, r.interval)
		defer cancel()

		// Errors are already logged by the store; a background refresh
		// has no one else to tell.
		_ = r.store.Refresh(refreshCtx)
	}); err != nil {
		return fmt.Errorf("scheduling refresh: %w", err)
	}

	c.Start()
	r.cron = c

	r.logger.Info("background refresh started", slog.Duration("interval", r.interval))

	return nil
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	if r.cron == nil {
		return
	}

	<-r.cron.Stop().Done()
	r.cron = nil

	r.logger.Info("background refresh stopped")
}
