package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"money-tracker-go/internal/domain/prices"
	"money-tracker-go/pkg/logger"
)

type Refresher interface {
	Refresh(ctx context.Context) (prices.Quote, error)
}

// PriceRefresh refreshes spot prices on a cron schedule.
type PriceRefresh struct {
	cron      *cron.Cron
	refresher Refresher
	timeout   time.Duration
	log       logger.Logger
}

// NewPriceRefresh returns nil when schedule is empty. Standard five-field
// specs and descriptors like "@every 15m" are accepted.
func NewPriceRefresh(schedule string, refresher Refresher, timeout time.Duration, log logger.Logger) (*PriceRefresh, error) {
	schedule = strings.TrimSpace(schedule)
	if schedule == "" {
		return nil, nil
	}

	job := &PriceRefresh{
		cron:      cron.New(),
		refresher: refresher,
		timeout:   timeout,
		log:       log,
	}
	if _, err := job.cron.AddFunc(schedule, job.Run); err != nil {
		return nil, fmt.Errorf("invalid price refresh schedule %q: %w", schedule, err)
	}
	return job, nil
}

func (p *PriceRefresh) Start() {
	if p == nil {
		return
	}
	p.cron.Start()
	p.log.Info("scheduler.start: price refresh scheduled", "entries", len(p.cron.Entries()))
}

// Stop waits for a running refresh to finish or ctx to expire.
func (p *PriceRefresh) Stop(ctx context.Context) {
	if p == nil {
		return
	}
	select {
	case <-p.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (p *PriceRefresh) Run() {
	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	quote, err := p.refresher.Refresh(ctx)
	if err != nil {
		p.log.Warn("scheduler.refresh: price refresh incomplete", "error", err)
		return
	}
	p.log.Debug("scheduler.refresh: prices refreshed", "btc", quote.BTC.String(), "gold_per_baht", quote.GoldPerBaht.String())
}
