package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"money-tracker-go/internal/domain/prices"
	"money-tracker-go/pkg/logger"
)

type countingRefresher struct {
	calls int
	err   error
	ctxOK bool
}

func (r *countingRefresher) Refresh(ctx context.Context) (prices.Quote, error) {
	r.calls++
	_, r.ctxOK = ctx.Deadline()
	return prices.Quote{}, r.err
}

func TestEmptyScheduleDisablesRefresh(t *testing.T) {
	job, err := NewPriceRefresh("  ", &countingRefresher{}, time.Second, logger.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if job != nil {
		t.Fatalf("expected nil job for empty schedule")
	}

	job.Start()
	job.Stop(context.Background())
}

func TestInvalidScheduleIsRejected(t *testing.T) {
	if _, err := NewPriceRefresh("every tuesday", &countingRefresher{}, time.Second, logger.NewNop()); err == nil {
		t.Fatalf("expected invalid schedule error")
	}
}

func TestRunRefreshesWithTimeout(t *testing.T) {
	refresher := &countingRefresher{err: errors.New("gold feed down")}
	job, err := NewPriceRefresh("@every 1h", refresher, time.Second, logger.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	job.Run()

	if refresher.calls != 1 {
		t.Fatalf("expected 1 refresh, got %d", refresher.calls)
	}
	if !refresher.ctxOK {
		t.Fatalf("expected refresh context to carry a deadline")
	}
}

func TestStartAndStop(t *testing.T) {
	job, err := NewPriceRefresh("*/5 * * * *", &countingRefresher{}, 0, logger.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	job.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	job.Stop(ctx)
}
