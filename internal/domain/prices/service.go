package prices

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"money-tracker-go/pkg/logger"
)

type Service struct {
	btc      BTCFeed
	gold     GoldFeed
	fx       FXFeed
	currency string
	log      logger.Logger

	mu    sync.RWMutex
	quote Quote
	now   func() time.Time
}

func NewService(btc BTCFeed, gold GoldFeed, fx FXFeed, currency string, log logger.Logger) *Service {
	return &Service{
		btc:      btc,
		gold:     gold,
		fx:       fx,
		currency: currency,
		log:      log,
		quote:    Quote{Currency: currency},
		now:      time.Now,
	}
}

func (s *Service) Current() Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quote
}

// Refresh fetches every feed concurrently. A failed feed keeps its previous
// value; the successful ones are stored and the failures are returned joined.
func (s *Service) Refresh(ctx context.Context) (Quote, error) {
	var (
		btc, goldUSD, usdRate  decimal.Decimal
		btcErr, goldErr, fxErr error
	)

	// each feed keeps its own error; one failure never cancels the others
	var group errgroup.Group
	group.Go(func() error {
		btc, btcErr = s.btc.BTCPrice(ctx)
		return nil
	})
	group.Go(func() error {
		goldUSD, goldErr = s.gold.GoldUSDPerOunce(ctx)
		return nil
	})
	group.Go(func() error {
		usdRate, fxErr = s.fx.USDRate(ctx)
		return nil
	})
	_ = group.Wait()

	s.mu.Lock()
	quote := s.quote
	fetched := false
	if btcErr == nil {
		quote.BTC = btc
		fetched = true
	}
	if goldErr == nil {
		quote.GoldUSDPerOunce = goldUSD
		fetched = true
	}
	if fxErr == nil {
		quote.USDRate = usdRate
		fetched = true
	}
	quote.GoldPerBaht = GoldPerBaht(quote.GoldUSDPerOunce, quote.USDRate)
	if fetched {
		quote.FetchedAt = s.now().UTC()
	}
	s.quote = quote
	s.mu.Unlock()

	var errs []error
	if btcErr != nil {
		s.log.Warn("prices.refresh: btc feed failed", "error", btcErr)
		errs = append(errs, fmt.Errorf("btc feed: %w", btcErr))
	}
	if goldErr != nil {
		s.log.Warn("prices.refresh: gold feed failed", "error", goldErr)
		errs = append(errs, fmt.Errorf("gold feed: %w", goldErr))
	}
	if fxErr != nil {
		s.log.Warn("prices.refresh: fx feed failed", "error", fxErr)
		errs = append(errs, fmt.Errorf("fx feed: %w", fxErr))
	}
	if len(errs) > 0 {
		return quote, errors.Join(errs...)
	}

	s.log.Info("prices refreshed", "btc", quote.BTC.String(), "gold_per_baht", quote.GoldPerBaht.StringFixed(2))
	return quote, nil
}
