package prices

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"money-tracker-go/internal/domain/valuation"
)

// BahtWeightGrams and TroyOunceGrams convert the USD per ounce gold quote into
// a price per baht-weight.
var (
	BahtWeightGrams = decimal.RequireFromString("15.24")
	TroyOunceGrams  = decimal.RequireFromString("31.1034768")
)

// Quote is the last known set of spot prices. Zero means never fetched.
type Quote struct {
	BTC             decimal.Decimal `json:"btc"`
	GoldUSDPerOunce decimal.Decimal `json:"gold_usd_per_ounce"`
	USDRate         decimal.Decimal `json:"usd_rate"`
	GoldPerBaht     decimal.Decimal `json:"gold_per_baht"`
	Currency        string          `json:"currency"`
	FetchedAt       time.Time       `json:"fetched_at"`
}

func (q Quote) Valuation() valuation.Prices {
	return valuation.Prices{BTC: q.BTC, GoldPerBaht: q.GoldPerBaht}
}

// GoldPerBaht converts a USD per troy ounce quote into local currency per
// baht-weight. Returns zero until both inputs are known.
func GoldPerBaht(usdPerOunce, usdRate decimal.Decimal) decimal.Decimal {
	if !usdPerOunce.IsPositive() || !usdRate.IsPositive() {
		return decimal.Zero
	}
	return usdPerOunce.Mul(usdRate).Mul(BahtWeightGrams).Div(TroyOunceGrams)
}

type BTCFeed interface {
	BTCPrice(ctx context.Context) (decimal.Decimal, error)
}

type GoldFeed interface {
	GoldUSDPerOunce(ctx context.Context) (decimal.Decimal, error)
}

type FXFeed interface {
	USDRate(ctx context.Context) (decimal.Decimal, error)
}
