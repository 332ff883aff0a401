package valuation

import (
	"strings"

	"github.com/shopspring/decimal"
	"money-tracker-go/internal/domain/ledger"
)

// Prices are spot prices in the local currency.
type Prices struct {
	BTC         decimal.Decimal `json:"btc"`
	GoldPerBaht decimal.Decimal `json:"gold_per_baht"`
}

var gramsPerBaht = decimal.RequireFromString("15.24")

// goldUnitDivisor is how many of the unit make one baht-weight.
func goldUnitDivisor(unit string) decimal.Decimal {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "salung", "สลึง":
		return decimal.NewFromInt(4)
	case "satang", "สตางค์":
		return decimal.NewFromInt(100)
	case "gram", "grams", "g", "กรัม":
		return gramsPerBaht
	default:
		return decimal.NewFromInt(1)
	}
}

// GoldUnitFactor converts one unit of gold weight into baht-weight.
// Unknown units are treated as baht.
func GoldUnitFactor(unit string) decimal.Decimal {
	return decimal.NewFromInt(1).Div(goldUnitDivisor(unit))
}

// Value is the current worth of an asset. Bitcoin and gold use live prices;
// every other type falls back to quantity times purchase price.
func Value(asset ledger.Asset, prices Prices) decimal.Decimal {
	switch asset.Type {
	case ledger.AssetTypeBitcoin:
		return asset.Quantity.Mul(prices.BTC)
	case ledger.AssetTypeGold:
		return asset.Quantity.Mul(GoldUnitFactor(asset.Unit)).Mul(prices.GoldPerBaht)
	default:
		if asset.PurchasePrice == nil {
			return decimal.Zero
		}
		return asset.Quantity.Mul(*asset.PurchasePrice)
	}
}

// Cost is quantity times purchase price, absent when no purchase price is set.
func Cost(asset ledger.Asset) (decimal.Decimal, bool) {
	if asset.PurchasePrice == nil {
		return decimal.Zero, false
	}
	return asset.Quantity.Mul(*asset.PurchasePrice), true
}

// UnrealizedPnL is value minus cost, absent when no purchase price is set.
func UnrealizedPnL(asset ledger.Asset, value decimal.Decimal) (decimal.Decimal, bool) {
	cost, ok := Cost(asset)
	if !ok {
		return decimal.Zero, false
	}
	return value.Sub(cost), true
}
