package valuation

import (
	"testing"

	"github.com/shopspring/decimal"
	"money-tracker-go/internal/domain/ledger"
)

func gold(quantity int64, unit string) ledger.Asset {
	return ledger.Asset{ID: unit, Name: "Gold", Type: ledger.AssetTypeGold, Quantity: decimal.NewFromInt(quantity), Unit: unit}
}

func TestFourSalungEqualsOneBaht(t *testing.T) {
	prices := Prices{GoldPerBaht: decimal.NewFromInt(45000)}

	salung := Value(gold(4, "salung"), prices)
	baht := Value(gold(1, "baht"), prices)

	if !salung.Equal(baht) {
		t.Fatalf("expected 4 salung (%s) to equal 1 baht (%s)", salung, baht)
	}
}

func TestGoldValueByUnit(t *testing.T) {
	prices := Prices{GoldPerBaht: decimal.NewFromInt(45000)}

	tests := []struct {
		unit string
		want string
	}{
		{unit: "baht", want: "90000"},
		{unit: "บาท", want: "90000"},
		{unit: " Baht ", want: "90000"},
		{unit: "สลึง", want: "22500"},
		{unit: "satang", want: "900"},
		{unit: "gram", want: "5905.51"},
		{unit: "กรัม", want: "5905.51"},
		{unit: "ounce", want: "90000"},
		{unit: "", want: "90000"},
	}

	for _, tt := range tests {
		got := Value(gold(2, tt.unit), prices).Round(2)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Fatalf("unit %q: expected %s, got %s", tt.unit, tt.want, got)
		}
	}
}

func TestGoldUnitFactor(t *testing.T) {
	if !GoldUnitFactor("salung").Equal(decimal.RequireFromString("0.25")) {
		t.Fatalf("expected salung factor 0.25, got %s", GoldUnitFactor("salung"))
	}
	if !GoldUnitFactor("unknown").Equal(decimal.NewFromInt(1)) {
		t.Fatalf("expected unknown unit factor 1, got %s", GoldUnitFactor("unknown"))
	}
}

func TestValueOfOtherAssetTypes(t *testing.T) {
	price := decimal.NewFromInt(150)
	prices := Prices{BTC: decimal.NewFromInt(2000000)}

	btc := ledger.Asset{Type: ledger.AssetTypeBitcoin, Quantity: decimal.RequireFromString("0.05")}
	if got := Value(btc, prices); !got.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("expected bitcoin value 100000, got %s", got)
	}

	stock := ledger.Asset{Type: ledger.AssetTypeStock, Quantity: decimal.NewFromInt(10), PurchasePrice: &price}
	if got := Value(stock, prices); !got.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected stock value 1500, got %s", got)
	}

	fund := ledger.Asset{Type: ledger.AssetTypeFund, Quantity: decimal.NewFromInt(10)}
	if got := Value(fund, prices); !got.IsZero() {
		t.Fatalf("expected fund without purchase price to be 0, got %s", got)
	}
}

func TestPortfolioTotals(t *testing.T) {
	cost := decimal.NewFromInt(40000)
	bar := gold(2, "baht")
	bar.PurchasePrice = &cost
	coin := ledger.Asset{Type: ledger.AssetTypeBitcoin, Quantity: decimal.NewFromInt(1)}

	view := Portfolio([]ledger.Asset{bar, coin}, Prices{BTC: decimal.NewFromInt(1000), GoldPerBaht: decimal.NewFromInt(45000)})

	if !view.TotalValue.Equal(decimal.NewFromInt(91000)) {
		t.Fatalf("expected total value 91000, got %s", view.TotalValue)
	}
	if !view.TotalCost.Equal(decimal.NewFromInt(80000)) {
		t.Fatalf("expected total cost 80000, got %s", view.TotalCost)
	}
	if !view.TotalPnL.Equal(decimal.NewFromInt(10000)) {
		t.Fatalf("expected pnl 10000, got %s", view.TotalPnL)
	}
	if view.Holdings[1].PnL != nil {
		t.Fatalf("expected no pnl for asset without purchase price")
	}
	if !view.ByType[ledger.AssetTypeGold].Equal(decimal.NewFromInt(90000)) {
		t.Fatalf("expected gold bucket 90000, got %s", view.ByType[ledger.AssetTypeGold])
	}
}

func TestUnrealizedPnL(t *testing.T) {
	price := decimal.NewFromInt(100)
	asset := ledger.Asset{Type: ledger.AssetTypeStock, Quantity: decimal.NewFromInt(3), PurchasePrice: &price}

	pnl, ok := UnrealizedPnL(asset, decimal.NewFromInt(360))
	if !ok || !pnl.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("expected pnl 60, got %s (ok=%v)", pnl, ok)
	}

	asset.PurchasePrice = nil
	if _, ok := UnrealizedPnL(asset, decimal.NewFromInt(360)); ok {
		t.Fatalf("expected no pnl without purchase price")
	}
}
