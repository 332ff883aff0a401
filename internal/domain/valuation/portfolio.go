package valuation

import (
	"github.com/shopspring/decimal"
	"money-tracker-go/internal/domain/ledger"
)

type Holding struct {
	Asset ledger.Asset     `json:"asset"`
	Value decimal.Decimal  `json:"value"`
	Cost  *decimal.Decimal `json:"cost,omitempty"`
	PnL   *decimal.Decimal `json:"pnl,omitempty"`
}

type PortfolioView struct {
	Prices     Prices                               `json:"prices"`
	Holdings   []Holding                            `json:"holdings"`
	TotalValue decimal.Decimal                      `json:"total_value"`
	TotalCost  decimal.Decimal                      `json:"total_cost"`
	TotalPnL   decimal.Decimal                      `json:"total_pnl"`
	ByType     map[ledger.AssetType]decimal.Decimal `json:"by_type"`
}

// Portfolio values every asset. Cost and P&L totals only include assets with
// a purchase price.
func Portfolio(assets []ledger.Asset, prices Prices) PortfolioView {
	view := PortfolioView{
		Prices:     prices,
		Holdings:   make([]Holding, 0, len(assets)),
		TotalValue: decimal.Zero,
		TotalCost:  decimal.Zero,
		TotalPnL:   decimal.Zero,
		ByType:     make(map[ledger.AssetType]decimal.Decimal),
	}

	for _, asset := range assets {
		holding := Holding{Asset: asset, Value: Value(asset, prices)}
		if pnl, ok := UnrealizedPnL(asset, holding.Value); ok {
			cost := holding.Value.Sub(pnl)
			holding.Cost = &cost
			holding.PnL = &pnl
			view.TotalCost = view.TotalCost.Add(cost)
			view.TotalPnL = view.TotalPnL.Add(pnl)
		}
		view.TotalValue = view.TotalValue.Add(holding.Value)
		view.ByType[asset.Type] = view.ByType[asset.Type].Add(holding.Value)
		view.Holdings = append(view.Holdings, holding)
	}
	return view
}
