package summary

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"money-tracker-go/internal/domain/ledger"
)

type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
	Share    decimal.Decimal `json:"share"`
}

func CategoryBreakdown(state ledger.State, year int, month time.Month) []CategoryTotal {
	start := monthStart(year, month)

	index := make(map[string]int)
	rows := make([]CategoryTotal, 0)
	grand := decimal.Zero
	for _, spending := range state.Spendings {
		if !sameMonth(spending.Date, start) {
			continue
		}
		i, ok := index[spending.Category]
		if !ok {
			i = len(rows)
			index[spending.Category] = i
			rows = append(rows, CategoryTotal{Category: spending.Category, Total: decimal.Zero})
		}
		rows[i].Total = rows[i].Total.Add(spending.Amount)
		rows[i].Count++
		grand = grand.Add(spending.Amount)
	}

	for i := range rows {
		rows[i].Share = decimal.Zero
		if grand.IsPositive() {
			rows[i].Share = rows[i].Total.Div(grand).Mul(hundred).Round(2)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Total.Equal(rows[j].Total) {
			return rows[i].Total.GreaterThan(rows[j].Total)
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}
