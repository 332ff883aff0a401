package summary

import (
	"time"

	"github.com/shopspring/decimal"
	"money-tracker-go/internal/domain/ledger"
)

var hundred = decimal.NewFromInt(100)

type BudgetStatus struct {
	Budget    ledger.Budget   `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Progress  decimal.Decimal `json:"progress"`
	Remaining decimal.Decimal `json:"remaining"`
	IsOver    bool            `json:"is_over"`
}

// BudgetConsumption sums spendings of the budget's category (exact,
// case-sensitive) in the year of now, and additionally in the month of now
// for monthly budgets.
func BudgetConsumption(budget ledger.Budget, spendings []ledger.Spending, now time.Time) BudgetStatus {
	spent := decimal.Zero
	for _, spending := range spendings {
		if spending.Category != budget.Category {
			continue
		}
		if spending.Date.Year() != now.Year() {
			continue
		}
		if budget.Period == ledger.BudgetPeriodMonthly && spending.Date.Month() != now.Month() {
			continue
		}
		spent = spent.Add(spending.Amount)
	}

	status := BudgetStatus{
		Budget:    budget,
		Spent:     spent,
		Progress:  decimal.Zero,
		Remaining: decimal.Max(decimal.Zero, budget.Amount.Sub(spent)),
		IsOver:    spent.GreaterThan(budget.Amount),
	}
	if budget.Amount.IsPositive() {
		status.Progress = spent.Div(budget.Amount).Mul(hundred)
	}
	return status
}

func BudgetStatuses(state ledger.State, now time.Time) []BudgetStatus {
	result := make([]BudgetStatus, 0, len(state.Budgets))
	for _, budget := range state.Budgets {
		result = append(result, BudgetConsumption(budget, state.Spendings, now))
	}
	return result
}
