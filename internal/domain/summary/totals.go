package summary

import (
	"time"

	"github.com/shopspring/decimal"
	"money-tracker-go/internal/domain/ledger"
)

type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Spending decimal.Decimal `json:"spending"`
	Net      decimal.Decimal `json:"net"`
}

// RangeTotals sums incomes and spendings dated within [from, to], both ends
// inclusive and compared as civil dates.
func RangeTotals(state ledger.State, from, to time.Time) Totals {
	from = ledger.CivilDate(from)
	to = ledger.CivilDate(to)
	within := func(date time.Time) bool {
		date = ledger.CivilDate(date)
		return !date.Before(from) && !date.After(to)
	}

	totals := Totals{}
	for _, income := range state.Incomes {
		if within(income.Date) {
			totals.Income = totals.Income.Add(income.Amount)
		}
	}
	for _, spending := range state.Spendings {
		if within(spending.Date) {
			totals.Spending = totals.Spending.Add(spending.Amount)
		}
	}
	totals.Net = totals.Income.Sub(totals.Spending)
	return totals
}

func MonthTotals(state ledger.State, year int, month time.Month) Totals {
	start := monthStart(year, month)
	return RangeTotals(state, start, start.AddDate(0, 1, -1))
}

func YearTotals(state ledger.State, year int) Totals {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return RangeTotals(state, start, start.AddDate(1, 0, -1))
}

// balanceBefore is all income minus all spending dated strictly before cutoff.
func balanceBefore(state ledger.State, cutoff time.Time) decimal.Decimal {
	cutoff = ledger.CivilDate(cutoff)
	balance := decimal.Zero
	for _, income := range state.Incomes {
		if ledger.CivilDate(income.Date).Before(cutoff) {
			balance = balance.Add(income.Amount)
		}
	}
	for _, spending := range state.Spendings {
		if ledger.CivilDate(spending.Date).Before(cutoff) {
			balance = balance.Sub(spending.Amount)
		}
	}
	return balance
}

func monthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
