package summary

import (
	"time"

	"github.com/shopspring/decimal"
	"money-tracker-go/internal/domain/ledger"
)

type DayBalance struct {
	Date           time.Time       `json:"date"`
	Income         decimal.Decimal `json:"income"`
	Expense        decimal.Decimal `json:"expense"`
	Net            decimal.Decimal `json:"net"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

type CalendarMonth struct {
	Year            int             `json:"year"`
	Month           time.Month      `json:"month"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	EndingBalance   decimal.Decimal `json:"ending_balance"`
	Days            []DayBalance    `json:"days"`
}

type MonthBalance struct {
	Month          time.Month      `json:"month"`
	Income         decimal.Decimal `json:"income"`
	Expense        decimal.Decimal `json:"expense"`
	Net            decimal.Decimal `json:"net"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

type YearBalanceResult struct {
	Year            int             `json:"year"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	EndingBalance   decimal.Decimal `json:"ending_balance"`
	Months          []MonthBalance  `json:"months"`
}

// CalendarBalance carries over everything before the month start, then
// accumulates the net of each day of the month in date order.
func CalendarBalance(state ledger.State, year int, month time.Month) CalendarMonth {
	start := monthStart(year, month)
	daysInMonth := start.AddDate(0, 1, -1).Day()

	days := make([]DayBalance, daysInMonth)
	for i := range days {
		days[i] = DayBalance{
			Date:    start.AddDate(0, 0, i),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}

	for _, income := range state.Incomes {
		date := ledger.CivilDate(income.Date)
		if sameMonth(date, start) {
			day := &days[date.Day()-1]
			day.Income = day.Income.Add(income.Amount)
		}
	}
	for _, spending := range state.Spendings {
		date := ledger.CivilDate(spending.Date)
		if sameMonth(date, start) {
			day := &days[date.Day()-1]
			day.Expense = day.Expense.Add(spending.Amount)
		}
	}

	previous := balanceBefore(state, start)
	running := previous
	for i := range days {
		days[i].Net = days[i].Income.Sub(days[i].Expense)
		running = running.Add(days[i].Net)
		days[i].RunningBalance = running
	}

	return CalendarMonth{
		Year:            year,
		Month:           month,
		PreviousBalance: previous,
		EndingBalance:   running,
		Days:            days,
	}
}

// YearBalance is CalendarBalance at month granularity for a whole year.
func YearBalance(state ledger.State, year int) YearBalanceResult {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

	months := make([]MonthBalance, 12)
	for i := range months {
		months[i] = MonthBalance{Month: time.Month(i + 1), Income: decimal.Zero, Expense: decimal.Zero}
	}

	for _, income := range state.Incomes {
		if income.Date.Year() == year {
			m := &months[income.Date.Month()-1]
			m.Income = m.Income.Add(income.Amount)
		}
	}
	for _, spending := range state.Spendings {
		if spending.Date.Year() == year {
			m := &months[spending.Date.Month()-1]
			m.Expense = m.Expense.Add(spending.Amount)
		}
	}

	previous := balanceBefore(state, start)
	running := previous
	for i := range months {
		months[i].Net = months[i].Income.Sub(months[i].Expense)
		running = running.Add(months[i].Net)
		months[i].RunningBalance = running
	}

	return YearBalanceResult{
		Year:            year,
		PreviousBalance: previous,
		EndingBalance:   running,
		Months:          months,
	}
}
