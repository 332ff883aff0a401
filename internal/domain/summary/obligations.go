package summary

import (
	"time"

	"github.com/shopspring/decimal"
	"money-tracker-go/internal/domain/ledger"
)

type ObligationView struct {
	Obligation      ledger.Obligation `json:"obligation"`
	PaidMonths      int               `json:"paid_months"`
	TotalMonths     int               `json:"total_months"`
	RemainingMonths int               `json:"remaining_months"`
	Percent         decimal.Decimal   `json:"percent"`
	PayoffDate      *time.Time        `json:"payoff_date,omitempty"`
	Utilization     *decimal.Decimal  `json:"utilization,omitempty"`
	PaymentCount    int               `json:"payment_count"`
	PaidAmount      decimal.Decimal   `json:"paid_amount"`
}

type ObligationsOverview struct {
	MonthlyCommitment decimal.Decimal  `json:"monthly_commitment"`
	OutstandingTotal  decimal.Decimal  `json:"outstanding_total"`
	Items             []ObligationView `json:"items"`
}

// ObligationProgress derives payoff progress from the obligation counters and
// the spendings linked to it.
func ObligationProgress(obligation ledger.Obligation, spendings []ledger.Spending) ObligationView {
	view := ObligationView{
		Obligation: obligation,
		Percent:    decimal.Zero,
		PaidAmount: decimal.Zero,
	}
	if obligation.PaidMonths != nil {
		view.PaidMonths = *obligation.PaidMonths
	}
	if obligation.TotalMonths != nil {
		view.TotalMonths = *obligation.TotalMonths
		view.RemainingMonths = max(0, view.TotalMonths-view.PaidMonths)
		if view.TotalMonths > 0 {
			view.Percent = decimal.NewFromInt(int64(view.PaidMonths)).
				Div(decimal.NewFromInt(int64(view.TotalMonths))).
				Mul(hundred)
		}
		if obligation.StartDate != nil {
			payoff := ledger.CivilDate(*obligation.StartDate).AddDate(0, view.TotalMonths, 0)
			view.PayoffDate = &payoff
		}
	}

	if obligation.Type == ledger.ObligationTypeCreditCard &&
		obligation.Balance != nil && obligation.CreditLimit != nil && obligation.CreditLimit.IsPositive() {
		utilization := obligation.Balance.Div(*obligation.CreditLimit).Mul(hundred)
		view.Utilization = &utilization
	}

	for _, spending := range spendings {
		if !spending.IsObligationPayment() || *spending.LinkedObligationID != obligation.ID {
			continue
		}
		view.PaymentCount++
		view.PaidAmount = view.PaidAmount.Add(spending.Amount)
	}

	return view
}

// Obligations summarizes every obligation; only active ones count towards
// the monthly commitment and outstanding totals.
func Obligations(state ledger.State) ObligationsOverview {
	overview := ObligationsOverview{
		MonthlyCommitment: decimal.Zero,
		OutstandingTotal:  decimal.Zero,
		Items:             make([]ObligationView, 0, len(state.Obligations)),
	}
	for _, obligation := range state.Obligations {
		overview.Items = append(overview.Items, ObligationProgress(obligation, state.Spendings))
		if obligation.Status != ledger.ObligationStatusActive {
			continue
		}
		overview.MonthlyCommitment = overview.MonthlyCommitment.Add(obligation.Amount)
		if obligation.Balance != nil {
			overview.OutstandingTotal = overview.OutstandingTotal.Add(*obligation.Balance)
		}
	}
	return overview
}
