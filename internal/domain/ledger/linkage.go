package ledger

import "github.com/shopspring/decimal"

// MissingLinkPolicy decides what happens when an obligation payment
// references an obligation that is not in the store.
type MissingLinkPolicy int

const (
	// IgnoreMissingLink stores the spending with a dangling link and leaves
	// obligations untouched.
	IgnoreMissingLink MissingLinkPolicy = iota
	// RejectMissingLink fails the action with ErrObligationNotFound.
	RejectMissingLink
)

// UpdatePolicy decides whether editing a spending re-runs obligation linkage.
type UpdatePolicy int

const (
	// RelinkOnUpdate reverses the old payment and applies the new one.
	RelinkOnUpdate UpdatePolicy = iota
	// KeepLinkOnUpdate replaces the spending and never touches obligations.
	KeepLinkOnUpdate
)

type linkDirection int

const (
	applyPayment   linkDirection = 1
	reversePayment linkDirection = -1
)

// adjustObligation applies or reverses one payment against obligation id.
// It returns a new slice when the obligation exists and the input slice
// unchanged otherwise.
func adjustObligation(obligations []Obligation, id string, amount decimal.Decimal, direction linkDirection) ([]Obligation, bool) {
	idx := indexOf(obligations, id, obligationID)
	if idx < 0 {
		return obligations, false
	}

	obligation := obligations[idx]
	if obligation.Balance != nil {
		var balance decimal.Decimal
		if direction == applyPayment {
			balance = obligation.Balance.Sub(amount)
		} else {
			balance = obligation.Balance.Add(amount)
		}
		obligation.Balance = &balance
	}

	if obligation.Type == ObligationTypeInstallment && obligation.PaidMonths != nil {
		paid := *obligation.PaidMonths + int(direction)
		if paid < 0 {
			paid = 0
		}
		obligation.PaidMonths = &paid
	}

	return replaceAt(obligations, idx, obligation), true
}

func linkedID(spending Spending) string {
	if spending.LinkedObligationID == nil {
		return ""
	}
	return *spending.LinkedObligationID
}
