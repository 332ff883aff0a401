package ledger

import "strings"

func validateIncome(income Income) error {
	if strings.TrimSpace(income.ID) == "" {
		return invalid("id", "is required")
	}
	if strings.TrimSpace(income.Name) == "" {
		return invalid("name", "is required")
	}
	if !income.Amount.IsPositive() {
		return invalid("amount", "must be positive")
	}
	if income.Date.IsZero() {
		return invalid("date", "is required")
	}
	switch income.Frequency {
	case FrequencyMonthly, FrequencyYearly, FrequencyOneTime, FrequencyIrregular:
	default:
		return invalid("frequency", "must be monthly, yearly, one-time or irregular")
	}
	return nil
}

func validateSpending(spending Spending) error {
	if strings.TrimSpace(spending.ID) == "" {
		return invalid("id", "is required")
	}
	if strings.TrimSpace(spending.Name) == "" {
		return invalid("name", "is required")
	}
	if !spending.Amount.IsPositive() {
		return invalid("amount", "must be positive")
	}
	if spending.Date.IsZero() {
		return invalid("date", "is required")
	}
	switch spending.Kind {
	case SpendingKindNormal:
	case SpendingKindObligationPayment:
		if spending.LinkedObligationID == nil || strings.TrimSpace(*spending.LinkedObligationID) == "" {
			return invalid("linked_obligation_id", "is required for obligation payments")
		}
	default:
		return invalid("kind", "must be normal or obligation-payment")
	}
	return nil
}

func validateObligation(obligation Obligation) error {
	if strings.TrimSpace(obligation.ID) == "" {
		return invalid("id", "is required")
	}
	if strings.TrimSpace(obligation.Name) == "" {
		return invalid("name", "is required")
	}
	switch obligation.Type {
	case ObligationTypeInstallment, ObligationTypeCreditCard, ObligationTypePersonalLoan,
		ObligationTypeCarLoan, ObligationTypeHomeLoan, ObligationTypeOther:
	default:
		return invalid("type", "is not supported")
	}
	if obligation.Amount.IsNegative() {
		return invalid("amount", "must not be negative")
	}
	if obligation.TotalMonths != nil && *obligation.TotalMonths < 0 {
		return invalid("total_months", "must not be negative")
	}
	if obligation.PaidMonths != nil && *obligation.PaidMonths < 0 {
		return invalid("paid_months", "must not be negative")
	}
	switch obligation.Status {
	case ObligationStatusActive, ObligationStatusClosed:
	default:
		return invalid("status", "must be active or closed")
	}
	return nil
}

func validateAsset(asset Asset) error {
	if strings.TrimSpace(asset.ID) == "" {
		return invalid("id", "is required")
	}
	if strings.TrimSpace(asset.Name) == "" {
		return invalid("name", "is required")
	}
	switch asset.Type {
	case AssetTypeGold, AssetTypeBitcoin, AssetTypeStock, AssetTypeFund, AssetTypeRealEstate, AssetTypeOther:
	default:
		return invalid("type", "is not supported")
	}
	if asset.Quantity.IsNegative() {
		return invalid("quantity", "must not be negative")
	}
	if asset.PurchasePrice != nil && asset.PurchasePrice.IsNegative() {
		return invalid("purchase_price", "must not be negative")
	}
	return nil
}

func validateBudget(budget Budget) error {
	if strings.TrimSpace(budget.ID) == "" {
		return invalid("id", "is required")
	}
	if strings.TrimSpace(budget.Category) == "" {
		return invalid("category", "is required")
	}
	if !budget.Amount.IsPositive() {
		return invalid("amount", "must be positive")
	}
	switch budget.Period {
	case BudgetPeriodMonthly, BudgetPeriodYearly:
	default:
		return invalid("period", "must be monthly or yearly")
	}
	return nil
}

func normalizeObligation(obligation Obligation) Obligation {
	if obligation.Status == "" {
		obligation.Status = ObligationStatusActive
	}
	return obligation
}
