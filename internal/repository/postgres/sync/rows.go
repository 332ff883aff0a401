package sync

import (
	"time"

	"github.com/shopspring/decimal"
	"money-tracker-go/internal/domain/ledger"
)

type incomeRow struct {
	ProfileID string          `gorm:"type:uuid;primaryKey"`
	ID        string          `gorm:"primaryKey"`
	Name      string          `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null"`
	Category  string
	Frequency string    `gorm:"not null"`
	Date      time.Time `gorm:"type:date;not null"`
	CreatedAt time.Time
}

func (incomeRow) TableName() string { return "incomes" }

type spendingRow struct {
	ProfileID          string          `gorm:"type:uuid;primaryKey"`
	ID                 string          `gorm:"primaryKey"`
	Name               string          `gorm:"not null"`
	Amount             decimal.Decimal `gorm:"type:numeric;not null"`
	Category           string
	Date               time.Time `gorm:"type:date;not null"`
	Kind               string    `gorm:"not null"`
	LinkedObligationID *string   `gorm:"column:linked_obligation_id"`
	CreatedAt          time.Time
}

func (spendingRow) TableName() string { return "spendings" }

type obligationRow struct {
	ProfileID    string              `gorm:"type:uuid;primaryKey"`
	ID           string              `gorm:"primaryKey"`
	Name         string              `gorm:"not null"`
	Type         string              `gorm:"not null"`
	Amount       decimal.Decimal     `gorm:"type:numeric;not null"`
	Balance      decimal.NullDecimal `gorm:"type:numeric"`
	CreditLimit  decimal.NullDecimal `gorm:"type:numeric"`
	InterestRate decimal.NullDecimal `gorm:"type:numeric"`
	TotalMonths  *int
	PaidMonths   *int
	StartDate    *time.Time `gorm:"type:date"`
	Status       string     `gorm:"not null"`
	CreatedAt    time.Time
}

func (obligationRow) TableName() string { return "obligations" }

type assetRow struct {
	ProfileID     string              `gorm:"type:uuid;primaryKey"`
	ID            string              `gorm:"primaryKey"`
	Name          string              `gorm:"not null"`
	Type          string              `gorm:"not null"`
	Quantity      decimal.Decimal     `gorm:"type:numeric;not null"`
	PurchasePrice decimal.NullDecimal `gorm:"type:numeric"`
	Unit          string
	CreatedAt     time.Time
}

func (assetRow) TableName() string { return "assets" }

func toNull(value *decimal.Decimal) decimal.NullDecimal {
	if value == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*value)
}

func fromNull(value decimal.NullDecimal) *decimal.Decimal {
	if !value.Valid {
		return nil
	}
	v := value.Decimal
	return &v
}

func civil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := ledger.CivilDate(*t)
	return &v
}

func newIncomeRow(profileID string, income ledger.Income) incomeRow {
	return incomeRow{
		ID:        income.ID,
		ProfileID: profileID,
		Name:      income.Name,
		Amount:    income.Amount,
		Category:  income.Category,
		Frequency: string(income.Frequency),
		Date:      ledger.CivilDate(income.Date),
		CreatedAt: income.CreatedAt,
	}
}

func (r incomeRow) toDomain() ledger.Income {
	return ledger.Income{
		ID:        r.ID,
		Name:      r.Name,
		Amount:    r.Amount,
		Category:  r.Category,
		Frequency: ledger.Frequency(r.Frequency),
		Date:      ledger.CivilDate(r.Date),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

func newSpendingRow(profileID string, spending ledger.Spending) spendingRow {
	return spendingRow{
		ID:                 spending.ID,
		ProfileID:          profileID,
		Name:               spending.Name,
		Amount:             spending.Amount,
		Category:           spending.Category,
		Date:               ledger.CivilDate(spending.Date),
		Kind:               string(spending.Kind),
		LinkedObligationID: spending.LinkedObligationID,
		CreatedAt:          spending.CreatedAt,
	}
}

func (r spendingRow) toDomain() ledger.Spending {
	return ledger.Spending{
		ID:                 r.ID,
		Name:               r.Name,
		Amount:             r.Amount,
		Category:           r.Category,
		Date:               ledger.CivilDate(r.Date),
		Kind:               ledger.SpendingKind(r.Kind),
		LinkedObligationID: r.LinkedObligationID,
		CreatedAt:          r.CreatedAt.UTC(),
	}
}

func newObligationRow(profileID string, obligation ledger.Obligation) obligationRow {
	return obligationRow{
		ID:           obligation.ID,
		ProfileID:    profileID,
		Name:         obligation.Name,
		Type:         string(obligation.Type),
		Amount:       obligation.Amount,
		Balance:      toNull(obligation.Balance),
		CreditLimit:  toNull(obligation.CreditLimit),
		InterestRate: toNull(obligation.InterestRate),
		TotalMonths:  obligation.TotalMonths,
		PaidMonths:   obligation.PaidMonths,
		StartDate:    civil(obligation.StartDate),
		Status:       string(obligation.Status),
		CreatedAt:    obligation.CreatedAt,
	}
}

func (r obligationRow) toDomain() ledger.Obligation {
	return ledger.Obligation{
		ID:           r.ID,
		Name:         r.Name,
		Type:         ledger.ObligationType(r.Type),
		Amount:       r.Amount,
		Balance:      fromNull(r.Balance),
		CreditLimit:  fromNull(r.CreditLimit),
		InterestRate: fromNull(r.InterestRate),
		TotalMonths:  r.TotalMonths,
		PaidMonths:   r.PaidMonths,
		StartDate:    civil(r.StartDate),
		Status:       ledger.ObligationStatus(r.Status),
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

func newAssetRow(profileID string, asset ledger.Asset) assetRow {
	return assetRow{
		ID:            asset.ID,
		ProfileID:     profileID,
		Name:          asset.Name,
		Type:          string(asset.Type),
		Quantity:      asset.Quantity,
		Unit:          asset.Unit,
		PurchasePrice: toNull(asset.PurchasePrice),
		CreatedAt:     asset.CreatedAt,
	}
}

func (r assetRow) toDomain() ledger.Asset {
	return ledger.Asset{
		ID:            r.ID,
		Name:          r.Name,
		Type:          ledger.AssetType(r.Type),
		Quantity:      r.Quantity,
		Unit:          r.Unit,
		PurchasePrice: fromNull(r.PurchasePrice),
		CreatedAt:     r.CreatedAt.UTC(),
	}
}
