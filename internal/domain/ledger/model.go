package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyYearly    Frequency = "yearly"
	FrequencyOneTime   Frequency = "one-time"
	FrequencyIrregular Frequency = "irregular"
)

type SpendingKind string

const (
	SpendingKindNormal            SpendingKind = "normal"
	SpendingKindObligationPayment SpendingKind = "obligation-payment"
)

type ObligationType string

const (
	ObligationTypeInstallment  ObligationType = "installment"
	ObligationTypeCreditCard   ObligationType = "credit-card"
	ObligationTypePersonalLoan ObligationType = "personal-loan"
	ObligationTypeCarLoan      ObligationType = "car-loan"
	ObligationTypeHomeLoan     ObligationType = "home-loan"
	ObligationTypeOther        ObligationType = "other"
)

type ObligationStatus string

const (
	ObligationStatusActive ObligationStatus = "active"
	ObligationStatusClosed ObligationStatus = "closed"
)

type AssetType string

const (
	AssetTypeGold       AssetType = "gold"
	AssetTypeBitcoin    AssetType = "bitcoin"
	AssetTypeStock      AssetType = "stock"
	AssetTypeFund       AssetType = "fund"
	AssetTypeRealEstate AssetType = "real-estate"
	AssetTypeOther      AssetType = "other"
)

type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

type Income struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Frequency Frequency       `json:"frequency"`
	Date      time.Time       `json:"date"`
	CreatedAt time.Time       `json:"created_at"`
}

type Spending struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Amount             decimal.Decimal `json:"amount"`
	Category           string          `json:"category"`
	Date               time.Time       `json:"date"`
	Kind               SpendingKind    `json:"kind"`
	LinkedObligationID *string         `json:"linked_obligation_id,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
}

// IsObligationPayment reports whether the spending carries a usable obligation link.
func (s Spending) IsObligationPayment() bool {
	return s.Kind == SpendingKindObligationPayment && s.LinkedObligationID != nil && *s.LinkedObligationID != ""
}

type Obligation struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Type         ObligationType   `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
	Balance      *decimal.Decimal `json:"balance,omitempty"`
	CreditLimit  *decimal.Decimal `json:"credit_limit,omitempty"`
	InterestRate *decimal.Decimal `json:"interest_rate,omitempty"`
	TotalMonths  *int             `json:"total_months,omitempty"`
	PaidMonths   *int             `json:"paid_months,omitempty"`
	StartDate    *time.Time       `json:"start_date,omitempty"`
	Status       ObligationStatus `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
}

type Asset struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Type          AssetType        `json:"type"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Unit          string           `json:"unit"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

type Budget struct {
	ID       string          `json:"id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Period   BudgetPeriod    `json:"period"`
}

// State is the complete record store of one profile. Values are treated as
// immutable: the reducer never mutates a State it receives.
type State struct {
	Incomes     []Income     `json:"incomes"`
	Spendings   []Spending   `json:"spendings"`
	Obligations []Obligation `json:"obligations"`
	Assets      []Asset      `json:"assets"`
	Budgets     []Budget     `json:"budgets"`
}

func NewState() State {
	return State{
		Incomes:     []Income{},
		Spendings:   []Spending{},
		Obligations: []Obligation{},
		Assets:      []Asset{},
		Budgets:     []Budget{},
	}
}

// Normalize replaces nil collections with empty ones.
func (s State) Normalize() State {
	if s.Incomes == nil {
		s.Incomes = []Income{}
	}
	if s.Spendings == nil {
		s.Spendings = []Spending{}
	}
	if s.Obligations == nil {
		s.Obligations = []Obligation{}
	}
	if s.Assets == nil {
		s.Assets = []Asset{}
	}
	if s.Budgets == nil {
		s.Budgets = []Budget{}
	}
	return s
}

// CivilDate truncates t to midnight UTC of its calendar day.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
