package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

var testDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func strPtr(v string) *string { return &v }

func installment(id string) Obligation {
	return Obligation{
		ID:          id,
		Name:        "Phone",
		Type:        ObligationTypeInstallment,
		Amount:      decimal.NewFromInt(4200),
		Balance:     decPtr(33600),
		TotalMonths: intPtr(10),
		PaidMonths:  intPtr(2),
		Status:      ObligationStatusActive,
	}
}

func payment(id, obligationID string, amount int64) Spending {
	return Spending{
		ID:                 id,
		Name:               "Phone installment",
		Amount:             decimal.NewFromInt(amount),
		Category:           "Debt",
		Date:               testDate,
		Kind:               SpendingKindObligationPayment,
		LinkedObligationID: strPtr(obligationID),
	}
}

func mustReduce(t *testing.T, r Reducer, state State, action Action) State {
	t.Helper()
	next, err := r.Reduce(state, action)
	if err != nil {
		t.Fatalf("%s: expected no error, got %v", action.Name(), err)
	}
	return next
}

func findObligation(state State, id string) (Obligation, bool) {
	idx := indexOf(state.Obligations, id, obligationID)
	if idx < 0 {
		return Obligation{}, false
	}
	return state.Obligations[idx], true
}

func assertObligation(t *testing.T, state State, id string, balance int64, paid int) {
	t.Helper()
	obligation, ok := findObligation(state, id)
	if !ok {
		t.Fatalf("expected obligation %s to exist", id)
	}
	if obligation.Balance == nil || !obligation.Balance.Equal(decimal.NewFromInt(balance)) {
		t.Fatalf("expected balance %d, got %v", balance, obligation.Balance)
	}
	if obligation.PaidMonths == nil || *obligation.PaidMonths != paid {
		t.Fatalf("expected paid months %d, got %v", paid, obligation.PaidMonths)
	}
}

func TestInstallmentPaymentAddThenDeleteRestoresObligation(t *testing.T) {
	r := NewReducer()
	state := mustReduce(t, r, NewState(), AddObligation{Obligation: installment("obl-1")})

	state = mustReduce(t, r, state, AddSpending{Spending: payment("sp-1", "obl-1", 4200)})
	assertObligation(t, state, "obl-1", 29400, 3)

	state = mustReduce(t, r, state, DeleteSpending{ID: "sp-1"})
	assertObligation(t, state, "obl-1", 33600, 2)
	if len(state.Spendings) != 0 {
		t.Fatalf("expected no spendings, got %d", len(state.Spendings))
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	r := NewReducer()
	before := mustReduce(t, r, NewState(), AddObligation{Obligation: installment("obl-1")})

	after := mustReduce(t, r, before, AddSpending{Spending: payment("sp-1", "obl-1", 4200)})

	assertObligation(t, before, "obl-1", 33600, 2)
	assertObligation(t, after, "obl-1", 29400, 3)
	if len(before.Spendings) != 0 {
		t.Fatalf("expected original state to keep 0 spendings, got %d", len(before.Spendings))
	}
}

func TestPaidMonthsFloorsAtZero(t *testing.T) {
	r := NewReducer()
	obligation := installment("obl-1")
	obligation.PaidMonths = intPtr(0)
	state := mustReduce(t, r, NewState(), AddObligation{Obligation: obligation})

	// Seeded directly, the way a remote pull lands records without linkage.
	state.Spendings = []Spending{payment("sp-1", "obl-1", 100)}

	state = mustReduce(t, r, state, DeleteSpending{ID: "sp-1"})
	assertObligation(t, state, "obl-1", 33700, 0)
}

func TestPaidMonthsHasNoUpperClamp(t *testing.T) {
	r := NewReducer()
	obligation := installment("obl-1")
	obligation.PaidMonths = intPtr(10)
	state := mustReduce(t, r, NewState(), AddObligation{Obligation: obligation})

	state = mustReduce(t, r, state, AddSpending{Spending: payment("sp-1", "obl-1", 4200)})
	assertObligation(t, state, "obl-1", 29400, 11)
}

func TestNonInstallmentPaymentOnlyTouchesBalance(t *testing.T) {
	r := NewReducer()
	card := Obligation{
		ID:          "card-1",
		Name:        "Visa",
		Type:        ObligationTypeCreditCard,
		Amount:      decimal.NewFromInt(1000),
		Balance:     decPtr(15000),
		CreditLimit: decPtr(50000),
		PaidMonths:  intPtr(4),
	}
	state := mustReduce(t, r, NewState(), AddObligation{Obligation: card})

	state = mustReduce(t, r, state, AddSpending{Spending: payment("sp-1", "card-1", 3000)})
	assertObligation(t, state, "card-1", 12000, 4)
}

func TestPaymentWithoutBalanceOnlyCountsMonths(t *testing.T) {
	r := NewReducer()
	obligation := installment("obl-1")
	obligation.Balance = nil
	state := mustReduce(t, r, NewState(), AddObligation{Obligation: obligation})

	state = mustReduce(t, r, state, AddSpending{Spending: payment("sp-1", "obl-1", 4200)})

	got, _ := findObligation(state, "obl-1")
	if got.Balance != nil {
		t.Fatalf("expected balance to stay undefined, got %v", got.Balance)
	}
	if *got.PaidMonths != 3 {
		t.Fatalf("expected paid months 3, got %d", *got.PaidMonths)
	}
}

func TestMissingLinkIgnoredByDefault(t *testing.T) {
	r := NewReducer()
	state := mustReduce(t, r, NewState(), AddObligation{Obligation: installment("obl-1")})

	state = mustReduce(t, r, state, AddSpending{Spending: payment("sp-1", "missing", 500)})

	if len(state.Spendings) != 1 {
		t.Fatalf("expected spending to be stored, got %d", len(state.Spendings))
	}
	if linkedID(state.Spendings[0]) != "missing" {
		t.Fatalf("expected dangling link to be kept, got %q", linkedID(state.Spendings[0]))
	}
	assertObligation(t, state, "obl-1", 33600, 2)
}

func TestMissingLinkRejectedWhenConfigured(t *testing.T) {
	r := NewReducer()
	r.MissingLink = RejectMissingLink
	state := mustReduce(t, r, NewState(), AddObligation{Obligation: installment("obl-1")})

	next, err := r.Reduce(state, AddSpending{Spending: payment("sp-1", "missing", 500)})
	if !errors.Is(err, ErrObligationNotFound) {
		t.Fatalf("expected ErrObligationNotFound, got %v", err)
	}
	if len(next.Spendings) != 0 {
		t.Fatalf("expected no spending stored, got %d", len(next.Spendings))
	}
}

func TestDeletedObligationLeavesDanglingLink(t *testing.T) {
	r := NewReducer()
	state := mustReduce(t, r, NewState(), AddObligation{Obligation: installment("obl-1")})
	state = mustReduce(t, r, state, AddSpending{Spending: payment("sp-1", "obl-1", 4200)})

	state = mustReduce(t, r, state, DeleteObligation{ID: "obl-1"})
	if len(state.Spendings) != 1 {
		t.Fatalf("expected spending to survive obligation delete, got %d", len(state.Spendings))
	}

	state = mustReduce(t, r, state, DeleteSpending{ID: "sp-1"})
	if len(state.Spendings) != 0 || len(state.Obligations) != 0 {
		t.Fatalf("expected empty store, got %d spendings %d obligations", len(state.Spendings), len(state.Obligations))
	}
}

func TestUpdateSpendingRelinksByDefault(t *testing.T) {
	r := NewReducer()
	state := mustReduce(t, r, NewState(), AddObligation{Obligation: installment("obl-1")})
	second := installment("obl-2")
	second.Balance = decPtr(10000)
	second.PaidMonths = intPtr(0)
	state = mustReduce(t, r, state, AddObligation{Obligation: second})
	state = mustReduce(t, r, state, AddSpending{Spending: payment("sp-1", "obl-1", 4200)})

	updated := payment("sp-1", "obl-1", 5000)
	state = mustReduce(t, r, state, UpdateSpending{Spending: updated})
	assertObligation(t, state, "obl-1", 28600, 3)

	moved := payment("sp-1", "obl-2", 5000)
	state = mustReduce(t, r, state, UpdateSpending{Spending: moved})
	assertObligation(t, state, "obl-1", 33600, 2)
	assertObligation(t, state, "obl-2", 5000, 1)

	normal := moved
	normal.Kind = SpendingKindNormal
	normal.LinkedObligationID = nil
	state = mustReduce(t, r, state, UpdateSpending{Spending: normal})
	assertObligation(t, state, "obl-2", 10000, 0)
}

func TestUpdateSpendingKeepLinkLeavesObligation(t *testing.T) {
	r := NewReducer()
	r.Update = KeepLinkOnUpdate
	state := mustReduce(t, r, NewState(), AddObligation{Obligation: installment("obl-1")})
	state = mustReduce(t, r, state, AddSpending{Spending: payment("sp-1", "obl-1", 4200)})

	state = mustReduce(t, r, state, UpdateSpending{Spending: payment("sp-1", "obl-1", 5000)})
	assertObligation(t, state, "obl-1", 29400, 3)

	// The asymmetry shows on delete: the reversal uses the edited amount.
	state = mustReduce(t, r, state, DeleteSpending{ID: "sp-1"})
	assertObligation(t, state, "obl-1", 34400, 2)
}

func TestUpdateSpendingKeepsCreatedAt(t *testing.T) {
	r := NewReducer()
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	spending := Spending{ID: "sp-1", Name: "Lunch", Amount: decimal.NewFromInt(120), Category: "Food", Date: testDate, Kind: SpendingKindNormal, CreatedAt: created}
	state := mustReduce(t, r, NewState(), AddSpending{Spending: spending})

	spending.CreatedAt = time.Time{}
	spending.Amount = decimal.NewFromInt(150)
	state = mustReduce(t, r, state, UpdateSpending{Spending: spending})

	if !state.Spendings[0].CreatedAt.Equal(created) {
		t.Fatalf("expected created_at %v, got %v", created, state.Spendings[0].CreatedAt)
	}
}

func TestValidationErrors(t *testing.T) {
	r := NewReducer()
	cases := []struct {
		name   string
		action Action
	}{
		{"income zero amount", AddIncome{Income: Income{ID: "i", Name: "Salary", Frequency: FrequencyMonthly, Date: testDate}}},
		{"income bad frequency", AddIncome{Income: Income{ID: "i", Name: "Salary", Amount: decimal.NewFromInt(1), Frequency: "weekly", Date: testDate}}},
		{"spending without name", AddSpending{Spending: Spending{ID: "s", Amount: decimal.NewFromInt(1), Date: testDate, Kind: SpendingKindNormal}}},
		{"payment without link", AddSpending{Spending: Spending{ID: "s", Name: "x", Amount: decimal.NewFromInt(1), Date: testDate, Kind: SpendingKindObligationPayment}}},
		{"spending bad kind", AddSpending{Spending: Spending{ID: "s", Name: "x", Amount: decimal.NewFromInt(1), Date: testDate, Kind: "refund"}}},
		{"obligation bad type", AddObligation{Obligation: Obligation{ID: "o", Name: "x", Type: "mortgage"}}},
		{"asset negative quantity", AddAsset{Asset: Asset{ID: "a", Name: "x", Type: AssetTypeGold, Quantity: decimal.NewFromInt(-1)}}},
		{"budget bad period", AddBudget{Budget: Budget{ID: "b", Category: "Food", Amount: decimal.NewFromInt(1), Period: "weekly"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Reduce(NewState(), tc.action)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCategoriesAreTrimmed(t *testing.T) {
	r := NewReducer()
	state := mustReduce(t, r, NewState(), AddIncome{Income: Income{ID: "in-1", Name: "Salary", Amount: decimal.NewFromInt(100), Category: " Work ", Frequency: FrequencyMonthly, Date: testDate}})
	state = mustReduce(t, r, state, AddSpending{Spending: Spending{ID: "sp-1", Name: "Lunch", Amount: decimal.NewFromInt(100), Category: "Food ", Date: testDate, Kind: SpendingKindNormal}})
	state = mustReduce(t, r, state, AddBudget{Budget: Budget{ID: "b-1", Category: " Food", Amount: decimal.NewFromInt(500), Period: BudgetPeriodMonthly}})

	if state.Incomes[0].Category != "Work" {
		t.Fatalf("expected income category Work, got %q", state.Incomes[0].Category)
	}
	if state.Spendings[0].Category != "Food" {
		t.Fatalf("expected spending category Food, got %q", state.Spendings[0].Category)
	}
	if state.Budgets[0].Category != "Food" {
		t.Fatalf("expected budget category Food, got %q", state.Budgets[0].Category)
	}

	updated := state.Spendings[0]
	updated.Category = "  Transport\t"
	state = mustReduce(t, r, state, UpdateSpending{Spending: updated})
	if state.Spendings[0].Category != "Transport" {
		t.Fatalf("expected updated category Transport, got %q", state.Spendings[0].Category)
	}
}

func TestNotFoundAndDuplicate(t *testing.T) {
	r := NewReducer()
	if _, err := r.Reduce(NewState(), DeleteIncome{ID: "nope"}); !errors.Is(err, ErrIncomeNotFound) {
		t.Fatalf("expected ErrIncomeNotFound, got %v", err)
	}
	if _, err := r.Reduce(NewState(), DeleteBudget{ID: "nope"}); !errors.Is(err, ErrBudgetNotFound) {
		t.Fatalf("expected ErrBudgetNotFound, got %v", err)
	}

	budget := Budget{ID: "b-1", Category: "Food", Amount: decimal.NewFromInt(5000), Period: BudgetPeriodMonthly}
	state := mustReduce(t, r, NewState(), AddBudget{Budget: budget})
	if _, err := r.Reduce(state, AddBudget{Budget: budget}); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
}

func TestReplaceRecordsKeepsBudgets(t *testing.T) {
	r := NewReducer()
	budget := Budget{ID: "b-1", Category: "Food", Amount: decimal.NewFromInt(5000), Period: BudgetPeriodMonthly}
	state := mustReduce(t, r, NewState(), AddBudget{Budget: budget})
	state = mustReduce(t, r, state, AddObligation{Obligation: installment("local")})

	remote := State{Obligations: []Obligation{installment("remote")}}
	state = mustReduce(t, r, state, ReplaceRecords{Records: remote})

	if len(state.Budgets) != 1 {
		t.Fatalf("expected budgets to survive, got %d", len(state.Budgets))
	}
	if _, ok := findObligation(state, "local"); ok {
		t.Fatalf("expected local obligation to be replaced")
	}
	if _, ok := findObligation(state, "remote"); !ok {
		t.Fatalf("expected remote obligation to be present")
	}
	if state.Incomes == nil || state.Assets == nil {
		t.Fatalf("expected normalized empty collections")
	}
}

func TestDatesAreTruncatedToCivilDays(t *testing.T) {
	r := NewReducer()
	income := Income{
		ID:        "i-1",
		Name:      "Salary",
		Amount:    decimal.NewFromInt(30000),
		Frequency: FrequencyMonthly,
		Date:      time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC),
	}
	state := mustReduce(t, r, NewState(), AddIncome{Income: income})
	if !state.Incomes[0].Date.Equal(testDate) {
		t.Fatalf("expected date %v, got %v", testDate, state.Incomes[0].Date)
	}
}
