package ledger

import (
	"fmt"
	"strings"
)

// Reducer turns (state, action) into the next state. It never mutates its
// input: every successful call returns fresh collection slices for whatever
// it touched, and a failed call returns the input state untouched.
type Reducer struct {
	MissingLink MissingLinkPolicy
	Update      UpdatePolicy
}

func NewReducer() Reducer {
	return Reducer{
		MissingLink: IgnoreMissingLink,
		Update:      RelinkOnUpdate,
	}
}

func (r Reducer) Reduce(state State, action Action) (State, error) {
	state = state.Normalize()

	switch a := action.(type) {
	case AddIncome:
		return addIncome(state, a.Income)
	case UpdateIncome:
		return updateIncome(state, a.Income)
	case DeleteIncome:
		return deleteIncome(state, a.ID)
	case AddSpending:
		return r.addSpending(state, a.Spending)
	case UpdateSpending:
		return r.updateSpending(state, a.Spending)
	case DeleteSpending:
		return deleteSpending(state, a.ID)
	case AddObligation:
		return addObligation(state, a.Obligation)
	case UpdateObligation:
		return updateObligation(state, a.Obligation)
	case DeleteObligation:
		return deleteObligation(state, a.ID)
	case AddAsset:
		return addAsset(state, a.Asset)
	case UpdateAsset:
		return updateAsset(state, a.Asset)
	case DeleteAsset:
		return deleteAsset(state, a.ID)
	case AddBudget:
		return addBudget(state, a.Budget)
	case UpdateBudget:
		return updateBudget(state, a.Budget)
	case DeleteBudget:
		return deleteBudget(state, a.ID)
	case ReplaceRecords:
		return replaceRecords(state, a.Records), nil
	default:
		return state, fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
}

func addIncome(state State, income Income) (State, error) {
	income.Date = CivilDate(income.Date)
	income.Category = strings.TrimSpace(income.Category)
	if err := validateIncome(income); err != nil {
		return state, err
	}
	if indexOf(state.Incomes, income.ID, incomeID) >= 0 {
		return state, ErrDuplicateID
	}
	state.Incomes = appendItem(state.Incomes, income)
	return state, nil
}

func updateIncome(state State, income Income) (State, error) {
	income.Date = CivilDate(income.Date)
	income.Category = strings.TrimSpace(income.Category)
	if err := validateIncome(income); err != nil {
		return state, err
	}
	idx := indexOf(state.Incomes, income.ID, incomeID)
	if idx < 0 {
		return state, ErrIncomeNotFound
	}
	income.CreatedAt = state.Incomes[idx].CreatedAt
	state.Incomes = replaceAt(state.Incomes, idx, income)
	return state, nil
}

func deleteIncome(state State, id string) (State, error) {
	idx := indexOf(state.Incomes, id, incomeID)
	if idx < 0 {
		return state, ErrIncomeNotFound
	}
	state.Incomes = removeAt(state.Incomes, idx)
	return state, nil
}

func (r Reducer) addSpending(state State, spending Spending) (State, error) {
	spending.Date = CivilDate(spending.Date)
	spending.Category = strings.TrimSpace(spending.Category)
	if err := validateSpending(spending); err != nil {
		return state, err
	}
	if indexOf(state.Spendings, spending.ID, spendingID) >= 0 {
		return state, ErrDuplicateID
	}

	obligations := state.Obligations
	if spending.IsObligationPayment() {
		var found bool
		obligations, found = adjustObligation(obligations, linkedID(spending), spending.Amount, applyPayment)
		if !found && r.MissingLink == RejectMissingLink {
			return state, ErrObligationNotFound
		}
	}

	state.Obligations = obligations
	state.Spendings = appendItem(state.Spendings, spending)
	return state, nil
}

func (r Reducer) updateSpending(state State, spending Spending) (State, error) {
	spending.Date = CivilDate(spending.Date)
	spending.Category = strings.TrimSpace(spending.Category)
	if err := validateSpending(spending); err != nil {
		return state, err
	}
	idx := indexOf(state.Spendings, spending.ID, spendingID)
	if idx < 0 {
		return state, ErrSpendingNotFound
	}
	previous := state.Spendings[idx]
	spending.CreatedAt = previous.CreatedAt

	obligations := state.Obligations
	if r.Update == RelinkOnUpdate {
		if previous.IsObligationPayment() {
			obligations, _ = adjustObligation(obligations, linkedID(previous), previous.Amount, reversePayment)
		}
		if spending.IsObligationPayment() {
			var found bool
			obligations, found = adjustObligation(obligations, linkedID(spending), spending.Amount, applyPayment)
			if !found && r.MissingLink == RejectMissingLink {
				return state, ErrObligationNotFound
			}
		}
	}

	state.Obligations = obligations
	state.Spendings = replaceAt(state.Spendings, idx, spending)
	return state, nil
}

func deleteSpending(state State, id string) (State, error) {
	idx := indexOf(state.Spendings, id, spendingID)
	if idx < 0 {
		return state, ErrSpendingNotFound
	}
	deleted := state.Spendings[idx]

	if deleted.IsObligationPayment() {
		state.Obligations, _ = adjustObligation(state.Obligations, linkedID(deleted), deleted.Amount, reversePayment)
	}
	state.Spendings = removeAt(state.Spendings, idx)
	return state, nil
}

func addObligation(state State, obligation Obligation) (State, error) {
	obligation = normalizeObligation(obligation)
	if err := validateObligation(obligation); err != nil {
		return state, err
	}
	if indexOf(state.Obligations, obligation.ID, obligationID) >= 0 {
		return state, ErrDuplicateID
	}
	state.Obligations = appendItem(state.Obligations, obligation)
	return state, nil
}

func updateObligation(state State, obligation Obligation) (State, error) {
	obligation = normalizeObligation(obligation)
	if err := validateObligation(obligation); err != nil {
		return state, err
	}
	idx := indexOf(state.Obligations, obligation.ID, obligationID)
	if idx < 0 {
		return state, ErrObligationNotFound
	}
	obligation.CreatedAt = state.Obligations[idx].CreatedAt
	state.Obligations = replaceAt(state.Obligations, idx, obligation)
	return state, nil
}

// deleteObligation does not cascade: linked spendings keep their dangling id.
func deleteObligation(state State, id string) (State, error) {
	idx := indexOf(state.Obligations, id, obligationID)
	if idx < 0 {
		return state, ErrObligationNotFound
	}
	state.Obligations = removeAt(state.Obligations, idx)
	return state, nil
}

func addAsset(state State, asset Asset) (State, error) {
	asset.Unit = strings.TrimSpace(asset.Unit)
	if err := validateAsset(asset); err != nil {
		return state, err
	}
	if indexOf(state.Assets, asset.ID, assetID) >= 0 {
		return state, ErrDuplicateID
	}
	state.Assets = appendItem(state.Assets, asset)
	return state, nil
}

func updateAsset(state State, asset Asset) (State, error) {
	asset.Unit = strings.TrimSpace(asset.Unit)
	if err := validateAsset(asset); err != nil {
		return state, err
	}
	idx := indexOf(state.Assets, asset.ID, assetID)
	if idx < 0 {
		return state, ErrAssetNotFound
	}
	asset.CreatedAt = state.Assets[idx].CreatedAt
	state.Assets = replaceAt(state.Assets, idx, asset)
	return state, nil
}

func deleteAsset(state State, id string) (State, error) {
	idx := indexOf(state.Assets, id, assetID)
	if idx < 0 {
		return state, ErrAssetNotFound
	}
	state.Assets = removeAt(state.Assets, idx)
	return state, nil
}

func addBudget(state State, budget Budget) (State, error) {
	budget.Category = strings.TrimSpace(budget.Category)
	if err := validateBudget(budget); err != nil {
		return state, err
	}
	if indexOf(state.Budgets, budget.ID, budgetID) >= 0 {
		return state, ErrDuplicateID
	}
	state.Budgets = appendItem(state.Budgets, budget)
	return state, nil
}

func updateBudget(state State, budget Budget) (State, error) {
	budget.Category = strings.TrimSpace(budget.Category)
	if err := validateBudget(budget); err != nil {
		return state, err
	}
	idx := indexOf(state.Budgets, budget.ID, budgetID)
	if idx < 0 {
		return state, ErrBudgetNotFound
	}
	state.Budgets = replaceAt(state.Budgets, idx, budget)
	return state, nil
}

func deleteBudget(state State, id string) (State, error) {
	idx := indexOf(state.Budgets, id, budgetID)
	if idx < 0 {
		return state, ErrBudgetNotFound
	}
	state.Budgets = removeAt(state.Budgets, idx)
	return state, nil
}

func replaceRecords(state State, records State) State {
	records = records.Normalize()
	return State{
		Incomes:     appendItems(records.Incomes),
		Spendings:   appendItems(records.Spendings),
		Obligations: appendItems(records.Obligations),
		Assets:      appendItems(records.Assets),
		Budgets:     state.Budgets,
	}
}

func incomeID(item Income) string         { return item.ID }
func spendingID(item Spending) string     { return item.ID }
func obligationID(item Obligation) string { return item.ID }
func assetID(item Asset) string           { return item.ID }
func budgetID(item Budget) string         { return item.ID }

func indexOf[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func appendItem[T any](items []T, item T) []T {
	next := make([]T, 0, len(items)+1)
	next = append(next, items...)
	return append(next, item)
}

func appendItems[T any](items []T) []T {
	next := make([]T, 0, len(items))
	return append(next, items...)
}

func replaceAt[T any](items []T, idx int, item T) []T {
	next := appendItems(items)
	next[idx] = item
	return next
}

func removeAt[T any](items []T, idx int) []T {
	next := make([]T, 0, len(items)-1)
	next = append(next, items[:idx]...)
	return append(next, items[idx+1:]...)
}
