package ledger

// Action is a single user mutation of the record store.
type Action interface {
	Name() string
}

type AddIncome struct{ Income Income }
type UpdateIncome struct{ Income Income }
type DeleteIncome struct{ ID string }

type AddSpending struct{ Spending Spending }
type UpdateSpending struct{ Spending Spending }
type DeleteSpending struct{ ID string }

type AddObligation struct{ Obligation Obligation }
type UpdateObligation struct{ Obligation Obligation }
type DeleteObligation struct{ ID string }

type AddAsset struct{ Asset Asset }
type UpdateAsset struct{ Asset Asset }
type DeleteAsset struct{ ID string }

type AddBudget struct{ Budget Budget }
type UpdateBudget struct{ Budget Budget }
type DeleteBudget struct{ ID string }

// ReplaceRecords swaps the four mirrored collections for a remote copy.
// Budgets are local-only and survive the swap.
type ReplaceRecords struct{ Records State }

func (AddIncome) Name() string        { return "add_income" }
func (UpdateIncome) Name() string     { return "update_income" }
func (DeleteIncome) Name() string     { return "delete_income" }
func (AddSpending) Name() string      { return "add_spending" }
func (UpdateSpending) Name() string   { return "update_spending" }
func (DeleteSpending) Name() string   { return "delete_spending" }
func (AddObligation) Name() string    { return "add_obligation" }
func (UpdateObligation) Name() string { return "update_obligation" }
func (DeleteObligation) Name() string { return "delete_obligation" }
func (AddAsset) Name() string         { return "add_asset" }
func (UpdateAsset) Name() string      { return "update_asset" }
func (DeleteAsset) Name() string      { return "delete_asset" }
func (AddBudget) Name() string        { return "add_budget" }
func (UpdateBudget) Name() string     { return "update_budget" }
func (DeleteBudget) Name() string     { return "delete_budget" }
func (ReplaceRecords) Name() string   { return "replace_records" }
