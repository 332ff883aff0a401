package export

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"money-tracker-go/internal/domain/ledger"
)

const dateLayout = "2006-01-02"

var ErrUnknownCollection = errors.New("unknown collection")

// Table is one collection flattened for export. Numeric marks the columns
// holding amounts, so spreadsheet writers can store them as numbers.
type Table struct {
	Name    string
	Header  []string
	Numeric []bool
	Rows    [][]string
}

var collections = []string{"incomes", "spendings", "obligations", "assets", "budgets"}

func Collections() []string {
	return append([]string(nil), collections...)
}

func Tables(state ledger.State) []Table {
	tables := make([]Table, 0, len(collections))
	for _, name := range collections {
		table, _ := TableFor(state, name)
		tables = append(tables, table)
	}
	return tables
}

func TableFor(state ledger.State, collection string) (Table, error) {
	switch strings.ToLower(strings.TrimSpace(collection)) {
	case "incomes":
		return incomesTable(state.Incomes), nil
	case "spendings":
		return spendingsTable(state.Spendings), nil
	case "obligations":
		return obligationsTable(state.Obligations), nil
	case "assets":
		return assetsTable(state.Assets), nil
	case "budgets":
		return budgetsTable(state.Budgets), nil
	default:
		return Table{}, fmt.Errorf("%w: %s", ErrUnknownCollection, collection)
	}
}

func incomesTable(incomes []ledger.Income) Table {
	table := Table{
		Name:    "Incomes",
		Header:  []string{"ID", "Date", "Name", "Category", "Frequency", "Amount"},
		Numeric: []bool{false, false, false, false, false, true},
		Rows:    make([][]string, 0, len(incomes)),
	}
	for _, income := range incomes {
		table.Rows = append(table.Rows, []string{
			income.ID,
			formatDate(income.Date),
			income.Name,
			income.Category,
			string(income.Frequency),
			formatMoney(income.Amount),
		})
	}
	return table
}

func spendingsTable(spendings []ledger.Spending) Table {
	table := Table{
		Name:    "Spendings",
		Header:  []string{"ID", "Date", "Name", "Category", "Kind", "Linked obligation", "Amount"},
		Numeric: []bool{false, false, false, false, false, false, true},
		Rows:    make([][]string, 0, len(spendings)),
	}
	for _, spending := range spendings {
		linked := ""
		if spending.LinkedObligationID != nil {
			linked = *spending.LinkedObligationID
		}
		table.Rows = append(table.Rows, []string{
			spending.ID,
			formatDate(spending.Date),
			spending.Name,
			spending.Category,
			string(spending.Kind),
			linked,
			formatMoney(spending.Amount),
		})
	}
	return table
}

func obligationsTable(obligations []ledger.Obligation) Table {
	table := Table{
		Name:    "Obligations",
		Header:  []string{"ID", "Name", "Type", "Status", "Monthly amount", "Balance", "Credit limit", "Interest rate", "Paid months", "Total months", "Start date"},
		Numeric: []bool{false, false, false, false, true, true, true, true, true, true, false},
		Rows:    make([][]string, 0, len(obligations)),
	}
	for _, obligation := range obligations {
		start := ""
		if obligation.StartDate != nil {
			start = formatDate(*obligation.StartDate)
		}
		table.Rows = append(table.Rows, []string{
			obligation.ID,
			obligation.Name,
			string(obligation.Type),
			string(obligation.Status),
			formatMoney(obligation.Amount),
			formatOptionalMoney(obligation.Balance),
			formatOptionalMoney(obligation.CreditLimit),
			formatOptional(obligation.InterestRate),
			formatOptionalInt(obligation.PaidMonths),
			formatOptionalInt(obligation.TotalMonths),
			start,
		})
	}
	return table
}

func assetsTable(assets []ledger.Asset) Table {
	table := Table{
		Name:    "Assets",
		Header:  []string{"ID", "Name", "Type", "Quantity", "Unit", "Purchase price"},
		Numeric: []bool{false, false, false, true, false, true},
		Rows:    make([][]string, 0, len(assets)),
	}
	for _, asset := range assets {
		table.Rows = append(table.Rows, []string{
			asset.ID,
			asset.Name,
			string(asset.Type),
			asset.Quantity.String(),
			asset.Unit,
			formatOptionalMoney(asset.PurchasePrice),
		})
	}
	return table
}

func budgetsTable(budgets []ledger.Budget) Table {
	table := Table{
		Name:    "Budgets",
		Header:  []string{"ID", "Category", "Period", "Amount"},
		Numeric: []bool{false, false, false, true},
		Rows:    make([][]string, 0, len(budgets)),
	}
	for _, budget := range budgets {
		table.Rows = append(table.Rows, []string{
			budget.ID,
			budget.Category,
			string(budget.Period),
			formatMoney(budget.Amount),
		})
	}
	return table
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func formatMoney(value decimal.Decimal) string {
	return value.StringFixed(2)
}

func formatOptionalMoney(value *decimal.Decimal) string {
	if value == nil {
		return ""
	}
	return formatMoney(*value)
}

func formatOptional(value *decimal.Decimal) string {
	if value == nil {
		return ""
	}
	return value.String()
}

func formatOptionalInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}
