package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"money-tracker-go/internal/domain/ledger"
	"money-tracker-go/internal/domain/valuation"
)

func sampleState() ledger.State {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	loanID := "ob-1"
	price := decimal.NewFromInt(40000)

	state := ledger.NewState()
	state.Incomes = []ledger.Income{{ID: "in-1", Name: "Salary", Amount: decimal.NewFromInt(30000), Category: "Work", Frequency: ledger.FrequencyMonthly, Date: date}}
	state.Spendings = []ledger.Spending{
		{ID: "sp-1", Name: "Groceries, weekly", Amount: decimal.RequireFromString("1250.5"), Category: "Food", Date: date, Kind: ledger.SpendingKindNormal},
		{ID: "sp-2", Name: "Phone", Amount: decimal.NewFromInt(4200), Category: "Debt", Date: date, Kind: ledger.SpendingKindObligationPayment, LinkedObligationID: &loanID},
	}
	state.Obligations = []ledger.Obligation{{ID: loanID, Name: "Phone", Type: ledger.ObligationTypeInstallment, Amount: decimal.NewFromInt(4200), Status: ledger.ObligationStatusActive}}
	state.Assets = []ledger.Asset{{ID: "as-1", Name: "Bar", Type: ledger.AssetTypeGold, Quantity: decimal.NewFromInt(2), Unit: "baht", PurchasePrice: &price}}
	state.Budgets = []ledger.Budget{{ID: "bu-1", Category: "Food", Amount: decimal.NewFromInt(5000), Period: ledger.BudgetPeriodMonthly}}
	return state
}

func TestWriteCSVQuotesAndFormats(t *testing.T) {
	table, err := TableFor(sampleState(), "spendings")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, table); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("expected readable csv, got %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(records))
	}
	if records[1][2] != "Groceries, weekly" {
		t.Fatalf("expected name with comma to survive, got %q", records[1][2])
	}
	if records[1][6] != "1250.50" {
		t.Fatalf("expected amount 1250.50, got %q", records[1][6])
	}
	if records[2][5] != "ob-1" {
		t.Fatalf("expected linked obligation ob-1, got %q", records[2][5])
	}
}

func TestTableForUnknownCollection(t *testing.T) {
	if _, err := TableFor(sampleState(), "pets"); !errors.Is(err, ErrUnknownCollection) {
		t.Fatalf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestWriteXLSXHasSheetPerCollection(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleState()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	file, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("expected readable workbook, got %v", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	want := []string{"Incomes", "Spendings", "Obligations", "Assets", "Budgets"}
	if len(sheets) != len(want) {
		t.Fatalf("expected sheets %v, got %v", want, sheets)
	}
	for i, name := range want {
		if sheets[i] != name {
			t.Fatalf("expected sheet %d to be %s, got %s", i, name, sheets[i])
		}
	}

	header, err := file.GetCellValue("Incomes", "C1")
	if err != nil || header != "Name" {
		t.Fatalf("expected header Name, got %q (%v)", header, err)
	}
	amount, err := file.GetCellValue("Incomes", "F2")
	if err != nil || amount != "30000" {
		t.Fatalf("expected numeric amount 30000, got %q (%v)", amount, err)
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	report := Report{
		Currency:    "THB",
		GeneratedAt: time.Date(2026, 3, 20, 8, 0, 0, 0, time.UTC),
		Records:     sampleState(),
		Prices:      valuation.Prices{GoldPerBaht: decimal.NewFromInt(45000)},
	}

	if err := WritePDF(&buf, report); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected pdf header, got %q", buf.Bytes()[:8])
	}
}

func TestWritePDFWithEmptyRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, Report{}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected pdf output")
	}
}
