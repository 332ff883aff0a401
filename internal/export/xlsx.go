package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"money-tracker-go/internal/domain/ledger"
)

const defaultSheet = "Sheet1"

// WriteXLSX writes a workbook with one sheet per collection.
func WriteXLSX(w io.Writer, state ledger.State) error {
	file := excelize.NewFile()
	defer file.Close()

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for i, table := range Tables(state) {
		if err := writeSheet(file, table, headerStyle); err != nil {
			return err
		}
		if i == 0 {
			index, err := file.GetSheetIndex(table.Name)
			if err != nil {
				return fmt.Errorf("find sheet %s: %w", table.Name, err)
			}
			file.SetActiveSheet(index)
		}
	}

	if err := file.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(file *excelize.File, table Table, headerStyle int) error {
	if _, err := file.NewSheet(table.Name); err != nil {
		return fmt.Errorf("create sheet %s: %w", table.Name, err)
	}

	header := make([]interface{}, len(table.Header))
	for i, title := range table.Header {
		header[i] = title
	}
	if err := file.SetSheetRow(table.Name, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", table.Name, err)
	}
	if err := file.SetRowStyle(table.Name, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style %s header: %w", table.Name, err)
	}

	for r, row := range table.Rows {
		values := make([]interface{}, len(row))
		for c, value := range row {
			values[c] = cellValue(table, c, value)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(table.Name, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", table.Name, r+1, err)
		}
	}

	lastColumn, err := excelize.ColumnNumberToName(len(table.Header))
	if err != nil {
		return err
	}
	return file.SetColWidth(table.Name, "A", lastColumn, 18)
}

func cellValue(table Table, column int, value string) interface{} {
	if value == "" || column >= len(table.Numeric) || !table.Numeric[column] {
		return value
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return value
	}
	number, _ := parsed.Float64()
	return number
}
