package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"money-tracker-go/internal/domain/ledger"
	"money-tracker-go/internal/domain/summary"
	"money-tracker-go/internal/domain/valuation"
)

const (
	pdfFont      = "Helvetica"
	pdfRowHeight = 6.0
	wideColumns  = 7
)

// Report is the input of the PDF export. GeneratedAt picks the month of the
// summary page and the budget period.
type Report struct {
	Title       string
	Currency    string
	GeneratedAt time.Time
	Records     ledger.State
	Prices      valuation.Prices
}

// WritePDF renders a summary page, one page per collection and a portfolio page.
func WritePDF(w io.Writer, report Report) error {
	if report.Title == "" {
		report.Title = "Money Tracker report"
	}
	if report.GeneratedAt.IsZero() {
		report.GeneratedAt = time.Now().UTC()
	}
	report.Records = report.Records.Normalize()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(report.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	writeSummaryPage(pdf, tr, report)
	for _, table := range Tables(report.Records) {
		writeTablePage(pdf, tr, table)
	}
	writePortfolioPage(pdf, tr, report)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func writeSummaryPage(pdf *fpdf.Fpdf, tr func(string) string, report Report) {
	pdf.AddPage()
	heading(pdf, tr, report.Title)

	now := report.GeneratedAt
	pdf.SetFont(pdfFont, "", 10)
	pdf.CellFormat(0, pdfRowHeight, tr("Generated "+now.Format("2006-01-02 15:04")+" UTC"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	month := summary.MonthTotals(report.Records, now.Year(), now.Month())
	year := summary.YearTotals(report.Records, now.Year())
	subheading(pdf, tr, "Cash flow")
	writeGrid(pdf, tr,
		[]string{"Period", "Income", "Spending", "Net"},
		[]bool{false, true, true, true},
		[][]string{
			{now.Format("January 2006"), formatMoney(month.Income), formatMoney(month.Spending), formatMoney(month.Net)},
			{now.Format("2006"), formatMoney(year.Income), formatMoney(year.Spending), formatMoney(year.Net)},
		})
	pdf.Ln(4)

	subheading(pdf, tr, "Budgets")
	budgetRows := make([][]string, 0, len(report.Records.Budgets))
	for _, status := range summary.BudgetStatuses(report.Records, now) {
		over := ""
		if status.IsOver {
			over = "over"
		}
		budgetRows = append(budgetRows, []string{
			status.Budget.Category,
			string(status.Budget.Period),
			formatMoney(status.Budget.Amount),
			formatMoney(status.Spent),
			formatMoney(status.Remaining),
			status.Progress.StringFixed(1) + "%",
			over,
		})
	}
	writeGrid(pdf, tr,
		[]string{"Category", "Period", "Budget", "Spent", "Remaining", "Progress", ""},
		[]bool{false, false, true, true, true, true, false},
		budgetRows)
	pdf.Ln(4)

	subheading(pdf, tr, "Spending by category")
	categoryRows := make([][]string, 0)
	for _, category := range summary.CategoryBreakdown(report.Records, now.Year(), now.Month()) {
		categoryRows = append(categoryRows, []string{
			category.Category,
			fmt.Sprintf("%d", category.Count),
			formatMoney(category.Total),
			category.Share.StringFixed(1) + "%",
		})
	}
	writeGrid(pdf, tr,
		[]string{"Category", "Items", "Total", "Share"},
		[]bool{false, true, true, true},
		categoryRows)
}

func writeTablePage(pdf *fpdf.Fpdf, tr func(string) string, table Table) {
	if len(table.Header) > wideColumns {
		pdf.AddPageFormat("L", pdf.GetPageSizeStr("A4"))
	} else {
		pdf.AddPage()
	}
	heading(pdf, tr, table.Name)
	writeGrid(pdf, tr, table.Header, table.Numeric, table.Rows)
}

func writePortfolioPage(pdf *fpdf.Fpdf, tr func(string) string, report Report) {
	pdf.AddPage()
	heading(pdf, tr, "Portfolio")

	view := valuation.Portfolio(report.Records.Assets, report.Prices)
	pdf.SetFont(pdfFont, "", 10)
	pdf.CellFormat(0, pdfRowHeight, tr(fmt.Sprintf("BTC %s / gold per baht %s %s",
		formatMoney(report.Prices.BTC), formatMoney(report.Prices.GoldPerBaht), report.Currency)), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	rows := make([][]string, 0, len(view.Holdings))
	for _, holding := range view.Holdings {
		rows = append(rows, []string{
			holding.Asset.Name,
			string(holding.Asset.Type),
			holding.Asset.Quantity.String() + " " + holding.Asset.Unit,
			formatOptionalMoney(holding.Cost),
			formatMoney(holding.Value),
			formatOptionalMoney(holding.PnL),
		})
	}
	rows = append(rows, []string{"Total", "", "", formatMoney(view.TotalCost), formatMoney(view.TotalValue), formatMoney(view.TotalPnL)})
	writeGrid(pdf, tr,
		[]string{"Name", "Type", "Quantity", "Cost", "Value", "P&L"},
		[]bool{false, false, false, true, true, true},
		rows)
}

func heading(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont(pdfFont, "B", 16)
	pdf.CellFormat(0, 10, tr(text), "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func subheading(pdf *fpdf.Fpdf, tr func(string) string, text string) {
	pdf.SetFont(pdfFont, "B", 12)
	pdf.CellFormat(0, 8, tr(text), "", 1, "L", false, 0, "")
}

func writeGrid(pdf *fpdf.Fpdf, tr func(string) string, header []string, numeric []bool, rows [][]string) {
	if len(header) == 0 {
		return
	}
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := (pageWidth - left - right) / float64(len(header))

	pdf.SetFont(pdfFont, "B", 8)
	pdf.SetFillColor(221, 235, 247)
	for _, title := range header {
		pdf.CellFormat(width, pdfRowHeight, fit(pdf, tr(title), width), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 8)
	if len(rows) == 0 {
		pdf.CellFormat(width*float64(len(header)), pdfRowHeight, "No entries", "1", 1, "C", false, 0, "")
		return
	}
	for _, row := range rows {
		for c, value := range row {
			align := "L"
			if c < len(numeric) && numeric[c] {
				align = "R"
			}
			pdf.CellFormat(width, pdfRowHeight, fit(pdf, tr(value), width), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// fit shortens text until it fits a cell of the given width.
func fit(pdf *fpdf.Fpdf, text string, width float64) string {
	limit := width - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"..") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ".."
}
