package handler

import (
	"net/http"

	"money-tracker-go/internal/domain/ledger"
	"money-tracker-go/internal/domain/summary"
	"money-tracker-go/internal/domain/valuation"
)

type monthTotalsResponse struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	summary.Totals
}

type yearTotalsResponse struct {
	Year int `json:"year"`
	summary.Totals
}

// records loads the state behind every derived view.
func (h *Handlers) records(w http.ResponseWriter, r *http.Request, op string) (ledger.State, bool) {
	id, ok := profileID(w, r)
	if !ok {
		return ledger.State{}, false
	}

	records, err := h.Tracker.Records(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, op+": load records failed", err, "profile_id", id)
		return ledger.State{}, false
	}
	return records, true
}

func (h *Handlers) MonthSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthParam(r.URL.Query().Get("month"), h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "month must be YYYY-MM")
		return
	}
	records, ok := h.records(w, r, "summary.month")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, monthTotalsResponse{
		Year:   year,
		Month:  int(month),
		Totals: summary.MonthTotals(records, year, month),
	})
}

func (h *Handlers) YearSummary(w http.ResponseWriter, r *http.Request) {
	year, err := parseYearParam(r.URL.Query().Get("year"), h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "year must be YYYY")
		return
	}
	records, ok := h.records(w, r, "summary.year")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, yearTotalsResponse{Year: year, Totals: summary.YearTotals(records, year)})
}

func (h *Handlers) RangeSummary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	from, err := parseDateParam(query.Get("from"))
	if err != nil || from == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "from must be YYYY-MM-DD")
		return
	}
	to, err := parseDateParam(query.Get("to"))
	if err != nil || to == nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "to must be YYYY-MM-DD")
		return
	}
	if to.Before(*from) {
		writeError(w, http.StatusBadRequest, "invalid_request", "to must not be before from")
		return
	}
	records, ok := h.records(w, r, "summary.range")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, summary.RangeTotals(records, *from, *to))
}

func (h *Handlers) CalendarSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthParam(r.URL.Query().Get("month"), h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "month must be YYYY-MM")
		return
	}
	records, ok := h.records(w, r, "summary.calendar")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, summary.CalendarBalance(records, year, month))
}

func (h *Handlers) YearBalanceSummary(w http.ResponseWriter, r *http.Request) {
	year, err := parseYearParam(r.URL.Query().Get("year"), h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "year must be YYYY")
		return
	}
	records, ok := h.records(w, r, "summary.year_balance")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, summary.YearBalance(records, year))
}

func (h *Handlers) CategorySummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthParam(r.URL.Query().Get("month"), h.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "month must be YYYY-MM")
		return
	}
	records, ok := h.records(w, r, "summary.categories")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, summary.CategoryBreakdown(records, year, month))
}

func (h *Handlers) BudgetStatus(w http.ResponseWriter, r *http.Request) {
	records, ok := h.records(w, r, "budgets.status")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, summary.BudgetStatuses(records, h.now()))
}

func (h *Handlers) ObligationProgress(w http.ResponseWriter, r *http.Request) {
	records, ok := h.records(w, r, "obligations.progress")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, summary.Obligations(records))
}

func (h *Handlers) AssetValuation(w http.ResponseWriter, r *http.Request) {
	records, ok := h.records(w, r, "assets.valuation")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, valuation.Portfolio(records.Assets, h.currentPrices()))
}

func (h *Handlers) currentPrices() valuation.Prices {
	if h.Prices == nil {
		return valuation.Prices{}
	}
	return h.Prices.Current().Valuation()
}
