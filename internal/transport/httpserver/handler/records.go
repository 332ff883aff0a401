package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"money-tracker-go/internal/domain/ledger"
)

type incomeRequest struct {
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Frequency string          `json:"frequency"`
	Date      string          `json:"date"`
}

type spendingRequest struct {
	Name               string          `json:"name"`
	Amount             decimal.Decimal `json:"amount"`
	Category           string          `json:"category"`
	Date               string          `json:"date"`
	Kind               string          `json:"kind"`
	LinkedObligationID *string         `json:"linked_obligation_id"`
}

type obligationRequest struct {
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Amount       decimal.Decimal  `json:"amount"`
	Balance      *decimal.Decimal `json:"balance"`
	CreditLimit  *decimal.Decimal `json:"credit_limit"`
	InterestRate *decimal.Decimal `json:"interest_rate"`
	TotalMonths  *int             `json:"total_months"`
	PaidMonths   *int             `json:"paid_months"`
	StartDate    *string          `json:"start_date"`
	Status       string           `json:"status"`
}

type assetRequest struct {
	Name          string           `json:"name"`
	Type          string           `json:"type"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Unit          string           `json:"unit"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
}

type budgetRequest struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Period   string          `json:"period"`
}

// recordRequest converts a request body into a record with the given id.
// Creates pass an empty id; the tracker assigns one.
type recordRequest[T any] interface {
	toRecord(id string) (T, error)
}

func (req incomeRequest) toRecord(id string) (ledger.Income, error) {
	date, err := optionalDate(req.Date)
	if err != nil {
		return ledger.Income{}, err
	}
	return ledger.Income{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		Amount:    req.Amount,
		Category:  req.Category,
		Frequency: ledger.Frequency(strings.TrimSpace(req.Frequency)),
		Date:      date,
	}, nil
}

func (req spendingRequest) toRecord(id string) (ledger.Spending, error) {
	date, err := optionalDate(req.Date)
	if err != nil {
		return ledger.Spending{}, err
	}
	kind := ledger.SpendingKind(strings.TrimSpace(req.Kind))
	if kind == "" {
		kind = ledger.SpendingKindNormal
	}
	return ledger.Spending{
		ID:                 id,
		Name:               strings.TrimSpace(req.Name),
		Amount:             req.Amount,
		Category:           req.Category,
		Date:               date,
		Kind:               kind,
		LinkedObligationID: req.LinkedObligationID,
	}, nil
}

func (req obligationRequest) toRecord(id string) (ledger.Obligation, error) {
	var start *time.Time
	if req.StartDate != nil {
		parsed, err := parseDateParam(*req.StartDate)
		if err != nil {
			return ledger.Obligation{}, fmt.Errorf("invalid start_date")
		}
		start = parsed
	}
	return ledger.Obligation{
		ID:           id,
		Name:         strings.TrimSpace(req.Name),
		Type:         ledger.ObligationType(strings.TrimSpace(req.Type)),
		Amount:       req.Amount,
		Balance:      req.Balance,
		CreditLimit:  req.CreditLimit,
		InterestRate: req.InterestRate,
		TotalMonths:  req.TotalMonths,
		PaidMonths:   req.PaidMonths,
		StartDate:    start,
		Status:       ledger.ObligationStatus(strings.TrimSpace(req.Status)),
	}, nil
}

func (req assetRequest) toRecord(id string) (ledger.Asset, error) {
	return ledger.Asset{
		ID:            id,
		Name:          strings.TrimSpace(req.Name),
		Type:          ledger.AssetType(strings.TrimSpace(req.Type)),
		Quantity:      req.Quantity,
		Unit:          strings.TrimSpace(req.Unit),
		PurchasePrice: req.PurchasePrice,
	}, nil
}

func (req budgetRequest) toRecord(id string) (ledger.Budget, error) {
	return ledger.Budget{
		ID:       id,
		Category: req.Category,
		Amount:   req.Amount,
		Period:   ledger.BudgetPeriod(strings.TrimSpace(req.Period)),
	}, nil
}

func (h *Handlers) ListRecords(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	records, err := h.Tracker.Records(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "records.list: failed", err, "profile_id", id)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *Handlers) ListIncomes(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, "incomes.list", incomesOf)
}

func (h *Handlers) CreateIncome(w http.ResponseWriter, r *http.Request) {
	createRecord[ledger.Income, incomeRequest](h, w, r, "incomes.create", func(item ledger.Income) ledger.Action {
		return ledger.AddIncome{Income: item}
	}, incomesOf)
}

func (h *Handlers) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	updateRecord[ledger.Income, incomeRequest](h, w, r, "incomes.update", func(item ledger.Income) ledger.Action {
		return ledger.UpdateIncome{Income: item}
	}, incomesOf, func(item ledger.Income) string { return item.ID })
}

func (h *Handlers) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	deleteRecord(h, w, r, "incomes.delete", func(id string) ledger.Action {
		return ledger.DeleteIncome{ID: id}
	})
}

func (h *Handlers) ListSpendings(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, "spendings.list", spendingsOf)
}

func (h *Handlers) CreateSpending(w http.ResponseWriter, r *http.Request) {
	createRecord[ledger.Spending, spendingRequest](h, w, r, "spendings.create", func(item ledger.Spending) ledger.Action {
		return ledger.AddSpending{Spending: item}
	}, spendingsOf)
}

func (h *Handlers) UpdateSpending(w http.ResponseWriter, r *http.Request) {
	updateRecord[ledger.Spending, spendingRequest](h, w, r, "spendings.update", func(item ledger.Spending) ledger.Action {
		return ledger.UpdateSpending{Spending: item}
	}, spendingsOf, func(item ledger.Spending) string { return item.ID })
}

func (h *Handlers) DeleteSpending(w http.ResponseWriter, r *http.Request) {
	deleteRecord(h, w, r, "spendings.delete", func(id string) ledger.Action {
		return ledger.DeleteSpending{ID: id}
	})
}

func (h *Handlers) ListObligations(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, "obligations.list", obligationsOf)
}

func (h *Handlers) CreateObligation(w http.ResponseWriter, r *http.Request) {
	createRecord[ledger.Obligation, obligationRequest](h, w, r, "obligations.create", func(item ledger.Obligation) ledger.Action {
		return ledger.AddObligation{Obligation: item}
	}, obligationsOf)
}

func (h *Handlers) UpdateObligation(w http.ResponseWriter, r *http.Request) {
	updateRecord[ledger.Obligation, obligationRequest](h, w, r, "obligations.update", func(item ledger.Obligation) ledger.Action {
		return ledger.UpdateObligation{Obligation: item}
	}, obligationsOf, func(item ledger.Obligation) string { return item.ID })
}

func (h *Handlers) DeleteObligation(w http.ResponseWriter, r *http.Request) {
	deleteRecord(h, w, r, "obligations.delete", func(id string) ledger.Action {
		return ledger.DeleteObligation{ID: id}
	})
}

func (h *Handlers) ListAssets(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, "assets.list", assetsOf)
}

func (h *Handlers) CreateAsset(w http.ResponseWriter, r *http.Request) {
	createRecord[ledger.Asset, assetRequest](h, w, r, "assets.create", func(item ledger.Asset) ledger.Action {
		return ledger.AddAsset{Asset: item}
	}, assetsOf)
}

func (h *Handlers) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	updateRecord[ledger.Asset, assetRequest](h, w, r, "assets.update", func(item ledger.Asset) ledger.Action {
		return ledger.UpdateAsset{Asset: item}
	}, assetsOf, func(item ledger.Asset) string { return item.ID })
}

func (h *Handlers) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	deleteRecord(h, w, r, "assets.delete", func(id string) ledger.Action {
		return ledger.DeleteAsset{ID: id}
	})
}

func (h *Handlers) ListBudgets(w http.ResponseWriter, r *http.Request) {
	listRecords(h, w, r, "budgets.list", budgetsOf)
}

func (h *Handlers) CreateBudget(w http.ResponseWriter, r *http.Request) {
	createRecord[ledger.Budget, budgetRequest](h, w, r, "budgets.create", func(item ledger.Budget) ledger.Action {
		return ledger.AddBudget{Budget: item}
	}, budgetsOf)
}

func (h *Handlers) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	updateRecord[ledger.Budget, budgetRequest](h, w, r, "budgets.update", func(item ledger.Budget) ledger.Action {
		return ledger.UpdateBudget{Budget: item}
	}, budgetsOf, func(item ledger.Budget) string { return item.ID })
}

func (h *Handlers) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	deleteRecord(h, w, r, "budgets.delete", func(id string) ledger.Action {
		return ledger.DeleteBudget{ID: id}
	})
}

func incomesOf(state ledger.State) []ledger.Income {
	return state.Incomes
}

func spendingsOf(state ledger.State) []ledger.Spending {
	return state.Spendings
}

func obligationsOf(state ledger.State) []ledger.Obligation {
	return state.Obligations
}

func assetsOf(state ledger.State) []ledger.Asset {
	return state.Assets
}

func budgetsOf(state ledger.State) []ledger.Budget {
	return state.Budgets
}

func listRecords[T any](h *Handlers, w http.ResponseWriter, r *http.Request, op string, pick func(ledger.State) []T) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	records, err := h.Tracker.Records(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, op+": failed", err, "profile_id", id)
		return
	}
	writeJSON(w, http.StatusOK, pick(records))
}

// createRecord responds with the new record, which the reducer appends last.
func createRecord[T any, R recordRequest[T]](h *Handlers, w http.ResponseWriter, r *http.Request, op string, action func(T) ledger.Action, pick func(ledger.State) []T) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	var req R
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	record, err := req.toRecord("")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	state, err := h.Tracker.Dispatch(r.Context(), id, action(record))
	if err != nil {
		h.writeDomainError(w, op+": failed", err, "profile_id", id)
		return
	}
	items := pick(state)
	writeJSON(w, http.StatusCreated, items[len(items)-1])
}

func updateRecord[T any, R recordRequest[T]](h *Handlers, w http.ResponseWriter, r *http.Request, op string, action func(T) ledger.Action, pick func(ledger.State) []T, idOf func(T) string) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}
	recordID := chi.URLParam(r, "id")

	var req R
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	record, err := req.toRecord(recordID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	state, err := h.Tracker.Dispatch(r.Context(), id, action(record))
	if err != nil {
		h.writeDomainError(w, op+": failed", err, "profile_id", id, "record_id", recordID)
		return
	}
	for _, item := range pick(state) {
		if idOf(item) == recordID {
			writeJSON(w, http.StatusOK, item)
			return
		}
	}
	writeJSON(w, http.StatusOK, record)
}

func deleteRecord(h *Handlers, w http.ResponseWriter, r *http.Request, op string, action func(string) ledger.Action) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}
	recordID := chi.URLParam(r, "id")

	if _, err := h.Tracker.Dispatch(r.Context(), id, action(recordID)); err != nil {
		h.writeDomainError(w, op+": failed", err, "profile_id", id, "record_id", recordID)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func optionalDate(value string) (time.Time, error) {
	parsed, err := parseDateParam(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date")
	}
	if parsed == nil {
		return time.Time{}, nil
	}
	return *parsed, nil
}
