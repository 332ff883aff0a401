package handler

import (
	"net/http"

	"money-tracker-go/internal/domain/prices"
)

type refreshResponse struct {
	Quote prices.Quote `json:"quote"`
	Error string       `json:"error,omitempty"`
}

func (h *Handlers) GetPrices(w http.ResponseWriter, r *http.Request) {
	if h.Prices == nil {
		writeJSON(w, http.StatusOK, prices.Quote{})
		return
	}
	writeJSON(w, http.StatusOK, h.Prices.Current())
}

// RefreshPrices returns the merged quote even when some feeds failed. The
// request fails only when no feed answered.
func (h *Handlers) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	if h.Prices == nil {
		writeError(w, http.StatusServiceUnavailable, "prices_disabled", "price feeds are not configured")
		return
	}

	previous := h.Prices.Current()
	quote, err := h.Prices.Refresh(r.Context())
	if err == nil {
		writeJSON(w, http.StatusOK, refreshResponse{Quote: quote})
		return
	}

	h.log.BusinessError("prices.refresh: feeds failed", err)
	if quote.FetchedAt.Equal(previous.FetchedAt) {
		writeError(w, http.StatusBadGateway, "price_feed_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, refreshResponse{Quote: quote, Error: err.Error()})
}
