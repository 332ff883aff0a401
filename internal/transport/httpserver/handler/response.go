package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"money-tracker-go/internal/domain/ledger"
	profiledomain "money-tracker-go/internal/domain/profile"
	trackerdomain "money-tracker-go/internal/domain/tracker"
	"money-tracker-go/internal/export"
	"money-tracker-go/internal/integrations/mail"
	"money-tracker-go/internal/transport/httpserver/middleware"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func profileID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.ProfileIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return "", false
	}
	return id, true
}

// writeDomainError maps domain errors to the wire. Expected failures are
// logged as business errors, the rest as internal errors.
func (h *Handlers) writeDomainError(w http.ResponseWriter, op string, err error, args ...any) {
	status, code, message := http.StatusInternalServerError, "internal_error", "internal error"
	switch {
	case errors.Is(err, ledger.ErrValidation):
		status, code, message = http.StatusBadRequest, "validation_error", err.Error()
	case errors.Is(err, ledger.ErrIncomeNotFound),
		errors.Is(err, ledger.ErrSpendingNotFound),
		errors.Is(err, ledger.ErrObligationNotFound),
		errors.Is(err, ledger.ErrAssetNotFound),
		errors.Is(err, ledger.ErrBudgetNotFound):
		status, code, message = http.StatusNotFound, "not_found", err.Error()
	case errors.Is(err, ledger.ErrDuplicateID):
		status, code, message = http.StatusConflict, "duplicate_id", err.Error()
	case errors.Is(err, trackerdomain.ErrLocked):
		status, code, message = http.StatusLocked, "locked", "session is locked"
	case errors.Is(err, trackerdomain.ErrWrongPIN), errors.Is(err, profiledomain.ErrWrongPIN):
		status, code, message = http.StatusUnauthorized, "wrong_pin", "wrong pin"
	case errors.Is(err, profiledomain.ErrInvalidCredentials):
		status, code, message = http.StatusBadRequest, "invalid_credentials", "user id is required"
	case errors.Is(err, trackerdomain.ErrSessionNotFound), errors.Is(err, profiledomain.ErrProfileNotFound):
		status, code, message = http.StatusUnauthorized, "session_not_found", "session not found, login again"
	case errors.Is(err, export.ErrUnknownCollection):
		status, code, message = http.StatusNotFound, "unknown_collection", err.Error()
	case errors.Is(err, mail.ErrInvalidRecipient):
		status, code, message = http.StatusBadRequest, "invalid_request", err.Error()
	case errors.Is(err, mail.ErrDisabled):
		status, code, message = http.StatusServiceUnavailable, "mail_disabled", err.Error()
	}

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		h.log.InternalError(op, err, args...)
	} else {
		h.log.BusinessError(op, err, args...)
	}
	writeError(w, status, code, message)
}
