package ledger

import "errors"

var (
	ErrValidation = errors.New("validation failed")

	ErrIncomeNotFound     = errors.New("income not found")
	ErrSpendingNotFound   = errors.New("spending not found")
	ErrObligationNotFound = errors.New("obligation not found")
	ErrAssetNotFound      = errors.New("asset not found")
	ErrBudgetNotFound     = errors.New("budget not found")
	ErrDuplicateID        = errors.New("record id already exists")
	ErrUnknownAction      = errors.New("unknown action")
)

// ValidationError describes one rejected field. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
