package middleware

import (
	"context"
	"errors"
	"net/http"

	trackerdomain "money-tracker-go/internal/domain/tracker"
	"money-tracker-go/pkg/logger"
)

type LockChecker interface {
	LockStatus(ctx context.Context, profileID string) (trackerdomain.LockStatus, error)
}

// NewLockGate rejects requests of a locked session with 423. It must run
// after TokenAuth.
func NewLockGate(checker LockChecker, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			profileID, ok := ProfileIDFromContext(r.Context())
			if !ok {
				unauthorized(w)
				return
			}

			status, err := checker.LockStatus(r.Context(), profileID)
			if err != nil {
				if errors.Is(err, trackerdomain.ErrSessionNotFound) {
					writeError(w, http.StatusUnauthorized, "session_not_found", "session not found, login again")
					return
				}
				log.InternalError("lock.gate: lock status failed", err, "profile_id", profileID)
				writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
				return
			}
			if status.Locked {
				writeError(w, http.StatusLocked, "locked", "session is locked")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
