package handler

import (
	"errors"
	"net/http"
	"time"

	"money-tracker-go/internal/domain/ledger"
	syncdomain "money-tracker-go/internal/domain/sync"
	trackerdomain "money-tracker-go/internal/domain/tracker"
)

type pushResponse struct {
	Reports    []syncdomain.Report `json:"reports"`
	DurationMS int64               `json:"duration_ms"`
}

type pullResponse struct {
	Records    ledger.State `json:"records"`
	DurationMS int64        `json:"duration_ms"`
}

func (h *Handlers) SyncPush(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	startedAt := time.Now()
	result, err := h.Tracker.Push(r.Context(), id)
	if err != nil {
		h.writeSyncError(w, "sync.push", err, id)
		return
	}

	h.log.Info("sync.push: completed", "profile_id", id, "collections", len(result.Reports), "duration_ms", time.Since(startedAt).Milliseconds())
	writeJSON(w, http.StatusOK, pushResponse{Reports: result.Reports, DurationMS: time.Since(startedAt).Milliseconds()})
}

func (h *Handlers) SyncPull(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	startedAt := time.Now()
	records, err := h.Tracker.Pull(r.Context(), id)
	if err != nil {
		h.writeSyncError(w, "sync.pull", err, id)
		return
	}

	h.log.Info("sync.pull: completed", "profile_id", id, "duration_ms", time.Since(startedAt).Milliseconds())
	writeJSON(w, http.StatusOK, pullResponse{Records: records, DurationMS: time.Since(startedAt).Milliseconds()})
}

func (h *Handlers) SyncStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	status, err := h.Tracker.SyncStatus(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "sync.status: failed", err, "profile_id", id)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// writeSyncError surfaces remote failures with their message. Session
// errors keep their usual mapping.
func (h *Handlers) writeSyncError(w http.ResponseWriter, op string, err error, profileID string) {
	switch {
	case errors.Is(err, trackerdomain.ErrLocked),
		errors.Is(err, trackerdomain.ErrSessionNotFound),
		errors.Is(err, ledger.ErrValidation):
		h.writeDomainError(w, op+": failed", err, "profile_id", profileID)
	default:
		h.log.BusinessError(op+": remote failed", err, "profile_id", profileID)
		writeError(w, http.StatusBadGateway, "sync_failed", err.Error())
	}
}
