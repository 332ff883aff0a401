package handler

import (
	"net/http"
	"time"

	profiledomain "money-tracker-go/internal/domain/profile"
	trackerdomain "money-tracker-go/internal/domain/tracker"
)

type loginRequest struct {
	UserID string `json:"user_id"`
	PIN    string `json:"pin"`
}

type loginResponse struct {
	Token       string                    `json:"token"`
	ExpiresAt   time.Time                 `json:"expires_at"`
	Created     bool                      `json:"created"`
	Profile     *profiledomain.Profile    `json:"profile"`
	Preferences trackerdomain.Preferences `json:"preferences"`
	Lock        trackerdomain.LockStatus  `json:"lock"`
}

type unlockRequest struct {
	PIN string `json:"pin"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Login creates the profile on first use, verifies the PIN otherwise, and
// opens an unlocked local session.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	profile, created, err := h.Profiles.Login(r.Context(), req.UserID, req.PIN)
	if err != nil {
		h.writeDomainError(w, "auth.login: login failed", err, "user_id", profiledomain.NormalizeUserID(req.UserID))
		return
	}

	snapshot, err := h.Tracker.Open(r.Context(), profile.ID, profile.PinHash, profile.Language)
	if err != nil {
		h.writeDomainError(w, "auth.login: open session failed", err, "profile_id", profile.ID)
		return
	}

	token, expiresAt, err := h.Tokens.Issue(*profile)
	if err != nil {
		h.writeDomainError(w, "auth.login: issue token failed", err, "profile_id", profile.ID)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, loginResponse{
		Token:       token,
		ExpiresAt:   expiresAt,
		Created:     created,
		Profile:     profile,
		Preferences: snapshot.Preferences,
		Lock:        snapshot.LockStatus(),
	})
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	profile, err := h.Profiles.Get(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "auth.me: get profile failed", err, "profile_id", id)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *Handlers) LockStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	status, err := h.Tracker.LockStatus(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "lock.status: failed", err, "profile_id", id)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handlers) Lock(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	status, err := h.Tracker.Lock(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "lock.lock: failed", err, "profile_id", id)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handlers) Unlock(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	var req unlockRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	status, err := h.Tracker.Unlock(r.Context(), id, req.PIN)
	if err != nil {
		h.writeDomainError(w, "lock.unlock: failed", err, "profile_id", id)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *Handlers) GetPreferences(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	preferences, err := h.Tracker.Preferences(r.Context(), id)
	if err != nil {
		h.writeDomainError(w, "preferences.get: failed", err, "profile_id", id)
		return
	}
	writeJSON(w, http.StatusOK, preferences)
}

func (h *Handlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	id, ok := profileID(w, r)
	if !ok {
		return
	}

	var req trackerdomain.Preferences
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	preferences, err := h.Tracker.SetPreferences(r.Context(), id, req)
	if err != nil {
		h.writeDomainError(w, "preferences.update: failed", err, "profile_id", id)
		return
	}
	if req.Language != "" {
		if err := h.Profiles.SetLanguage(r.Context(), id, preferences.Language); err != nil {
			h.log.Warn("preferences.update: profile language not saved", "profile_id", id, "error", err)
		}
	}
	writeJSON(w, http.StatusOK, preferences)
}
