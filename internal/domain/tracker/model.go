package tracker

import (
	"time"

	"money-tracker-go/internal/domain/ledger"
)

const SnapshotVersion = 1

type Preferences struct {
	Language string `json:"language"`
	Currency string `json:"currency"`
	Theme    string `json:"theme"`
}

// Snapshot is everything a profile keeps locally: records, PIN, lock flag
// and UI preferences.
type Snapshot struct {
	Version     int          `json:"version"`
	ProfileID   string       `json:"profile_id"`
	PinHash     string       `json:"pin"`
	Locked      bool         `json:"locked"`
	Preferences Preferences  `json:"preferences"`
	Records     ledger.State `json:"records"`
	SavedAt     time.Time    `json:"saved_at"`
}

func (s Snapshot) HasPIN() bool {
	return s.PinHash != ""
}

func (s Snapshot) LockStatus() LockStatus {
	return LockStatus{Locked: s.Locked, HasPIN: s.HasPIN()}
}

type LockStatus struct {
	Locked bool `json:"locked"`
	HasPIN bool `json:"has_pin"`
}

type SyncStatus struct {
	Syncing    bool       `json:"syncing"`
	LastPushAt *time.Time `json:"last_push_at,omitempty"`
	LastPullAt *time.Time `json:"last_pull_at,omitempty"`
	LastError  string     `json:"last_error,omitempty"`
}
