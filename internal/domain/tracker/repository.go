package tracker

import (
	"context"

	"money-tracker-go/internal/domain/ledger"
	syncdomain "money-tracker-go/internal/domain/sync"
)

// SnapshotStore persists one snapshot per profile. Load returns
// ErrSnapshotNotFound for an unknown profile.
type SnapshotStore interface {
	Load(ctx context.Context, profileID string) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

type Remote interface {
	FetchAll(ctx context.Context, profileID string) (ledger.State, error)
	PushAll(ctx context.Context, profileID string, state ledger.State) (syncdomain.PushResult, error)
}

type PinVerifier interface {
	Verify(stored, pin string) bool
}
