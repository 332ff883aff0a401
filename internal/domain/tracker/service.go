package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"money-tracker-go/internal/domain/ledger"
	syncdomain "money-tracker-go/internal/domain/sync"
	"money-tracker-go/pkg/logger"
)

type session struct {
	mu         sync.Mutex
	snapshot   Snapshot
	syncing    bool
	lastPushAt *time.Time
	lastPullAt *time.Time
	lastError  string
}

// Service owns the local state of every open profile. All mutations of a
// profile go through Dispatch and are serialized per session.
type Service struct {
	reducer  ledger.Reducer
	store    SnapshotStore
	remote   Remote
	pins     PinVerifier
	defaults Preferences
	log      logger.Logger

	mu       sync.Mutex
	sessions map[string]*session

	newID func() string
	now   func() time.Time
}

func NewService(reducer ledger.Reducer, store SnapshotStore, remote Remote, pins PinVerifier, defaults Preferences, log logger.Logger) *Service {
	return &Service{
		reducer:  reducer,
		store:    store,
		remote:   remote,
		pins:     pins,
		defaults: defaults,
		log:      log,
		sessions: make(map[string]*session),
		newID:    uuid.NewString,
		now:      time.Now,
	}
}

// Open starts or resumes the session of a freshly authenticated profile. The
// stored PIN is refreshed from the profile and the session is unlocked.
func (s *Service) Open(ctx context.Context, profileID, pinHash string, language *string) (Snapshot, error) {
	s.mu.Lock()
	current, ok := s.sessions[profileID]
	s.mu.Unlock()

	if !ok {
		snapshot, err := s.store.Load(ctx, profileID)
		switch {
		case errors.Is(err, ErrSnapshotNotFound):
			snapshot = Snapshot{
				Version:     SnapshotVersion,
				ProfileID:   profileID,
				Preferences: s.defaults,
				Records:     ledger.NewState(),
			}
			if language != nil && *language != "" {
				snapshot.Preferences.Language = *language
			}
		case err != nil:
			return Snapshot{}, fmt.Errorf("load snapshot: %w", err)
		}
		current = s.register(profileID, snapshot)
	}

	current.mu.Lock()
	defer current.mu.Unlock()

	next := current.snapshot
	next.PinHash = pinHash
	next.Locked = false
	if err := s.persist(ctx, current, next); err != nil {
		return Snapshot{}, err
	}
	return current.snapshot, nil
}

// register stores a session unless another goroutine got there first.
func (s *Service) register(profileID string, snapshot Snapshot) *session {
	snapshot.Records = snapshot.Records.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.sessions[profileID]; ok {
		return existing
	}
	created := &session{snapshot: snapshot}
	s.sessions[profileID] = created
	return created
}

// session returns the live session, rehydrating it from the snapshot store.
// A rehydrated session with a PIN starts locked.
func (s *Service) session(ctx context.Context, profileID string) (*session, error) {
	s.mu.Lock()
	current, ok := s.sessions[profileID]
	s.mu.Unlock()
	if ok {
		return current, nil
	}

	snapshot, err := s.store.Load(ctx, profileID)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	snapshot.Locked = snapshot.HasPIN()
	return s.register(profileID, snapshot), nil
}

func (s *Service) persist(ctx context.Context, current *session, next Snapshot) error {
	next.Version = SnapshotVersion
	next.SavedAt = s.now().UTC()
	if err := s.store.Save(ctx, next); err != nil {
		s.log.InternalError("tracker.persist: save snapshot failed", err, "profile_id", next.ProfileID)
		return fmt.Errorf("save snapshot: %w", err)
	}
	current.snapshot = next
	return nil
}

func (s *Service) Records(ctx context.Context, profileID string) (ledger.State, error) {
	current, err := s.session(ctx, profileID)
	if err != nil {
		return ledger.State{}, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()
	if current.snapshot.Locked {
		return ledger.State{}, ErrLocked
	}
	return current.snapshot.Records, nil
}

// Dispatch applies one action atomically: the new state is persisted and
// becomes visible only if both the reducer and the snapshot write succeed.
func (s *Service) Dispatch(ctx context.Context, profileID string, action ledger.Action) (ledger.State, error) {
	current, err := s.session(ctx, profileID)
	if err != nil {
		return ledger.State{}, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()
	if current.snapshot.Locked {
		return ledger.State{}, ErrLocked
	}

	records, err := s.reducer.Reduce(current.snapshot.Records, s.stamp(action))
	if err != nil {
		return current.snapshot.Records, err
	}

	next := current.snapshot
	next.Records = records
	if err := s.persist(ctx, current, next); err != nil {
		return current.snapshot.Records, err
	}

	s.log.Debug("action applied", "profile_id", profileID, "action", action.Name())
	return records, nil
}

// stamp assigns the id of new records and fills in their creation time.
func (s *Service) stamp(action ledger.Action) ledger.Action {
	now := s.now().UTC()
	switch a := action.(type) {
	case ledger.AddIncome:
		a.Income.ID = s.newID()
		if a.Income.CreatedAt.IsZero() {
			a.Income.CreatedAt = now
		}
		return a
	case ledger.AddSpending:
		a.Spending.ID = s.newID()
		if a.Spending.CreatedAt.IsZero() {
			a.Spending.CreatedAt = now
		}
		return a
	case ledger.AddObligation:
		a.Obligation.ID = s.newID()
		if a.Obligation.CreatedAt.IsZero() {
			a.Obligation.CreatedAt = now
		}
		return a
	case ledger.AddAsset:
		a.Asset.ID = s.newID()
		if a.Asset.CreatedAt.IsZero() {
			a.Asset.CreatedAt = now
		}
		return a
	case ledger.AddBudget:
		a.Budget.ID = s.newID()
		return a
	default:
		return action
	}
}

func (s *Service) LockStatus(ctx context.Context, profileID string) (LockStatus, error) {
	current, err := s.session(ctx, profileID)
	if err != nil {
		return LockStatus{}, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()
	return current.snapshot.LockStatus(), nil
}

// Lock is a no-op for a profile without a PIN.
func (s *Service) Lock(ctx context.Context, profileID string) (LockStatus, error) {
	current, err := s.session(ctx, profileID)
	if err != nil {
		return LockStatus{}, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()
	if !current.snapshot.HasPIN() || current.snapshot.Locked {
		return current.snapshot.LockStatus(), nil
	}

	next := current.snapshot
	next.Locked = true
	if err := s.persist(ctx, current, next); err != nil {
		return LockStatus{}, err
	}
	return current.snapshot.LockStatus(), nil
}

// Unlock always succeeds for a profile without a PIN.
func (s *Service) Unlock(ctx context.Context, profileID, pin string) (LockStatus, error) {
	current, err := s.session(ctx, profileID)
	if err != nil {
		return LockStatus{}, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()
	if !s.acceptsPIN(current.snapshot, pin) {
		return current.snapshot.LockStatus(), ErrWrongPIN
	}
	if !current.snapshot.Locked {
		return current.snapshot.LockStatus(), nil
	}

	next := current.snapshot
	next.Locked = false
	if err := s.persist(ctx, current, next); err != nil {
		return LockStatus{}, err
	}
	return current.snapshot.LockStatus(), nil
}

// acceptsPIN is true for a matching PIN, and for any PIN when none is set.
func (s *Service) acceptsPIN(snapshot Snapshot, pin string) bool {
	if !snapshot.HasPIN() {
		return true
	}
	return s.pins.Verify(snapshot.PinHash, pin)
}

func (s *Service) Preferences(ctx context.Context, profileID string) (Preferences, error) {
	current, err := s.session(ctx, profileID)
	if err != nil {
		return Preferences{}, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()
	return current.snapshot.Preferences, nil
}

func (s *Service) SetPreferences(ctx context.Context, profileID string, preferences Preferences) (Preferences, error) {
	current, err := s.session(ctx, profileID)
	if err != nil {
		return Preferences{}, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()
	if current.snapshot.Locked {
		return Preferences{}, ErrLocked
	}

	next := current.snapshot
	next.Preferences = mergePreferences(next.Preferences, preferences)
	if err := s.persist(ctx, current, next); err != nil {
		return Preferences{}, err
	}
	return current.snapshot.Preferences, nil
}

func mergePreferences(current, update Preferences) Preferences {
	if value := strings.TrimSpace(update.Language); value != "" {
		current.Language = value
	}
	if value := strings.TrimSpace(update.Currency); value != "" {
		current.Currency = strings.ToUpper(value)
	}
	if value := strings.TrimSpace(update.Theme); value != "" {
		current.Theme = value
	}
	return current
}

// Push mirrors the local records to the remote store. Local state is never
// rolled back when the remote call fails.
func (s *Service) Push(ctx context.Context, profileID string) (syncdomain.PushResult, error) {
	current, records, err := s.beginSync(ctx, profileID)
	if err != nil {
		return syncdomain.PushResult{}, err
	}

	result, pushErr := s.remote.PushAll(ctx, profileID, records)

	current.mu.Lock()
	defer current.mu.Unlock()
	current.syncing = false
	if pushErr != nil {
		current.lastError = pushErr.Error()
		s.log.BusinessError("tracker.push: remote push failed", pushErr, "profile_id", profileID)
		return result, pushErr
	}
	pushedAt := s.now().UTC()
	current.lastPushAt = &pushedAt
	current.lastError = ""
	return result, nil
}

// Pull replaces the four mirrored collections with the remote copy. Budgets
// stay local.
func (s *Service) Pull(ctx context.Context, profileID string) (ledger.State, error) {
	current, _, err := s.beginSync(ctx, profileID)
	if err != nil {
		return ledger.State{}, err
	}

	remote, pullErr := s.remote.FetchAll(ctx, profileID)

	current.mu.Lock()
	defer current.mu.Unlock()
	current.syncing = false
	if pullErr != nil {
		current.lastError = pullErr.Error()
		s.log.BusinessError("tracker.pull: remote fetch failed", pullErr, "profile_id", profileID)
		return current.snapshot.Records, pullErr
	}

	records, err := s.reducer.Reduce(current.snapshot.Records, ledger.ReplaceRecords{Records: remote})
	if err != nil {
		return current.snapshot.Records, err
	}
	next := current.snapshot
	next.Records = records
	if err := s.persist(ctx, current, next); err != nil {
		current.lastError = err.Error()
		return current.snapshot.Records, err
	}

	pulledAt := s.now().UTC()
	current.lastPullAt = &pulledAt
	current.lastError = ""
	return records, nil
}

func (s *Service) beginSync(ctx context.Context, profileID string) (*session, ledger.State, error) {
	current, err := s.session(ctx, profileID)
	if err != nil {
		return nil, ledger.State{}, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()
	if current.snapshot.Locked {
		return nil, ledger.State{}, ErrLocked
	}
	current.syncing = true
	return current, current.snapshot.Records, nil
}

func (s *Service) SyncStatus(ctx context.Context, profileID string) (SyncStatus, error) {
	current, err := s.session(ctx, profileID)
	if err != nil {
		return SyncStatus{}, err
	}

	current.mu.Lock()
	defer current.mu.Unlock()
	return SyncStatus{
		Syncing:    current.syncing,
		LastPushAt: current.lastPushAt,
		LastPullAt: current.lastPullAt,
		LastError:  current.lastError,
	}, nil
}
