package inmemory

import (
	"context"
	"sync"
	"time"

	profiledomain "money-tracker-go/internal/domain/profile"
)

// ProfileRepository backs profiles in memory for STORE_DRIVER=memory.
type ProfileRepository struct {
	mu       sync.RWMutex
	byID     map[string]profiledomain.Profile
	byUserID map[string]string
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		byID:     make(map[string]profiledomain.Profile),
		byUserID: make(map[string]string),
	}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*profiledomain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.byID[id]
	if !ok {
		return nil, profiledomain.ErrProfileNotFound
	}
	return &profile, nil
}

func (r *ProfileRepository) GetByUserIDText(ctx context.Context, userIDText string) (*profiledomain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUserID[userIDText]
	if !ok {
		return nil, profiledomain.ErrProfileNotFound
	}
	profile := r.byID[id]
	return &profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile *profiledomain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUserID[profile.UserIDText]; ok {
		return profiledomain.ErrProfileExists
	}
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	r.byID[profile.ID] = *profile
	r.byUserID[profile.UserIDText] = profile.ID
	return nil
}

func (r *ProfileRepository) UpdateLanguage(ctx context.Context, id string, language *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.byID[id]
	if !ok {
		return profiledomain.ErrProfileNotFound
	}
	profile.Language = language
	profile.UpdatedAt = time.Now().UTC()
	r.byID[id] = profile
	return nil
}
