package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const defaultCacheTTL = 5 * time.Minute

type Service struct {
	repo     Repository
	verifier PinVerifier
	cache    Cache
	cacheTTL time.Duration
	newID    func() string
}

func NewService(repo Repository, verifier PinVerifier) *Service {
	return NewServiceWithCache(repo, verifier, noopCache{}, 0)
}

func NewServiceWithCache(repo Repository, verifier PinVerifier, cache Cache, ttl time.Duration) *Service {
	if verifier == nil {
		verifier = PlainVerifier{}
	}
	if cache == nil {
		cache = noopCache{}
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Service{
		repo:     repo,
		verifier: verifier,
		cache:    cache,
		cacheTTL: ttl,
		newID:    uuid.NewString,
	}
}

func NormalizeUserID(userID string) string {
	return strings.ToLower(strings.TrimSpace(userID))
}

// Login finds the profile by normalized user id and checks the PIN, or
// creates the profile with this PIN when none exists. created reports the
// latter.
func (s *Service) Login(ctx context.Context, userID, pin string) (*Profile, bool, error) {
	userID = NormalizeUserID(userID)
	if userID == "" {
		return nil, false, ErrInvalidCredentials
	}

	existing, err := s.repo.GetByUserIDText(ctx, userID)
	if err == nil {
		if !s.verifier.Verify(existing.PinHash, pin) {
			return nil, false, ErrWrongPIN
		}
		return existing, false, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, false, fmt.Errorf("find profile: %w", err)
	}

	hash, err := s.verifier.Hash(pin)
	if err != nil {
		return nil, false, err
	}
	created := &Profile{
		ID:         s.newID(),
		UserIDText: userID,
		PinHash:    hash,
	}
	if err := s.repo.Create(ctx, created); err != nil {
		if errors.Is(err, ErrProfileExists) {
			// lost a race with a concurrent first login; verify against the winner
			return s.verifyExisting(ctx, userID, pin)
		}
		return nil, false, fmt.Errorf("create profile: %w", err)
	}
	return created, true, nil
}

func (s *Service) verifyExisting(ctx context.Context, userID, pin string) (*Profile, bool, error) {
	existing, err := s.repo.GetByUserIDText(ctx, userID)
	if err != nil {
		return nil, false, fmt.Errorf("find profile: %w", err)
	}
	if !s.verifier.Verify(existing.PinHash, pin) {
		return nil, false, ErrWrongPIN
	}
	return existing, false, nil
}

// Get reads a profile through the cache. Cached copies are returned by value
// so callers cannot mutate the cached entry.
func (s *Service) Get(ctx context.Context, id string) (*Profile, error) {
	if cached, ok := s.cache.GetByID(id); ok {
		return cached, nil
	}

	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetByID(id, profile, s.cacheTTL)
	return profile, nil
}

func (s *Service) SetLanguage(ctx context.Context, id, language string) error {
	language = strings.TrimSpace(language)
	var value *string
	if language != "" {
		value = &language
	}
	if err := s.repo.UpdateLanguage(ctx, id, value); err != nil {
		return err
	}
	s.cache.DeleteByID(id)
	return nil
}
