package profile

import "time"

type Cache interface {
	GetByID(id string) (*Profile, bool)
	SetByID(id string, profile *Profile, ttl time.Duration)
	DeleteByID(id string)
}

type noopCache struct{}

func (noopCache) GetByID(string) (*Profile, bool) {
	return nil, false
}

func (noopCache) SetByID(string, *Profile, time.Duration) {}

func (noopCache) DeleteByID(string) {}
