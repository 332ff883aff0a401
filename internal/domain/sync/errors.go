package sync

import "errors"

var (
	ErrProfileRequired = errors.New("profile id is required")
	ErrDuplicateID     = errors.New("duplicate record id in collection")
)
