package tracker

import "errors"

var (
	ErrLocked           = errors.New("session is locked")
	ErrWrongPIN         = errors.New("wrong pin")
	ErrSessionNotFound  = errors.New("session not found")
	ErrSnapshotNotFound = errors.New("snapshot not found")
)
