package profile

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPIN           = errors.New("wrong pin")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrProfileExists      = errors.New("profile already exists")
	ErrInvalidToken       = errors.New("invalid token")
)
