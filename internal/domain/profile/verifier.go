package profile

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PinVerifier turns a PIN into its stored form and checks a PIN against it.
type PinVerifier interface {
	Hash(pin string) (string, error)
	Verify(stored, pin string) bool
}

// PlainVerifier stores the PIN as is and compares by equality.
type PlainVerifier struct{}

func (PlainVerifier) Hash(pin string) (string, error) {
	return pin, nil
}

func (PlainVerifier) Verify(stored, pin string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(pin)) == 1
}

type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Hash(pin string) (string, error) {
	if pin == "" {
		return "", nil
	}
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), cost)
	if err != nil {
		return "", fmt.Errorf("hash pin: %w", err)
	}
	return string(hash), nil
}

func (v BcryptVerifier) Verify(stored, pin string) bool {
	if stored == "" {
		return pin == ""
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pin)) == nil
}
