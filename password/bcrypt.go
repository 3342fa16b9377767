// Package password wraps bcrypt hashing with a configurable cost factor.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch is returned by Compare when the password does not match the
// stored digest.
var ErrMismatch = errors.New("password mismatch")

// Hasher hashes and compares passwords with bcrypt.
type Hasher struct {
	cost int
}

// NewHasher validates the cost factor and returns a Hasher. A zero cost
// selects bcrypt's default.
func NewHasher(cost int) (*Hasher, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost out of range")
	}
	return &Hasher{cost: cost}, nil
}

// Hash generates a digest for the plaintext password.
func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password is empty")
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Compare checks the plaintext password against a stored digest in constant
// time. Returns [ErrMismatch] on any mismatch or undecodable digest.
func (h *Hasher) Compare(digest, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)); err != nil {
		return ErrMismatch
	}
	return nil
}
