package flows

import (
	"context"
	"errors"

	"github.com/veldtec/authgate/user"
)

// SignupFailureKind classifies signup failures for root-level mapping.
type SignupFailureKind int

const (
	SignupFailureNone SignupFailureKind = iota
	SignupFailurePasswordMismatch
	SignupFailureHash
	SignupFailureDuplicateEmail
	SignupFailureStoreUnavailable
)

// SignupInput is the raw registration payload. The confirmation value is
// checked and then discarded; it is never persisted.
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// SignupDeps captures the signup flow dependencies.
type SignupDeps struct {
	HashPassword func(plain string) (string, error)
	CreateUser   func(ctx context.Context, u *user.User) (*user.User, error)
}

// SignupResult carries the created record or failure metadata.
type SignupResult struct {
	Failure SignupFailureKind
	Err     error
	User    *user.User
}

// RunSignup hashes the password, strips the confirmation value, and persists
// the record with defaults applied. The digest is computed before the write
// so plaintext never reaches the store.
func RunSignup(ctx context.Context, input SignupInput, deps SignupDeps) SignupResult {
	if input.Password != input.PasswordConfirm {
		return SignupResult{Failure: SignupFailurePasswordMismatch}
	}

	digest, err := deps.HashPassword(input.Password)
	if err != nil {
		return SignupResult{Failure: SignupFailureHash, Err: err}
	}

	created, err := deps.CreateUser(ctx, &user.User{
		Name:     input.Name,
		Email:    user.NormalizeEmail(input.Email),
		Password: digest,
		Role:     user.DefaultRole,
		Photo:    user.DefaultPhoto,
		Verified: true,
	})
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return SignupResult{Failure: SignupFailureDuplicateEmail, Err: err}
		}
		return SignupResult{Failure: SignupFailureStoreUnavailable, Err: err}
	}

	return SignupResult{User: created}
}
