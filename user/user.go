// Package user defines the account record and the repository contract the
// auth engine depends on. Concrete adapters live under store/.
package user

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	// DefaultRole is assigned to accounts created through signup.
	DefaultRole = "user"
	// DefaultPhoto is the placeholder avatar assigned at signup.
	DefaultPhoto = "default.jpg"
)

var (
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned by Create when the email is already taken.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrUnavailable wraps backend connectivity failures.
	ErrUnavailable = errors.New("user store unavailable")
)

// User is the identity record. The password digest is never serialized to
// clients; snapshots cached in the session store are built from the other
// fields only.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Password  string    `json:"-"`
	Verified  bool      `json:"verified"`
	Photo     string    `json:"photo"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store is the repository contract for account records. Implementations must
// enforce a unique-email constraint and surface violations as
// [ErrDuplicateEmail]. Lookups return [ErrNotFound] when no record matches
// and wrap connectivity failures with [ErrUnavailable].
type Store interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) (*User, error)
}

// NormalizeEmail lower-cases and trims an email address. Every lookup and
// create path goes through this so the unique constraint is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
