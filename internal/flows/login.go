package flows

import (
	"context"
	"errors"

	"github.com/veldtec/authgate/user"
)

// LoginFailureKind classifies login failures for root-level mapping.
// UserNotFound and PasswordMismatch are distinguishable here for audit only;
// the root maps both to one invalid-credentials outcome.
type LoginFailureKind int

const (
	LoginFailureNone LoginFailureKind = iota
	LoginFailureRateLimited
	LoginFailureUserNotFound
	LoginFailurePasswordMismatch
	LoginFailureStoreUnavailable
	LoginFailureTokenSign
	LoginFailureSessionSave
)

// LoginDeps captures the login flow dependencies. The rate hooks are
// optional; a nil hook disables throttling.
type LoginDeps struct {
	CheckRate     func(ctx context.Context) error
	RecordFailure func(ctx context.Context) error
	ResetRate     func(ctx context.Context) error

	FindByEmail func(ctx context.Context, email string) (*user.User, error)
	// ComparePassword checks plain against the stored digest in constant time.
	ComparePassword func(digest, plain string) error
	SignAccess      func(userID string) (string, error)
	SignRefresh     func(userID string) (string, error)
	// SaveSession overwrites the user's session with a fresh snapshot.
	SaveSession func(ctx context.Context, u *user.User) error
}

// LoginResult carries the issued token pair or failure metadata.
type LoginResult struct {
	Failure      LoginFailureKind
	Err          error
	User         *user.User
	AccessToken  string
	RefreshToken string
}

// RunLogin verifies credentials, issues both token kinds, and overwrites the
// session. Unknown email and wrong password produce distinct failure kinds
// but must be rendered identically by the caller.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) LoginResult {
	if deps.CheckRate != nil {
		if err := deps.CheckRate(ctx); err != nil {
			return LoginResult{Failure: LoginFailureRateLimited, Err: err}
		}
	}

	recordFailure := func() {
		if deps.RecordFailure != nil {
			_ = deps.RecordFailure(ctx)
		}
	}

	u, err := deps.FindByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			recordFailure()
			return LoginResult{Failure: LoginFailureUserNotFound, Err: err}
		}
		return LoginResult{Failure: LoginFailureStoreUnavailable, Err: err}
	}

	if err := deps.ComparePassword(u.Password, password); err != nil {
		recordFailure()
		return LoginResult{Failure: LoginFailurePasswordMismatch, Err: err, User: u}
	}

	access, err := deps.SignAccess(u.ID)
	if err != nil {
		return LoginResult{Failure: LoginFailureTokenSign, Err: err, User: u}
	}
	refresh, err := deps.SignRefresh(u.ID)
	if err != nil {
		return LoginResult{Failure: LoginFailureTokenSign, Err: err, User: u}
	}

	if err := deps.SaveSession(ctx, u); err != nil {
		return LoginResult{Failure: LoginFailureSessionSave, Err: err, User: u}
	}

	if deps.ResetRate != nil {
		_ = deps.ResetRate(ctx)
	}

	return LoginResult{User: u, AccessToken: access, RefreshToken: refresh}
}
