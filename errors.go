package authgate

import "errors"

var (
	// ErrNoCredential means no access token was found on the request.
	ErrNoCredential = errors.New("no access token found")
	// ErrTokenInvalid covers every token verification failure: malformed,
	// tampered, wrong kind, or expired. Deliberately indistinguishable.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrSessionExpired means the token verified but no live session backs it.
	ErrSessionExpired = errors.New("session has expired")
	// ErrUserGone means the user behind a valid session no longer exists or
	// is no longer verified.
	ErrUserGone = errors.New("the user belonging to this token no longer exists")
	// ErrInvalidCredentials is the single login failure outcome for both
	// unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateEmail is the domain-level outcome of the unique-email
	// constraint on signup.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrPasswordMismatch is returned by signup when the confirmation value
	// does not match the password.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrLoginRateLimited signals an exhausted login attempt budget.
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrConfig signals absent or malformed configuration, including key
	// material that does not decode.
	ErrConfig = errors.New("invalid configuration")
	// ErrStoreUnavailable signals a session-store or user-store connectivity
	// failure. Terminal for the request; never retried internally.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrEngineNotReady is returned when an Engine is used before Build.
	ErrEngineNotReady = errors.New("engine not initialized")
)
