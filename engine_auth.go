package authgate

import (
	"context"
	"net/http"

	"github.com/veldtec/authgate/internal/flows"
	"github.com/veldtec/authgate/jwt"
	"github.com/veldtec/authgate/user"
)

// Login verifies the email/password pair, mints both tokens, overwrites the
// user's session, and writes the three auth cookies. The returned string is
// the access token for clients that prefer the bearer header over cookies.
//
// Unknown email and wrong password both return [ErrInvalidCredentials]; the
// distinction survives only in audit events. With the throttle enabled an
// exhausted attempt budget returns [ErrLoginRateLimited] before any
// credential work happens.
func (e *Engine) Login(ctx context.Context, email, password string, w http.ResponseWriter) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}

	normalized := user.NormalizeEmail(email)
	ip := clientIPFromContext(ctx)

	deps := flows.LoginDeps{
		FindByEmail: e.users.FindByEmail,
		ComparePassword: func(digest, plain string) error {
			return e.passwords.Compare(digest, plain)
		},
		SignAccess: func(userID string) (string, error) {
			return e.tokens.Sign(jwt.KindAccess, userID)
		},
		SignRefresh: func(userID string) (string, error) {
			return e.tokens.Sign(jwt.KindRefresh, userID)
		},
		SaveSession: func(ctx context.Context, u *user.User) error {
			snap := e.snapshotOf(u)
			return e.sessions.Put(ctx, u.ID, &snap, e.sessionTTL())
		},
	}
	if e.limiter != nil {
		deps.CheckRate = func(ctx context.Context) error {
			return e.limiter.CheckLogin(ctx, normalized, ip)
		}
		deps.RecordFailure = func(ctx context.Context) error {
			return e.limiter.RecordFailure(ctx, normalized, ip)
		}
		deps.ResetRate = func(ctx context.Context) error {
			return e.limiter.Reset(ctx, normalized, ip)
		}
	}

	result := flows.RunLogin(ctx, normalized, password, deps)

	switch result.Failure {
	case flows.LoginFailureNone:
	case flows.LoginFailureRateLimited:
		e.metrics.incLoginRateLimited()
		e.emitAudit(ctx, auditEventLoginRateLimited, "", normalized, false, ErrLoginRateLimited)
		return "", ErrLoginRateLimited
	case flows.LoginFailureUserNotFound, flows.LoginFailurePasswordMismatch:
		e.metrics.incLoginFailure()
		e.emitAudit(ctx, auditEventLoginFailure, "", normalized, false, result.Err)
		return "", ErrInvalidCredentials
	case flows.LoginFailureTokenSign:
		e.emitAudit(ctx, auditEventLoginFailure, result.User.ID, normalized, false, result.Err)
		return "", result.Err
	default:
		e.metrics.incLoginFailure()
		e.emitAudit(ctx, auditEventLoginFailure, "", normalized, false, result.Err)
		return "", ErrStoreUnavailable
	}

	e.setLoginCookies(w, result.AccessToken, result.RefreshToken)
	e.metrics.incLoginSuccess()
	e.emitAudit(ctx, auditEventLoginSuccess, result.User.ID, normalized, true, nil)

	return result.AccessToken, nil
}

// CurrentUser resolves the authenticated user for a request: extract the
// access token (bearer header first, access_token cookie second), verify it,
// require a live session, and reload the user record. The returned user is
// the live record; session data only contributes the user id.
//
// Returns [ErrNoCredential], [ErrTokenInvalid], [ErrSessionExpired],
// [ErrUserGone], or [ErrStoreUnavailable].
func (e *Engine) CurrentUser(ctx context.Context, r *http.Request) (*User, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	token, _ := TokenFromRequest(r)
	result := e.resolve(ctx, token)
	if result.Failure != flows.DeserializeFailureNone {
		err := e.deserializeError(result.Failure)
		e.emitAudit(ctx, auditEventResolveFailure, result.UserID, "", false, err)
		return nil, err
	}

	return result.User, nil
}

// resolve runs the deserialization pipeline against the engine's stores.
func (e *Engine) resolve(ctx context.Context, token string) flows.DeserializeResult {
	return flows.RunDeserialize(ctx, token, flows.DeserializeDeps{
		VerifyAccess: func(token string) (string, error) {
			claims, err := e.tokens.Verify(jwt.KindAccess, token)
			if err != nil {
				return "", err
			}
			return claims.UserID, nil
		},
		GetSession:   e.sessions.Get,
		FindUserByID: e.users.FindByID,
	})
}

// deserializeError collapses pipeline failure kinds into the wire-facing
// error set. A corrupt snapshot reads as an expired session; an unverified
// user reads the same as a deleted one.
func (e *Engine) deserializeError(kind flows.DeserializeFailureKind) error {
	switch kind {
	case flows.DeserializeFailureNoCredential:
		return ErrNoCredential
	case flows.DeserializeFailureTokenInvalid:
		e.metrics.incTokenInvalid()
		return ErrTokenInvalid
	case flows.DeserializeFailureSessionExpired, flows.DeserializeFailureSnapshotCorrupt:
		e.metrics.incSessionExpired()
		return ErrSessionExpired
	case flows.DeserializeFailureUserMissing, flows.DeserializeFailureUnverified:
		return ErrUserGone
	default:
		return ErrStoreUnavailable
	}
}

// Refresh mints a new access token from the refresh cookie and rewrites the
// access_token and logged_in cookies. The refresh token is not rotated and
// the session keeps its remaining TTL: refresh extends access only up to the
// session's fixed lifetime.
//
// Returns [ErrNoCredential] when the cookie is absent, [ErrTokenInvalid],
// [ErrSessionExpired], [ErrUserGone], or [ErrStoreUnavailable].
func (e *Engine) Refresh(ctx context.Context, r *http.Request, w http.ResponseWriter) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}

	token, _ := RefreshTokenFromRequest(r)
	result := flows.RunRefresh(ctx, token, flows.RefreshDeps{
		VerifyRefresh: func(token string) (string, error) {
			claims, err := e.tokens.Verify(jwt.KindRefresh, token)
			if err != nil {
				return "", err
			}
			return claims.UserID, nil
		},
		GetSession:   e.sessions.Get,
		FindUserByID: e.users.FindByID,
		SignAccess: func(userID string) (string, error) {
			return e.tokens.Sign(jwt.KindAccess, userID)
		},
	})

	if result.Failure != flows.RefreshFailureNone {
		var err error
		if result.Failure == flows.RefreshFailureTokenSign {
			err = result.Err
		} else {
			err = e.deserializeError(refreshToDeserializeFailure(result.Failure))
		}
		e.metrics.incRefreshFailure()
		e.emitAudit(ctx, auditEventRefreshFailure, result.UserID, "", false, err)
		return "", err
	}

	e.setRefreshCookies(w, result.AccessToken)
	e.metrics.incRefreshSuccess()
	e.emitAudit(ctx, auditEventRefreshSuccess, result.UserID, result.User.Email, true, nil)

	return result.AccessToken, nil
}

func refreshToDeserializeFailure(kind flows.RefreshFailureKind) flows.DeserializeFailureKind {
	switch kind {
	case flows.RefreshFailureNoCredential:
		return flows.DeserializeFailureNoCredential
	case flows.RefreshFailureTokenInvalid:
		return flows.DeserializeFailureTokenInvalid
	case flows.RefreshFailureSessionExpired:
		return flows.DeserializeFailureSessionExpired
	case flows.RefreshFailureSnapshotCorrupt:
		return flows.DeserializeFailureSnapshotCorrupt
	case flows.RefreshFailureUserMissing:
		return flows.DeserializeFailureUserMissing
	case flows.RefreshFailureUnverified:
		return flows.DeserializeFailureUnverified
	default:
		return flows.DeserializeFailureStoreUnavailable
	}
}

// Logout clears the three auth cookies unconditionally, then best-effort
// resolves the caller and deletes their session. Logging out while already
// unauthenticated is a no-op success. Only a store failure while deleting a
// resolved session surfaces as an error; the cookies are gone either way.
func (e *Engine) Logout(ctx context.Context, r *http.Request, w http.ResponseWriter) error {
	if e == nil {
		return ErrEngineNotReady
	}

	e.clearAuthCookies(w)

	token, _ := TokenFromRequest(r)
	result := flows.RunLogout(ctx, token, flows.LogoutDeps{
		Resolve:       e.resolve,
		DeleteSession: e.sessions.Delete,
	})

	if !result.Resolved {
		e.metrics.incLogout()
		e.emitAudit(ctx, auditEventLogout, "", "", true, nil)
		return nil
	}
	if result.Err != nil {
		e.emitAudit(ctx, auditEventLogout, result.UserID, "", false, result.Err)
		return ErrStoreUnavailable
	}

	e.metrics.incLogout()
	e.emitAudit(ctx, auditEventLogout, result.UserID, "", true, nil)

	return nil
}
