package flows

import (
	"context"
	"errors"

	"github.com/veldtec/authgate/session"
	"github.com/veldtec/authgate/user"
)

// RefreshFailureKind classifies refresh failures for root-level mapping.
type RefreshFailureKind int

const (
	RefreshFailureNone RefreshFailureKind = iota
	RefreshFailureNoCredential
	RefreshFailureTokenInvalid
	RefreshFailureSessionExpired
	RefreshFailureSnapshotCorrupt
	RefreshFailureUserMissing
	RefreshFailureUnverified
	RefreshFailureStoreUnavailable
	RefreshFailureTokenSign
)

// RefreshDeps captures the refresh flow dependencies.
type RefreshDeps struct {
	// VerifyRefresh validates a refresh token and returns the claimed user id.
	VerifyRefresh func(token string) (string, error)
	GetSession    func(ctx context.Context, userID string) (*session.Snapshot, error)
	FindUserByID  func(ctx context.Context, id string) (*user.User, error)
	SignAccess    func(userID string) (string, error)
}

// RefreshResult carries the newly minted access token or failure metadata.
type RefreshResult struct {
	Failure     RefreshFailureKind
	Err         error
	UserID      string
	User        *user.User
	AccessToken string
}

// RunRefresh validates the refresh token, re-checks the session and
// live-user gates, and mints a new access token. The refresh token itself
// and the backing session are left untouched: no rotation, no TTL re-arm.
func RunRefresh(ctx context.Context, refreshToken string, deps RefreshDeps) RefreshResult {
	if refreshToken == "" {
		return RefreshResult{Failure: RefreshFailureNoCredential}
	}

	userID, err := deps.VerifyRefresh(refreshToken)
	if err != nil {
		return RefreshResult{Failure: RefreshFailureTokenInvalid, Err: err}
	}

	snap, err := deps.GetSession(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			return RefreshResult{Failure: RefreshFailureSessionExpired, Err: err, UserID: userID}
		case errors.Is(err, session.ErrSnapshotCorrupt):
			return RefreshResult{Failure: RefreshFailureSnapshotCorrupt, Err: err, UserID: userID}
		default:
			return RefreshResult{Failure: RefreshFailureStoreUnavailable, Err: err, UserID: userID}
		}
	}

	u, err := deps.FindUserByID(ctx, snap.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return RefreshResult{Failure: RefreshFailureUserMissing, Err: err, UserID: userID}
		}
		return RefreshResult{Failure: RefreshFailureStoreUnavailable, Err: err, UserID: userID}
	}
	if !u.Verified {
		return RefreshResult{Failure: RefreshFailureUnverified, UserID: u.ID}
	}

	access, err := deps.SignAccess(u.ID)
	if err != nil {
		return RefreshResult{Failure: RefreshFailureTokenSign, Err: err, UserID: u.ID, User: u}
	}

	return RefreshResult{UserID: u.ID, User: u, AccessToken: access}
}
