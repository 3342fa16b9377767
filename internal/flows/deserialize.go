// Package flows holds the pure flow logic behind the engine operations:
// ordered gates, dependency structs, and failure kinds. Failure kinds stay
// distinguishable here for audit and metrics; the root package collapses
// them into the wire-facing error set.
package flows

import (
	"context"
	"errors"

	"github.com/veldtec/authgate/session"
	"github.com/veldtec/authgate/user"
)

// DeserializeFailureKind classifies deserialization pipeline failures for
// root-level mapping.
type DeserializeFailureKind int

const (
	DeserializeFailureNone DeserializeFailureKind = iota
	DeserializeFailureNoCredential
	DeserializeFailureTokenInvalid
	DeserializeFailureSessionExpired
	DeserializeFailureSnapshotCorrupt
	DeserializeFailureUserMissing
	DeserializeFailureUnverified
	DeserializeFailureStoreUnavailable
)

// DeserializeDeps captures the pipeline dependencies.
type DeserializeDeps struct {
	// VerifyAccess validates an access token and returns the claimed user id.
	VerifyAccess func(token string) (string, error)
	// GetSession loads the live snapshot for a user id.
	GetSession func(ctx context.Context, userID string) (*session.Snapshot, error)
	// FindUserByID fetches the live user record, hidden fields included.
	FindUserByID func(ctx context.Context, id string) (*user.User, error)
}

// DeserializeResult carries the resolved live user or failure metadata.
type DeserializeResult struct {
	Failure DeserializeFailureKind
	Err     error
	UserID  string
	User    *user.User
}

// RunDeserialize resolves the current user from an extracted access token.
// Each step is a hard gate: the first failure aborts with no partial result.
// The returned user is the live record, not the cached snapshot; only the
// embedded user id is taken from the snapshot.
func RunDeserialize(ctx context.Context, token string, deps DeserializeDeps) DeserializeResult {
	if token == "" {
		return DeserializeResult{Failure: DeserializeFailureNoCredential}
	}

	userID, err := deps.VerifyAccess(token)
	if err != nil {
		return DeserializeResult{Failure: DeserializeFailureTokenInvalid, Err: err}
	}

	snap, err := deps.GetSession(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			return DeserializeResult{Failure: DeserializeFailureSessionExpired, Err: err, UserID: userID}
		case errors.Is(err, session.ErrSnapshotCorrupt):
			return DeserializeResult{Failure: DeserializeFailureSnapshotCorrupt, Err: err, UserID: userID}
		default:
			return DeserializeResult{Failure: DeserializeFailureStoreUnavailable, Err: err, UserID: userID}
		}
	}

	u, err := deps.FindUserByID(ctx, snap.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return DeserializeResult{Failure: DeserializeFailureUserMissing, Err: err, UserID: userID}
		}
		return DeserializeResult{Failure: DeserializeFailureStoreUnavailable, Err: err, UserID: userID}
	}
	if !u.Verified {
		return DeserializeResult{Failure: DeserializeFailureUnverified, UserID: u.ID}
	}

	return DeserializeResult{UserID: u.ID, User: u}
}
