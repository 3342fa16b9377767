package flows

import "context"

// LogoutDeps captures the logout flow dependencies.
type LogoutDeps struct {
	// Resolve runs the deserialization pipeline for the extracted token.
	Resolve func(ctx context.Context, token string) DeserializeResult
	// DeleteSession removes the user's session; idempotent.
	DeleteSession func(ctx context.Context, userID string) error
}

// LogoutResult reports whether a user was resolved and whether the session
// delete succeeded. Resolution failure is not an error: logging out while
// already unauthenticated is a no-op success.
type LogoutResult struct {
	Resolved       bool
	ResolveFailure DeserializeFailureKind
	UserID         string
	Err            error
}

// RunLogout resolves the current user best-effort and deletes their session.
// Cookie clearing is owned by the caller and happens regardless of outcome.
func RunLogout(ctx context.Context, token string, deps LogoutDeps) LogoutResult {
	res := deps.Resolve(ctx, token)
	if res.Failure != DeserializeFailureNone {
		return LogoutResult{ResolveFailure: res.Failure}
	}

	return LogoutResult{
		Resolved: true,
		UserID:   res.User.ID,
		Err:      deps.DeleteSession(ctx, res.User.ID),
	}
}
