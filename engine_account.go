package authgate

import (
	"context"

	"github.com/veldtec/authgate/internal/flows"
	"github.com/veldtec/authgate/user"
)

// Signup registers a new account. The password is bcrypt-hashed before it
// reaches the user store and the confirmation value is discarded after the
// equality check. Signup never logs the user in; a created account still
// goes through [Engine.Login] for its first session.
//
// Returns [ErrPasswordMismatch], [ErrDuplicateEmail], or
// [ErrStoreUnavailable] on failure.
func (e *Engine) Signup(ctx context.Context, input SignupInput) (*User, error) {
	if e == nil {
		return nil, ErrEngineNotReady
	}

	result := flows.RunSignup(ctx, flows.SignupInput{
		Name:            input.Name,
		Email:           input.Email,
		Password:        input.Password,
		PasswordConfirm: input.PasswordConfirm,
	}, flows.SignupDeps{
		HashPassword: e.passwords.Hash,
		CreateUser:   e.users.Create,
	})

	if result.Failure != flows.SignupFailureNone {
		err := e.signupError(result.Failure)
		e.metrics.incSignupFailure()
		e.emitAudit(ctx, auditEventSignupFailure, "", user.NormalizeEmail(input.Email), false, err)
		return nil, err
	}

	e.metrics.incSignupSuccess()
	e.emitAudit(ctx, auditEventSignup, result.User.ID, result.User.Email, true, nil)

	return result.User, nil
}

func (e *Engine) signupError(kind flows.SignupFailureKind) error {
	switch kind {
	case flows.SignupFailurePasswordMismatch:
		return ErrPasswordMismatch
	case flows.SignupFailureDuplicateEmail:
		return ErrDuplicateEmail
	default:
		return ErrStoreUnavailable
	}
}
