package authgate

import (
	"time"

	"github.com/veldtec/authgate/user"
)

// User re-exports the account record so transport code only needs this
// package.
type User = user.User

// UserStore re-exports the repository contract consumed by the engine.
type UserStore = user.Store

// SignupInput is the registration payload accepted by [Engine.Signup].
type SignupInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// Clock supplies the engine's notion of now. Injectable so expiry behavior
// is deterministic under test; defaults to time.Now.
type Clock func() time.Time
