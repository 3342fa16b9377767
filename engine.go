package authgate

import (
	"context"
	"time"

	"github.com/veldtec/authgate/internal/rate"
	"github.com/veldtec/authgate/jwt"
	"github.com/veldtec/authgate/password"
	"github.com/veldtec/authgate/session"
	"github.com/veldtec/authgate/user"
)

// Engine is the auth orchestrator. It owns token minting and verification,
// the Redis-backed session store, password hashing, the login throttle and
// the audit/metrics pipeline. Build one with [New]; a built Engine is
// immutable and safe for concurrent use.
type Engine struct {
	config    Config
	users     user.Store
	sessions  *session.Store
	tokens    *jwt.Manager
	passwords *password.Hasher
	limiter   *rate.Limiter
	audit     *auditDispatcher
	metrics   *Metrics
	now       Clock
}

// Close stops the audit dispatcher, draining buffered events first. The
// engine must not be used after Close.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.Close()
}

// AuditDropped reports how many audit events were discarded because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

// Metrics returns the engine's counter set, or nil when metrics are
// disabled.
func (e *Engine) Metrics() *Metrics {
	if e == nil {
		return nil
	}
	return e.metrics
}

// snapshotOf builds the session payload stored in Redis for u. Only
// non-sensitive fields are captured; the password hash never leaves the
// user store.
func (e *Engine) snapshotOf(u *user.User) session.Snapshot {
	return session.Snapshot{
		UserID:     u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Photo:      u.Photo,
		Verified:   u.Verified,
		LoggedInAt: e.now().UTC(),
	}
}

// sessionTTL is the Redis expiry for new sessions. It tracks the refresh
// token lifetime: once the refresh token is no longer honored, the session
// has no reader left.
func (e *Engine) sessionTTL() time.Duration {
	return e.tokens.TTL(jwt.KindRefresh)
}

func (e *Engine) emitAudit(ctx context.Context, eventType, userID, email string, success bool, failure error) {
	if e.audit == nil {
		return
	}

	event := AuditEvent{
		Timestamp: e.now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Email:     email,
		IP:        clientIPFromContext(ctx),
		Success:   success,
	}
	if failure != nil {
		event.Error = failure.Error()
	}
	e.audit.Emit(ctx, event)
}
