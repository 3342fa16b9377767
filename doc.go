// Package authgate provides a cookie-and-bearer authentication core with
// RS256 token pairs, a Redis-backed session layer, and a pluggable user
// store.
//
// An access token alone never authenticates a request: every resolution
// re-checks the Redis session and reloads the user record, so deleting the
// session (logout) or the user revokes access immediately, well before the
// token expires. Refresh mints new access tokens but never rotates the
// refresh token and never extends the session, which caps a login's total
// lifetime at the session TTL.
//
// Engines are assembled through [Builder]:
//
//	engine, err := authgate.New().
//		WithConfig(cfg).
//		WithRedis(rdb).
//		WithUserStore(users).
//		Build()
//
// All Engine methods are safe for concurrent use after Build. Failure
// detail is deliberately collapsed at this surface: login failures share
// [ErrInvalidCredentials], token failures share [ErrTokenInvalid]. The
// finer-grained cause survives only in audit events and metrics.
package authgate
