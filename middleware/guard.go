// Package middleware adapts the engine's request-resolution pipeline to
// net/http. The guard delegates every decision to the engine; it only
// translates errors into status codes and places the resolved user on the
// request context.
package middleware

import (
	"errors"
	"net/http"

	authgate "github.com/veldtec/authgate"
)

// Guard returns middleware that resolves the current user and rejects the
// request with 401 when resolution fails. Store-level failures map to 503
// instead so callers can tell an outage from a bad credential. On success
// the user is available via [authgate.UserFromContext].
func Guard(engine *authgate.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			u, err := engine.CurrentUser(r.Context(), r)
			if err != nil {
				if errors.Is(err, authgate.ErrStoreUnavailable) {
					http.Error(w, "service unavailable", http.StatusServiceUnavailable)
					return
				}
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(authgate.WithUser(r.Context(), u)))
		})
	}
}

// ClientIP returns middleware that stamps the caller's remote address onto
// the request context for the login throttle and audit trail. Place it
// outside [Guard] and the auth handlers.
func ClientIP() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := authgate.WithClientIP(r.Context(), remoteIP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func remoteIP(r *http.Request) string {
	host := r.RemoteAddr
	for i := len(host) - 1; i >= 0; i-- {
		if host[i] == ':' {
			return host[:i]
		}
	}
	return host
}
