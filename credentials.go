package authgate

import (
	"net/http"
	"strings"
)

// Cookie names shared with browser clients. The first two are HttpOnly;
// logged_in carries no secret and is script-readable on purpose.
const (
	CookieAccessToken  = "access_token"
	CookieRefreshToken = "refresh_token"
	CookieLoggedIn     = "logged_in"
)

const bearerPrefix = "Bearer "

// TokenFromRequest extracts the candidate access token from a request.
// Precedence is fixed: a bearer Authorization header wins over the
// access_token cookie, so non-browser clients are never shadowed by a stale
// browser session. A bearer header with an empty remainder yields no
// credential; it does not fall through to the cookie.
func TokenFromRequest(r *http.Request) (string, bool) {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, bearerPrefix) {
		token := h[len(bearerPrefix):]
		return token, token != ""
	}

	if c, err := r.Cookie(CookieAccessToken); err == nil && c.Value != "" {
		return c.Value, true
	}

	return "", false
}

// RefreshTokenFromRequest reads the refresh token from the cookie jar.
// Refresh is cookie-only; the bearer header is never consulted.
func RefreshTokenFromRequest(r *http.Request) (string, bool) {
	if c, err := r.Cookie(CookieRefreshToken); err == nil && c.Value != "" {
		return c.Value, true
	}
	return "", false
}
