package authgate

import (
	"net/http"
	"time"

	"github.com/veldtec/authgate/jwt"
)

// setLoginCookies writes the full three-cookie set after login: access and
// refresh tokens (HttpOnly) plus the script-readable logged_in flag.
// access_token and logged_in share the access lifetime; refresh_token
// tracks the refresh lifetime.
func (e *Engine) setLoginCookies(w http.ResponseWriter, access, refresh string) {
	accessTTL := e.tokens.TTL(jwt.KindAccess)
	http.SetCookie(w, e.cookie(CookieAccessToken, access, accessTTL, true))
	http.SetCookie(w, e.cookie(CookieRefreshToken, refresh, e.tokens.TTL(jwt.KindRefresh), true))
	http.SetCookie(w, e.cookie(CookieLoggedIn, "true", accessTTL, false))
}

// setRefreshCookies rewrites only access_token and logged_in. The refresh
// cookie is left untouched: refresh never rotates the refresh token.
func (e *Engine) setRefreshCookies(w http.ResponseWriter, access string) {
	accessTTL := e.tokens.TTL(jwt.KindAccess)
	http.SetCookie(w, e.cookie(CookieAccessToken, access, accessTTL, true))
	http.SetCookie(w, e.cookie(CookieLoggedIn, "true", accessTTL, false))
}

// clearAuthCookies overwrites all three cookies with an empty,
// immediately-expired value. Always invoked together.
func (e *Engine) clearAuthCookies(w http.ResponseWriter) {
	http.SetCookie(w, e.expiredCookie(CookieAccessToken, true))
	http.SetCookie(w, e.expiredCookie(CookieRefreshToken, true))
	http.SetCookie(w, e.expiredCookie(CookieLoggedIn, false))
}

func (e *Engine) cookie(name, value string, ttl time.Duration, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     e.config.Cookies.Path,
		Domain:   e.config.Cookies.Domain,
		MaxAge:   int(ttl / time.Second),
		Expires:  e.now().Add(ttl),
		HttpOnly: httpOnly,
		Secure:   e.config.Cookies.Secure,
		SameSite: e.config.Cookies.SameSite,
	}
}

func (e *Engine) expiredCookie(name string, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     e.config.Cookies.Path,
		Domain:   e.config.Cookies.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		HttpOnly: httpOnly,
		Secure:   e.config.Cookies.Secure,
		SameSite: e.config.Cookies.SameSite,
	}
}
