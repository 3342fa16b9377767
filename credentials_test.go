package authgate

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenFromRequestPrecedence(t *testing.T) {
	cases := []struct {
		name      string
		header    string
		cookie    string
		wantToken string
		wantOK    bool
	}{
		{name: "header only", header: "Bearer abc", wantToken: "abc", wantOK: true},
		{name: "cookie only", cookie: "xyz", wantToken: "xyz", wantOK: true},
		{name: "header wins over cookie", header: "Bearer abc", cookie: "xyz", wantToken: "abc", wantOK: true},
		{name: "empty bearer does not fall through", header: "Bearer ", cookie: "xyz", wantOK: false},
		{name: "non-bearer header falls through", header: "Basic abc", cookie: "xyz", wantToken: "xyz", wantOK: true},
		{name: "lowercase bearer is not recognized", header: "bearer abc", cookie: "xyz", wantToken: "xyz", wantOK: true},
		{name: "nothing", wantOK: false},
		{name: "empty cookie", cookie: "", wantOK: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				r.AddCookie(&http.Cookie{Name: CookieAccessToken, Value: tc.cookie})
			}

			token, ok := TokenFromRequest(r)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && token != tc.wantToken {
				t.Fatalf("token = %q, want %q", token, tc.wantToken)
			}
		})
	}
}

func TestRefreshTokenFromRequestIsCookieOnly(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/refresh", nil)
	r.Header.Set("Authorization", "Bearer abc")
	if _, ok := RefreshTokenFromRequest(r); ok {
		t.Fatal("bearer header must not supply a refresh token")
	}

	r.AddCookie(&http.Cookie{Name: CookieRefreshToken, Value: "xyz"})
	token, ok := RefreshTokenFromRequest(r)
	if !ok || token != "xyz" {
		t.Fatalf("expected refresh cookie to be read, got %q %v", token, ok)
	}
}
