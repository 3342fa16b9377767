package middleware

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/json"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	authgate "github.com/veldtec/authgate"
	"github.com/veldtec/authgate/store/memory"
)

func keyPairB64(t *testing.T) (string, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("keygen failed: %v", err)
	}
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return base64.StdEncoding.EncodeToString(privPEM), base64.StdEncoding.EncodeToString(pubPEM)
}

func newGuardedServer(t *testing.T) (*authgate.Engine, http.Handler) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg, err := authgate.FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	cfg.JWT.AccessPrivateKey, cfg.JWT.AccessPublicKey = keyPairB64(t)
	cfg.JWT.RefreshPrivateKey, cfg.JWT.RefreshPublicKey = keyPairB64(t)
	cfg.Password.BcryptCost = 4

	engine, err := authgate.New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithUserStore(memory.New()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	handler := Guard(engine)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := authgate.UserFromContext(r.Context())
		if !ok {
			t.Error("guard passed without a user on the context")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"email": u.Email})
	}))

	return engine, handler
}

func TestGuardRejectsAnonymous(t *testing.T) {
	_, handler := newGuardedServer(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestGuardPassesAuthenticatedRequest(t *testing.T) {
	engine, handler := newGuardedServer(t)

	if _, err := engine.Signup(context.Background(), authgate.SignupInput{
		Name:            "Alice",
		Email:           "alice@example.com",
		Password:        "correct-horse",
		PasswordConfirm: "correct-horse",
	}); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	loginRec := httptest.NewRecorder()
	access, err := engine.Login(context.Background(), "alice@example.com", "correct-horse", loginRec)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Authorization", "Bearer "+access)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if body["email"] != "alice@example.com" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestGuardRejectsAfterLogout(t *testing.T) {
	engine, handler := newGuardedServer(t)

	ctx := context.Background()
	if _, err := engine.Signup(ctx, authgate.SignupInput{
		Name:            "Alice",
		Email:           "alice@example.com",
		Password:        "correct-horse",
		PasswordConfirm: "correct-horse",
	}); err != nil {
		t.Fatalf("Signup failed: %v", err)
	}

	loginRec := httptest.NewRecorder()
	access, err := engine.Login(ctx, "alice@example.com", "correct-horse", loginRec)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	logoutReq := httptest.NewRequest(http.MethodPost, "/logout", nil)
	logoutReq.Header.Set("Authorization", "Bearer "+access)
	if err := engine.Logout(ctx, logoutReq, httptest.NewRecorder()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/me", nil)
	r.Header.Set("Authorization", "Bearer "+access)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, r)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestClientIPMiddleware(t *testing.T) {
	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.RemoteAddr
	})
	ClientIP()(inner).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" {
		t.Fatal("inner handler not reached")
	}

	if got := remoteIP(&http.Request{RemoteAddr: "10.0.0.9:1234"}); got != "10.0.0.9" {
		t.Fatalf("remoteIP = %q", got)
	}
	if got := remoteIP(&http.Request{RemoteAddr: "[::1]:1234"}); got != "[::1]" {
		t.Fatalf("remoteIP = %q", got)
	}
	if got := remoteIP(&http.Request{RemoteAddr: "10.0.0.9"}); got != "10.0.0.9" {
		t.Fatalf("remoteIP = %q", got)
	}
}
