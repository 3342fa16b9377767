package authgate

import (
	"encoding/base64"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.JWT.AccessTTL() != 15*time.Minute {
		t.Fatalf("access ttl = %v", cfg.JWT.AccessTTL())
	}
	if cfg.JWT.RefreshTTL() != time.Hour {
		t.Fatalf("refresh ttl = %v", cfg.JWT.RefreshTTL())
	}
	if !cfg.Cookies.Secure || cfg.Cookies.SameSite != http.SameSiteNoneMode {
		t.Fatal("default cookies must be Secure SameSite=None")
	}
	if cfg.Cookies.Path != "/" {
		t.Fatalf("cookie path = %q", cfg.Cookies.Path)
	}
}

func TestFromEnv(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("pem bytes"))
	t.Setenv("ACCESS_TOKEN_PRIVATE_KEY", key)
	t.Setenv("ACCESS_TOKEN_PUBLIC_KEY", key)
	t.Setenv("REFRESH_TOKEN_PRIVATE_KEY", key)
	t.Setenv("REFRESH_TOKEN_PUBLIC_KEY", key)
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "5")
	t.Setenv("REFRESH_TOKEN_TTL_MINUTES", "120")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("DATABASE_URL", "postgres://localhost/authgate")
	t.Setenv("REDIS_URL", "localhost:6380")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}

	if cfg.JWT.AccessPrivateKey != key {
		t.Fatal("access private key not loaded")
	}
	if cfg.JWT.AccessTTL() != 5*time.Minute || cfg.JWT.RefreshTTL() != 2*time.Hour {
		t.Fatalf("ttls = %v %v", cfg.JWT.AccessTTL(), cfg.JWT.RefreshTTL())
	}
	if cfg.Password.BcryptCost != 10 {
		t.Fatalf("bcrypt cost = %d", cfg.Password.BcryptCost)
	}
	if cfg.Database.DSN != "postgres://localhost/authgate" {
		t.Fatalf("dsn = %q", cfg.Database.DSN)
	}
	if cfg.Session.RedisAddr != "localhost:6380" {
		t.Fatalf("redis addr = %q", cfg.Session.RedisAddr)
	}
}

func TestFromEnvRejectsNonNumericTTL(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "soon")

	if _, err := FromEnv(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	key := base64.StdEncoding.EncodeToString([]byte("pem bytes"))

	valid := defaultConfig()
	valid.JWT.AccessPrivateKey = key
	valid.JWT.AccessPublicKey = key
	valid.JWT.RefreshPrivateKey = key
	valid.JWT.RefreshPublicKey = key
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate failed on well-formed config: %v", err)
	}

	missingKey := valid
	missingKey.JWT.RefreshPublicKey = ""
	if err := missingKey.Validate(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for missing key, got %v", err)
	}

	badBase64 := valid
	badBase64.JWT.AccessPrivateKey = "%%% not base64 %%%"
	if err := badBase64.Validate(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for bad base64, got %v", err)
	}

	badTTL := valid
	badTTL.JWT.AccessTTLMinutes = 0
	if err := badTTL.Validate(); !errors.Is(err, ErrConfig) {
		t.Fatalf("expected ErrConfig for zero ttl, got %v", err)
	}
}
