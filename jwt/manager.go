package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind selects which key pair signs or verifies a token.
type Kind string

const (
	// KindAccess is the short-lived per-request credential.
	KindAccess Kind = "access"
	// KindRefresh is the longer-lived credential used to mint access tokens.
	KindRefresh Kind = "refresh"
)

// ErrTokenInvalid is the single verification failure outcome. Malformed
// tokens, wrong algorithms, bad signatures, and expired tokens all collapse
// into it so callers cannot tell attack signals from expiry by return value.
var ErrTokenInvalid = errors.New("invalid token")

// ErrKeyMaterial is returned by NewManager when configured key material is
// absent or does not parse.
var ErrKeyMaterial = errors.New("invalid key material")

// Claims is the signed payload: a user identifier plus the registered
// timing fields.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Config holds the PEM-encoded RSA key material and lifetimes for both token
// kinds. Keys are parsed once at construction and never logged.
type Config struct {
	AccessPrivateKey  []byte
	AccessPublicKey   []byte
	RefreshPrivateKey []byte
	RefreshPublicKey  []byte

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now is the clock used for issued-at, expiry, and verification.
	// Defaults to time.Now.
	Now func() time.Time
}

type keyPair struct {
	private *rsa.PrivateKey
	public  *rsa.PublicKey
	ttl     time.Duration
}

// Manager signs and verifies the two token kinds with per-kind RSA key
// pairs (RS256). Read-only after construction; safe for concurrent use.
type Manager struct {
	access  keyPair
	refresh keyPair
	now     func() time.Time
}

// NewManager parses the configured key material and returns a ready Manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("%w: token TTLs must be positive", ErrKeyMaterial)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	access, err := parsePair(cfg.AccessPrivateKey, cfg.AccessPublicKey, cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("access key pair: %w", err)
	}
	refresh, err := parsePair(cfg.RefreshPrivateKey, cfg.RefreshPublicKey, cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("refresh key pair: %w", err)
	}

	return &Manager{access: access, refresh: refresh, now: cfg.Now}, nil
}

// Sign issues a token of the given kind for userID, stamped with the
// manager's clock and the kind's configured lifetime.
func (m *Manager) Sign(kind Kind, userID string) (string, error) {
	pair, err := m.pair(kind)
	if err != nil {
		return "", err
	}

	now := m.now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(pair.ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(pair.private)
}

// Verify checks the signature and expiry of a token against the public key
// for kind. Any failure yields [ErrTokenInvalid].
func (m *Manager) Verify(kind Kind, tokenStr string) (*Claims, error) {
	pair, err := m.pair(kind)
	if err != nil {
		return nil, err
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return pair.public, nil
	})
	if err != nil {
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// TTL reports the configured lifetime for a token kind.
func (m *Manager) TTL(kind Kind) time.Duration {
	if kind == KindRefresh {
		return m.refresh.ttl
	}
	return m.access.ttl
}

func (m *Manager) pair(kind Kind) (keyPair, error) {
	switch kind {
	case KindAccess:
		return m.access, nil
	case KindRefresh:
		return m.refresh, nil
	default:
		return keyPair{}, fmt.Errorf("%w: unknown token kind %q", ErrKeyMaterial, kind)
	}
}

func parsePair(privPEM, pubPEM []byte, ttl time.Duration) (keyPair, error) {
	if len(privPEM) == 0 || len(pubPEM) == 0 {
		return keyPair{}, fmt.Errorf("%w: key material missing", ErrKeyMaterial)
	}
	private, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		return keyPair{}, fmt.Errorf("%w: private key does not parse", ErrKeyMaterial)
	}
	public, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return keyPair{}, fmt.Errorf("%w: public key does not parse", ErrKeyMaterial)
	}
	return keyPair{private: private, public: public, ttl: ttl}, nil
}
