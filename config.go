package authgate

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Config defines the engine configuration. Instances are set up once and
// treated as immutable after Build.
type Config struct {
	JWT      JWTConfig
	Session  SessionConfig
	Password PasswordConfig
	Security SecurityConfig
	Cookies  CookieConfig
	Database DatabaseConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

// JWTConfig carries the four base64-encoded PEM key strings and the token
// lifetimes in minutes, matching the deployment configuration surface.
type JWTConfig struct {
	AccessPrivateKey  string
	AccessPublicKey   string
	RefreshPrivateKey string
	RefreshPublicKey  string

	AccessTTLMinutes  int
	RefreshTTLMinutes int
}

// AccessTTL returns the access-token lifetime as a duration.
func (c JWTConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTTLMinutes) * time.Minute
}

// RefreshTTL returns the refresh-token lifetime as a duration. It is also
// the session TTL.
func (c JWTConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTTLMinutes) * time.Minute
}

// SessionConfig configures the session store connection.
type SessionConfig struct {
	RedisAddr   string
	RedisPrefix string
}

// PasswordConfig configures bcrypt hashing.
type PasswordConfig struct {
	BcryptCost int
}

// SecurityConfig configures the optional login throttle.
type SecurityConfig struct {
	EnableLoginThrottle bool
	ThrottleIP          bool
	MaxLoginAttempts    int
	LoginCooldown       time.Duration
}

// CookieConfig controls the attributes shared by the three auth cookies.
// Secure and SameSite=None are required for cross-site browser clients;
// only loosen them for local development.
type CookieConfig struct {
	Domain   string
	Path     string
	Secure   bool
	SameSite http.SameSite
}

// DatabaseConfig carries the user-store connection string. The engine never
// opens this itself; it is plumbing for the process bootstrap.
type DatabaseConfig struct {
	DSN string
}

// AuditConfig configures the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig enables the Prometheus counter set.
type MetricsConfig struct {
	Enabled bool
}

func defaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTLMinutes:  15,
			RefreshTTLMinutes: 60,
		},
		Session: SessionConfig{
			RedisPrefix: "ag",
		},
		Password: PasswordConfig{
			BcryptCost: 12,
		},
		Security: SecurityConfig{
			MaxLoginAttempts: 10,
			LoginCooldown:    15 * time.Minute,
		},
		Cookies: CookieConfig{
			Path:     "/",
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		},
		Audit: AuditConfig{
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// FromEnv loads configuration from the environment on top of the defaults.
//
// Recognized variables: ACCESS_TOKEN_PRIVATE_KEY, ACCESS_TOKEN_PUBLIC_KEY,
// REFRESH_TOKEN_PRIVATE_KEY, REFRESH_TOKEN_PUBLIC_KEY (base64 PEM),
// ACCESS_TOKEN_TTL_MINUTES, REFRESH_TOKEN_TTL_MINUTES, BCRYPT_COST,
// DATABASE_URL, REDIS_URL.
func FromEnv() (Config, error) {
	cfg := defaultConfig()

	cfg.JWT.AccessPrivateKey = os.Getenv("ACCESS_TOKEN_PRIVATE_KEY")
	cfg.JWT.AccessPublicKey = os.Getenv("ACCESS_TOKEN_PUBLIC_KEY")
	cfg.JWT.RefreshPrivateKey = os.Getenv("REFRESH_TOKEN_PRIVATE_KEY")
	cfg.JWT.RefreshPublicKey = os.Getenv("REFRESH_TOKEN_PUBLIC_KEY")
	cfg.Database.DSN = os.Getenv("DATABASE_URL")
	if addr := os.Getenv("REDIS_URL"); addr != "" {
		cfg.Session.RedisAddr = addr
	}

	var err error
	if cfg.JWT.AccessTTLMinutes, err = envInt("ACCESS_TOKEN_TTL_MINUTES", cfg.JWT.AccessTTLMinutes); err != nil {
		return Config{}, err
	}
	if cfg.JWT.RefreshTTLMinutes, err = envInt("REFRESH_TOKEN_TTL_MINUTES", cfg.JWT.RefreshTTLMinutes); err != nil {
		return Config{}, err
	}
	if cfg.Password.BcryptCost, err = envInt("BCRYPT_COST", cfg.Password.BcryptCost); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func envInt(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", ErrConfig, name)
	}
	return v, nil
}

// Validate checks the parts of the configuration that Build depends on.
// Key material is only checked for presence and decodability here; parsing
// happens once in the token codec.
func (c Config) Validate() error {
	if c.JWT.AccessTTLMinutes <= 0 || c.JWT.RefreshTTLMinutes <= 0 {
		return fmt.Errorf("%w: token lifetimes must be positive", ErrConfig)
	}
	for name, key := range map[string]string{
		"access private key":  c.JWT.AccessPrivateKey,
		"access public key":   c.JWT.AccessPublicKey,
		"refresh private key": c.JWT.RefreshPrivateKey,
		"refresh public key":  c.JWT.RefreshPublicKey,
	} {
		if _, err := decodeKey(key); err != nil {
			return fmt.Errorf("%w: %s", err, name)
		}
	}
	return nil
}

// decodeKey turns a base64-encoded PEM string into raw PEM bytes. The
// decoded material is treated as opaque and never logged.
func decodeKey(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: key material missing", ErrConfig)
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: key material is not valid base64", ErrConfig)
	}
	return raw, nil
}
