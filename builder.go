package authgate

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/veldtec/authgate/internal/rate"
	"github.com/veldtec/authgate/jwt"
	"github.com/veldtec/authgate/password"
	"github.com/veldtec/authgate/session"
	"github.com/veldtec/authgate/user"
)

// Builder assembles an [Engine]. Chain the With* setters and call Build
// once; a Builder is single-use and not safe for concurrent use.
type Builder struct {
	config    Config
	redis     redis.UniversalClient
	users     user.Store
	auditSink AuditSink
	clock     Clock

	built bool
}

// New returns a Builder seeded with the default configuration.
func New() *Builder {
	return &Builder{config: defaultConfig()}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis sets the Redis client backing sessions and the login throttle.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserStore sets the user persistence backend.
func (b *Builder) WithUserStore(store user.Store) *Builder {
	b.users = store
	return b
}

// WithAuditSink sets the destination for audit events. Ignored unless
// auditing is enabled in the configuration.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithClock overrides the engine clock. Tests use this to control token
// issuance and cookie expiry times.
func (b *Builder) WithClock(clock Clock) *Builder {
	b.clock = clock
	return b
}

// Build validates the configuration, parses the key material, and wires the
// engine together.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, fmt.Errorf("%w: builder already used", ErrConfig)
	}
	if b.redis == nil {
		return nil, fmt.Errorf("%w: redis client required", ErrConfig)
	}
	if b.users == nil {
		return nil, fmt.Errorf("%w: user store required", ErrConfig)
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	clock := b.clock
	if clock == nil {
		clock = time.Now
	}

	accessPriv, err := decodeKey(cfg.JWT.AccessPrivateKey)
	if err != nil {
		return nil, err
	}
	accessPub, err := decodeKey(cfg.JWT.AccessPublicKey)
	if err != nil {
		return nil, err
	}
	refreshPriv, err := decodeKey(cfg.JWT.RefreshPrivateKey)
	if err != nil {
		return nil, err
	}
	refreshPub, err := decodeKey(cfg.JWT.RefreshPublicKey)
	if err != nil {
		return nil, err
	}

	tokens, err := jwt.NewManager(jwt.Config{
		AccessPrivateKey:  accessPriv,
		AccessPublicKey:   accessPub,
		RefreshPrivateKey: refreshPriv,
		RefreshPublicKey:  refreshPub,
		AccessTTL:         cfg.JWT.AccessTTL(),
		RefreshTTL:        cfg.JWT.RefreshTTL(),
		Now:               clock,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	hasher, err := password.NewHasher(cfg.Password.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	var limiter *rate.Limiter
	if cfg.Security.EnableLoginThrottle {
		limiter = rate.New(b.redis, rate.Config{
			ThrottleIP:  cfg.Security.ThrottleIP,
			MaxAttempts: cfg.Security.MaxLoginAttempts,
			Cooldown:    cfg.Security.LoginCooldown,
		})
	}

	b.built = true

	return &Engine{
		config:    cfg,
		users:     b.users,
		sessions:  session.NewStore(b.redis, cfg.Session.RedisPrefix),
		tokens:    tokens,
		passwords: hasher,
		limiter:   limiter,
		audit:     newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:   NewMetrics(cfg.Metrics),
		now:       clock,
	}, nil
}
