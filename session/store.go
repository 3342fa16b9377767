package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Get when no live session exists for the user,
// whether it expired or was never created.
var ErrNotFound = errors.New("session not found")

// ErrRedisUnavailable wraps connection-level failures talking to the backing
// store. The store adds no retry or backoff logic; callers decide.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Store maps a user id to a serialized user snapshot with a TTL enforced by
// Redis. One session per user: Put overwrites, last write wins.
type Store struct {
	redis  redis.UniversalClient
	prefix string
}

// NewStore creates a session [Store] backed by the given Redis client.
// prefix namespaces the keys; an empty prefix stores bare user ids.
func NewStore(redis redis.UniversalClient, prefix string) *Store {
	return &Store{redis: redis, prefix: prefix}
}

func (s *Store) key(userID string) string {
	if s.prefix == "" {
		return userID
	}
	return s.prefix + ":" + userID
}

// Put overwrites the session for userID with the given snapshot and TTL.
func (s *Store) Put(ctx context.Context, userID string, snap *Snapshot, ttl time.Duration) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key(userID), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// Get returns the live snapshot for userID, [ErrNotFound] when absent or
// expired, [ErrSnapshotCorrupt] when the stored value does not decode.
func (s *Store) Get(ctx context.Context, userID string) (*Snapshot, error) {
	data, err := s.redis.Get(ctx, s.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return Decode(data)
}

// Delete removes the session for userID. Idempotent: deleting an absent
// session is not an error.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.redis.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// TTL reports the remaining lifetime of the session for userID.
// Returns [ErrNotFound] when no session exists.
func (s *Store) TTL(ctx context.Context, userID string) (time.Duration, error) {
	ttl, err := s.redis.TTL(ctx, s.key(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if ttl < 0 {
		return 0, ErrNotFound
	}
	return ttl, nil
}
