// Package postgres implements the user repository over PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE users (
//	    id         UUID PRIMARY KEY,
//	    name       TEXT NOT NULL,
//	    email      TEXT NOT NULL UNIQUE,
//	    role       TEXT NOT NULL DEFAULT 'user',
//	    password   TEXT NOT NULL,
//	    verified   BOOLEAN NOT NULL DEFAULT TRUE,
//	    photo      TEXT NOT NULL DEFAULT 'default.jpg',
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veldtec/authgate/user"
)

// SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

// Store is a pgx-backed user repository.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Open connects to the database at dsn and returns a Store over the pool.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", user.ErrUnavailable, err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}

const userColumns = "id, name, email, role, password, verified, photo, created_at, updated_at"

// Create inserts the record, assigning a fresh id. The unique-email
// constraint is surfaced as [user.ErrDuplicateEmail].
func (s *Store) Create(ctx context.Context, u *user.User) (*user.User, error) {
	stored := *u
	stored.ID = uuid.NewString()
	stored.Email = user.NormalizeEmail(u.Email)

	row := s.pool.QueryRow(ctx,
		`INSERT INTO users (id, name, email, role, password, verified, photo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at, updated_at`,
		stored.ID, stored.Name, stored.Email, stored.Role, stored.Password, stored.Verified, stored.Photo,
	)
	if err := row.Scan(&stored.CreatedAt, &stored.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: %v", user.ErrUnavailable, err)
	}

	return &stored, nil
}

// FindByID looks up a record by id, including the hidden password and
// verified columns.
func (s *Store) FindByID(ctx context.Context, id string) (*user.User, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail looks up a record by normalized email.
func (s *Store) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, user.NormalizeEmail(email))
}

func (s *Store) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var u user.User
	row := s.pool.QueryRow(ctx, query, arg)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Password, &u.Verified, &u.Photo, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", user.ErrUnavailable, err)
	}
	return &u, nil
}

var _ user.Store = (*Store)(nil)
