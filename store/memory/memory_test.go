package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldtec/authgate/user"
)

func seed() *user.User {
	return &user.User{
		Name:     "Alice",
		Email:    "Alice@Example.com",
		Password: "$2a$04$digest",
		Role:     user.DefaultRole,
		Photo:    user.DefaultPhoto,
		Verified: true,
	}
}

func TestCreateAssignsIdentityAndTimestamps(t *testing.T) {
	s := New()

	created, err := s.Create(context.Background(), seed())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Create(ctx, seed())
	require.NoError(t, err)

	dup := seed()
	dup.Email = "ALICE@example.com"
	_, err = s.Create(ctx, dup)
	assert.ErrorIs(t, err, user.ErrDuplicateEmail)
}

func TestFindByIDAndEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.Create(ctx, seed())
	require.NoError(t, err)

	byID, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, byID.Email)

	byEmail, err := s.FindByEmail(ctx, "  ALICE@example.com ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = s.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, user.ErrNotFound)
	_, err = s.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.Create(ctx, seed())
	require.NoError(t, err)

	created.Name = "Mutated"

	fresh, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", fresh.Name, "mutating a returned record must not touch the store")
}

func TestRemoveFreesEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.Create(ctx, seed())
	require.NoError(t, err)

	s.Remove(created.ID)

	_, err = s.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = s.Create(ctx, seed())
	assert.NoError(t, err, "removed email should be reusable")
}

func TestSetVerified(t *testing.T) {
	s := New()
	ctx := context.Background()

	created, err := s.Create(ctx, seed())
	require.NoError(t, err)

	require.True(t, s.SetVerified(created.ID, false))
	fresh, err := s.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, fresh.Verified)

	assert.False(t, s.SetVerified("missing", true))
}
