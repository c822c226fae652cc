package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetrackhq/closetrack/internal/auth"
	authStore "github.com/closetrackhq/closetrack/internal/auth/store"
)

func newService(t *testing.T, ttl time.Duration) *auth.Service {
	t.Helper()
	return auth.NewService(authStore.NewMemory(), ttl)
}

func register(t *testing.T, svc *auth.Service) *auth.User {
	t.Helper()

	user, err := svc.Register(context.Background(), auth.RegisterParams{
		Username: "maria",
		Email:    "maria@example.com",
		FullName: "Maria Santos",
		Password: "correct horse",
	})
	require.NoError(t, err)

	return user
}

func TestService_Register(t *testing.T) {
	svc := newService(t, time.Hour)

	user := register(t, svc)
	assert.Equal(t, auth.RoleAgent, user.Role, "role defaults to agent")
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := svc.Register(context.Background(), auth.RegisterParams{
			Username: "maria",
			Email:    "other@example.com",
			Password: "correct horse",
		})
		assert.ErrorIs(t, err, auth.ErrDuplicateUser)
	})

	t.Run("WeakPassword", func(t *testing.T) {
		_, err := svc.Register(context.Background(), auth.RegisterParams{
			Username: "sam",
			Email:    "sam@example.com",
			Password: "short",
		})
		assert.ErrorIs(t, err, auth.ErrWeakPassword)
	})

	t.Run("BadEmail", func(t *testing.T) {
		_, err := svc.Register(context.Background(), auth.RegisterParams{
			Username: "sam",
			Email:    "not-an-email",
			Password: "correct horse",
		})
		assert.Error(t, err)
	})

	t.Run("BadRole", func(t *testing.T) {
		_, err := svc.Register(context.Background(), auth.RegisterParams{
			Username: "sam",
			Email:    "sam@example.com",
			Password: "correct horse",
			Role:     "admin",
		})
		assert.Error(t, err)
	})
}

func TestService_LoginAndSession(t *testing.T) {
	svc := newService(t, time.Hour)
	user := register(t, svc)

	session, got, err := svc.Login(context.Background(), "maria", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Len(t, session.ID, 64, "session ids are 32 random bytes, hex encoded")

	resolved, err := svc.UserBySession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	require.NoError(t, svc.Logout(context.Background(), session.ID))

	_, err = svc.UserBySession(context.Background(), session.ID)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	svc := newService(t, time.Hour)
	register(t, svc)

	_, _, err := svc.Login(context.Background(), "maria", "wrong password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	// Unknown users get the same error as bad passwords.
	_, _, err = svc.Login(context.Background(), "nobody", "whatever")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestService_ExpiredSession(t *testing.T) {
	svc := newService(t, -time.Minute)
	register(t, svc)

	session, _, err := svc.Login(context.Background(), "maria", "correct horse")
	require.NoError(t, err)

	_, err = svc.UserBySession(context.Background(), session.ID)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)
}
