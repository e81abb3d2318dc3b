package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flashmarket/backend/internal/transport"
)

func TestUserRegister(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r}

	user, err := svc.Register(context.Background(), transport.RegisterUserRequest{
		Email:   "ada@example.com",
		Name:    "Ada",
		Phone:   "+44-555",
		Address: "12 Analytical St",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.Equal(t, "ada@example.com", user.Email)
}

func TestUserRegisterRequiresEmail(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r}

	_, err := svc.Register(context.Background(), transport.RegisterUserRequest{Name: "noone"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUserRegisterDuplicateEmail(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r}

	req := transport.RegisterUserRequest{Email: "dup@example.com"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	require.ErrorIs(t, err, ErrValidation)
}

func TestUserGetByEmail(t *testing.T) {
	r := newTestRepo(t)
	user := seedUser(t, r)
	svc := &UserService{Repo: r}

	got, err := svc.GetByEmail(context.Background(), user.Email)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, err = svc.GetByEmail(context.Background(), "missing@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUserUpdateKeepsEmail(t *testing.T) {
	r := newTestRepo(t)
	user := seedUser(t, r)
	svc := &UserService{Repo: r}

	updated, err := svc.Update(context.Background(), user.ID, transport.UpdateUserRequest{
		Name:    "New Name",
		Phone:   "+1-999",
		Address: "new address",
	})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.Name)
	require.Equal(t, "+1-999", updated.Phone)
	require.Equal(t, user.Email, updated.Email)
}

func TestUserUpdateNotFound(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r}

	_, err := svc.Update(context.Background(), 404, transport.UpdateUserRequest{Name: "x"})
	require.ErrorIs(t, err, ErrNotFound)
}
