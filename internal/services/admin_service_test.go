package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hairday/internal/models/db_models"
	"hairday/pkg/utils"
)

func seedAdmin(t *testing.T, store *memStore, email, password string) {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	store.admins[email] = &db_models.AdminUser{Email: email, PasswordHash: hash}
}

func TestAdminLoginIssuesSession(t *testing.T) {
	store := newMemStore()
	seedAdmin(t, store, "owner@salon.com", "hunter2!")
	svc := NewAdminService(store, zap.NewNop())

	token, err := svc.Login(context.Background(), "owner@salon.com", "hunter2!")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	admin, err := svc.ValidateSession(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "owner@salon.com", admin.Email)

	// A fresh login replaces the session; the old token stops working.
	second, err := svc.Login(context.Background(), "owner@salon.com", "hunter2!")
	require.NoError(t, err)
	assert.NotEqual(t, token, second)

	_, err = svc.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)
}

func TestAdminLoginRejectsBadPassword(t *testing.T) {
	store := newMemStore()
	seedAdmin(t, store, "owner@salon.com", "hunter2!")
	svc := NewAdminService(store, zap.NewNop())

	_, err := svc.Login(context.Background(), "owner@salon.com", "wrong")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@salon.com", "hunter2!")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)
}

func TestAdminLoginMigratesLegacyHash(t *testing.T) {
	store := newMemStore()
	legacy := utils.LegacyHash("old-password")
	store.admins["legacy@salon.com"] = &db_models.AdminUser{
		Email:              "legacy@salon.com",
		LegacyPasswordHash: &legacy,
	}
	svc := NewAdminService(store, zap.NewNop())

	token, err := svc.Login(context.Background(), "legacy@salon.com", "old-password")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	migrated := store.admins["legacy@salon.com"]
	assert.Nil(t, migrated.LegacyPasswordHash, "legacy hash dropped on migration")
	require.NotEmpty(t, migrated.PasswordHash)
	assert.NoError(t, utils.ComparePasswords(migrated.PasswordHash, "old-password"))

	// Second login goes through the modern path.
	_, err = svc.Login(context.Background(), "legacy@salon.com", "old-password")
	assert.NoError(t, err)
}

func TestAdminSessionExpiry(t *testing.T) {
	store := newMemStore()
	seedAdmin(t, store, "owner@salon.com", "hunter2!")
	svc := NewAdminService(store, zap.NewNop()).(*adminService)

	token, err := svc.Login(context.Background(), "owner@salon.com", "hunter2!")
	require.NoError(t, err)

	svc.nowFn = func() time.Time { return time.Now().Add(25 * time.Hour) }

	_, err = svc.ValidateSession(context.Background(), token)
	assert.ErrorIs(t, err, utils.ErrSessionExpired)
}

func TestAdminRegisterBootstrapAndGuard(t *testing.T) {
	store := newMemStore()
	svc := NewAdminService(store, zap.NewNop())

	// First admin registers without any session.
	err := svc.Register(context.Background(), "", "first@salon.com", "hunter2!")
	require.NoError(t, err)

	// From then on a valid session is required.
	err = svc.Register(context.Background(), "", "second@salon.com", "hunter2!")
	assert.ErrorIs(t, err, utils.ErrSessionRequired)

	err = svc.Register(context.Background(), "bogus-token", "second@salon.com", "hunter2!")
	assert.ErrorIs(t, err, utils.ErrSessionNotFound)

	token, err := svc.Login(context.Background(), "first@salon.com", "hunter2!")
	require.NoError(t, err)

	err = svc.Register(context.Background(), token, "second@salon.com", "hunter2!")
	assert.NoError(t, err)

	err = svc.Register(context.Background(), token, "first@salon.com", "other")
	assert.ErrorIs(t, err, utils.ErrEmailAlreadyExists)
}

func TestAdminChangePassword(t *testing.T) {
	store := newMemStore()
	seedAdmin(t, store, "owner@salon.com", "hunter2!")
	svc := NewAdminService(store, zap.NewNop())

	token, err := svc.Login(context.Background(), "owner@salon.com", "hunter2!")
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), token, "wrong", "new-password")
	assert.ErrorIs(t, err, utils.ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), token, "hunter2!", "new-password")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "owner@salon.com", "new-password")
	assert.NoError(t, err)
}

func TestAdminDelete(t *testing.T) {
	store := newMemStore()
	seedAdmin(t, store, "owner@salon.com", "hunter2!")
	seedAdmin(t, store, "other@salon.com", "hunter2!")
	svc := NewAdminService(store, zap.NewNop())

	token, err := svc.Login(context.Background(), "owner@salon.com", "hunter2!")
	require.NoError(t, err)

	err = svc.Delete(context.Background(), token, "owner@salon.com")
	assert.ErrorIs(t, err, utils.ErrUnauthorized, "no self-delete")

	err = svc.Delete(context.Background(), token, "ghost@salon.com")
	assert.ErrorIs(t, err, utils.ErrAccountNotFound)

	err = svc.Delete(context.Background(), token, "other@salon.com")
	require.NoError(t, err)

	infos, err := svc.List(context.Background(), token)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "owner@salon.com", infos[0].Email)
}
