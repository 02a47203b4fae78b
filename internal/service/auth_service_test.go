package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/blogr/internal/model"
	"github.com/d60-Lab/blogr/internal/repository"
	"github.com/d60-Lab/blogr/internal/session"
)

func setupAuthService(t *testing.T) (AuthService, *session.Manager) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.Author{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mgr := session.NewManager("test-secret", time.Hour, session.NewStore(rdb, time.Hour))

	return NewAuthService(repository.NewAuthorRepository(db), mgr), mgr
}

func TestRegisterAndLogin(t *testing.T) {
	svc, mgr := setupAuthService(t)
	ctx := context.Background()

	author, err := svc.Register(ctx, "Alice", "a@x.com", "hunter2hunter2", "")
	require.NoError(t, err)
	require.NotZero(t, author.ID)
	require.NotEqual(t, "hunter2hunter2", author.PasswordHash)

	token, id, err := svc.Login(ctx, "a@x.com", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, "a@x.com", id.Email)

	resolved, err := mgr.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	require.Equal(t, "Alice", resolved.Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "hunter2hunter2", "")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Other Alice", "a@x.com", "different-pass", "")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := setupAuthService(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "nobody@x.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, "Alice", "a@x.com", "hunter2hunter2", "")
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, "a@x.com", "wrong-password")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, mgr := setupAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Alice", "a@x.com", "hunter2hunter2", "")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "a@x.com", "hunter2hunter2")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	resolved, err := mgr.Resolve(ctx, token)
	require.NoError(t, err)
	require.Nil(t, resolved)
}
