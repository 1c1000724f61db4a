package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/urbanthreads-backend/pkg/config"
)

type memoryStore struct {
	data map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]string{}}
}

func (s *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	s.data[key] = fmt.Sprint(value)
	return nil
}

func (s *memoryStore) Get(_ context.Context, key string) (string, error) {
	v, ok := s.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (s *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

func (s *memoryStore) AccessSessionKey(accessID string) string {
	return "session:" + accessID
}

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{ExpirationMinutes: 15, RefreshTokenTTLMinutes: 60}
}

func TestNewManagerValidatesTTL(t *testing.T) {
	_, err := NewManager(newMemoryStore(), config.JWTConfig{ExpirationMinutes: 60, RefreshTokenTTLMinutes: 30})
	require.Error(t, err)

	_, err = NewManager(nil, jwtConfig())
	require.Error(t, err)
}

func TestGenerateRotateRevoke(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	mgr, err := NewManager(store, jwtConfig())
	require.NoError(t, err)

	token, err := mgr.Generate(ctx, "access-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ok, err := mgr.HasSession(ctx, "access-1")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = mgr.Rotate(ctx, "access-1", "wrong-token")
	require.True(t, errors.Is(err, ErrInvalidRefreshToken))

	rotation, err := mgr.Rotate(ctx, "access-1", token)
	require.NoError(t, err)
	require.NotEqual(t, "access-1", rotation.AccessID)
	require.NotEqual(t, token, rotation.RefreshToken)

	ok, err = mgr.HasSession(ctx, "access-1")
	require.NoError(t, err)
	require.False(t, ok, "old session should be gone after rotation")

	_, err = mgr.Rotate(ctx, "access-1", token)
	require.True(t, errors.Is(err, ErrInvalidRefreshToken), "refresh tokens are single use")

	require.NoError(t, mgr.Revoke(ctx, rotation.AccessID))
	ok, err = mgr.HasSession(ctx, rotation.AccessID)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestEmptyAccessIDRejected(t *testing.T) {
	mgr, err := NewManager(newMemoryStore(), jwtConfig())
	require.NoError(t, err)

	_, err = mgr.Generate(context.Background(), " ")
	require.Error(t, err)
	_, err = mgr.HasSession(context.Background(), "")
	require.Error(t, err)
	require.Error(t, mgr.Revoke(context.Background(), ""))
}
