package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/endless-dnd/pkg/character"
	"github.com/jwebster45206/endless-dnd/pkg/session"
)

func setupTestRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	store, err := NewRedisStorage("redis://"+mr.Addr(), logger)
	if err != nil {
		mr.Close()
		t.Fatalf("Failed to create redis storage: %v", err)
	}

	return store, mr
}

func testSession() *session.Session {
	return session.New(&character.Sheet{
		Name:  "Mira",
		Race:  "Elf",
		Class: "Rogue",
		Level: 1,
	})
}

func TestRedisStorage_SaveLoadDelete(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	require.NoError(t, store.Ping(ctx))

	s := testSession()
	require.NoError(t, store.SaveSession(ctx, s.ID, s))

	loaded, err := store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, s.ID, loaded.ID)
	assert.Equal(t, s.Token, loaded.Token)
	assert.Equal(t, s.Phase, loaded.Phase)
	assert.Equal(t, s.Clock.Minutes, loaded.Clock.Minutes)
	require.NotNil(t, loaded.Character)
	assert.Equal(t, "Mira", loaded.Character.Name)

	require.NoError(t, store.DeleteSession(ctx, s.ID))
	loaded, err = store.LoadSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_LoadMissing(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = store.Close() }()

	loaded, err := store.LoadSession(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRedisStorage_SaveSetsTTL(t *testing.T) {
	store, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = store.Close() }()

	s := testSession()
	require.NoError(t, store.SaveSession(context.Background(), s.ID, s))

	ttl := mr.TTL("session:" + s.ID.String())
	assert.Equal(t, sessionTTL, ttl)
}

func TestRedisStorage_BadURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	_, err := NewRedisStorage("not a url", logger)
	assert.Error(t, err)
}
