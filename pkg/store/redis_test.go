package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newRedisStorage(t *testing.T) *RedisStorage {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR is required for tests")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, client.Ping(context.Background()).Err())

	// unique prefix so parallel runs never see each other's blobs
	storage := NewRedisStorage(client, "storefront-test-"+uuid.NewString())

	t.Cleanup(func() {
		ctx := context.Background()
		storage.Delete(ctx, cartBlob)
		storage.Delete(ctx, authBlob)
		storage.Delete(ctx, tokenBlob)
		client.Close()
	})

	return storage
}

func TestRedisStorageLoadAbsent(t *testing.T) {
	storage := newRedisStorage(t)

	_, err := storage.Load(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStorageSaveLoadDelete(t *testing.T) {
	storage := newRedisStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Save(ctx, "blob", []byte(`{"n":1}`)))

	data, err := storage.Load(ctx, "blob")
	require.NoError(t, err)
	require.JSONEq(t, `{"n":1}`, string(data))

	require.NoError(t, storage.Delete(ctx, "blob"))
	_, err = storage.Load(ctx, "blob")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRehydrateFromRedisStorage(t *testing.T) {
	storage := newRedisStorage(t)
	ctx := context.Background()

	s, err := NewCartStore(ctx, storage)
	require.NoError(t, err)
	require.NoError(t, s.AddItem(ctx, Product{ID: "p1", Price: 10}, 2))
	require.NoError(t, s.AddItem(ctx, Product{ID: "p2", Price: 7.5}, 4))

	rehydrated, err := NewCartStore(ctx, storage)
	require.NoError(t, err)
	require.Equal(t, s.Cart(), rehydrated.Cart())
}
