package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanomu-app/tanomu/internal/quota/domain"
)

func setupRedis(t *testing.T) *redis.Client {
	srv := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: srv.Addr()})
}

func TestRedisStoreLoadEmpty(t *testing.T) {
	store := NewRedisStore(setupRedis(t), "global")

	record, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestRedisStoreSaveThenLoad(t *testing.T) {
	store := NewRedisStore(setupRedis(t), "global")
	ctx := context.Background()

	want := domain.QuotaRecord{
		DayKey:   "2024-01-01",
		Count:    12,
		Limit:    300,
		State:    domain.StatePaused,
		ResumeAt: "2024-01-01T15:00:00Z",
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestRedisStoreNoExpiry(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	store := NewRedisStore(client, "global")

	require.NoError(t, store.Save(context.Background(), domain.QuotaRecord{
		DayKey:   "2024-01-01",
		Count:    1,
		Limit:    300,
		State:    domain.StateOpen,
		ResumeAt: "2024-01-01T15:00:00Z",
	}))

	// TTL of -1 means the key exists with no expiry.
	ttl := client.TTL(context.Background(), "quota:state:global").Val()
	assert.Equal(t, time.Duration(-1), ttl)
}
