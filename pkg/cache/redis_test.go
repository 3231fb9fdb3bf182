package cache

import (
	"context"
	"testing"
	"time"

	"dummy-ticket/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, ttl time.Duration) (*EventStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := NewRedisClient(utils.RedisConfig{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewEventStore(client, ttl), mr
}

func TestEventStore_ClaimOnce(t *testing.T) {
	store, mr := newTestStore(t, time.Hour)
	ctx := context.Background()

	first, err := store.Claim(ctx, "evt_1")
	require.NoError(t, err)
	second, err := store.Claim(ctx, "evt_1")
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	assert.True(t, mr.Exists("webhook:event:evt_1"))
	assert.Equal(t, time.Hour, mr.TTL("webhook:event:evt_1"))
}

func TestEventStore_ReleaseAllowsReclaim(t *testing.T) {
	store, _ := newTestStore(t, time.Hour)
	ctx := context.Background()

	_, err := store.Claim(ctx, "evt_1")
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "evt_1"))

	again, err := store.Claim(ctx, "evt_1")
	require.NoError(t, err)
	assert.True(t, again)
}

func TestEventStore_ClaimExpires(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	ctx := context.Background()

	_, err := store.Claim(ctx, "evt_1")
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)

	again, err := store.Claim(ctx, "evt_1")
	require.NoError(t, err)
	assert.True(t, again)
}

func TestEventStore_Unavailable(t *testing.T) {
	store, mr := newTestStore(t, time.Minute)
	mr.Close()

	_, err := store.Claim(context.Background(), "evt_1")
	assert.Error(t, err)
	assert.Error(t, store.Ping(context.Background()))
}
