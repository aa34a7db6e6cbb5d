package state

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kapu/sheos-insight-go/internal/constants"
	"github.com/kapu/sheos-insight-go/internal/domain"
)

func newMiniredisStore(t *testing.T, pendingTTL time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreWithClient(client, pendingTTL, zap.NewNop())
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func storesUnderTest(t *testing.T) map[string]Store {
	redisStore, _ := newMiniredisStore(t, time.Minute)
	return map[string]Store{
		"memory": NewMemoryStore(time.Minute),
		"redis":  redisStore,
	}
}

func sampleEnvelope() domain.Envelope {
	return domain.Envelope{
		Feature: domain.FeatureMentor,
		Live:    true,
		Result:  "Take one small step today.",
	}
}

func TestStore_SingleInFlightPerScreen(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := Key{Session: "s1", Feature: domain.FeatureMentor}

			ok, err := store.TryBegin(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = store.TryBegin(ctx, key)
			require.NoError(t, err)
			assert.False(t, ok, "second request on a loading screen must be rejected")

			other := Key{Session: "s1", Feature: domain.FeatureCompanion}
			ok, err = store.TryBegin(ctx, other)
			require.NoError(t, err)
			assert.True(t, ok, "screens are independent")

			require.NoError(t, store.Finish(ctx, key, sampleEnvelope()))

			ok, err = store.TryBegin(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestStore_FinishReplacesResult(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := Key{Session: "s2", Feature: domain.FeatureMentor}

			var got domain.Envelope
			found, err := store.Last(ctx, key, &got)
			require.NoError(t, err)
			assert.False(t, found)

			first := sampleEnvelope()
			require.NoError(t, store.Finish(ctx, key, first))

			second := sampleEnvelope()
			second.Live = false
			second.Reason = "transport"
			second.Result = "fallback advice"
			require.NoError(t, store.Finish(ctx, key, second))

			found, err = store.Last(ctx, key, &got)
			require.NoError(t, err)
			require.True(t, found)
			assert.False(t, got.Live)
			assert.Equal(t, "transport", got.Reason)
			assert.Equal(t, "fallback advice", got.Result)
		})
	}
}

func TestStore_AbortKeepsPreviousResult(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := Key{Session: "s3", Feature: domain.FeatureMentor}

			require.NoError(t, store.Finish(ctx, key, sampleEnvelope()))

			ok, err := store.TryBegin(ctx, key)
			require.NoError(t, err)
			require.True(t, ok)
			require.NoError(t, store.Abort(ctx, key))

			ok, err = store.TryBegin(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok)

			var got domain.Envelope
			found, err := store.Last(ctx, key, &got)
			require.NoError(t, err)
			require.True(t, found)
			assert.True(t, got.Live)
		})
	}
}

func TestMemoryStore_PendingExpires(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	key := Key{Session: "s4", Feature: domain.FeatureThreat}
	ok, err := store.TryBegin(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	ok, err = store.TryBegin(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok, "a stale pending mark must not block the screen forever")
}

func TestMemoryStore_ResultExpiresAndIsSwept(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	key := Key{Session: "s6", Feature: domain.FeatureHealth}
	ok, err := store.TryBegin(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, store.Finish(ctx, key, domain.Envelope{Feature: domain.FeatureHealth, Live: true}))

	var got domain.Envelope
	found, err := store.Last(ctx, key, &got)
	require.NoError(t, err)
	require.True(t, found)

	now = now.Add(constants.StateConfig.ResultTTL + time.Second)
	found, err = store.Last(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, found)

	other := Key{Session: "s7", Feature: domain.FeatureThreat}
	ok, err = store.TryBegin(ctx, other)
	require.NoError(t, err)
	require.True(t, ok)

	store.mu.Lock()
	_, kept := store.entries[key.String()]
	size := len(store.entries)
	store.mu.Unlock()
	assert.False(t, kept)
	assert.Equal(t, 1, size)
}

func TestRedisStore_PendingExpires(t *testing.T) {
	store, mr := newMiniredisStore(t, time.Minute)
	key := Key{Session: "s5", Feature: domain.FeatureThreat}

	ok, err := store.TryBegin(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	ok, err = store.TryBegin(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisStore_KeysUsePrefix(t *testing.T) {
	store, mr := newMiniredisStore(t, time.Minute)
	key := Key{Session: "abc", Feature: domain.FeatureHealth}

	require.NoError(t, store.Finish(context.Background(), key, sampleEnvelope()))
	assert.True(t, mr.Exists("sheos:screen:result:abc:health"))
	assert.Greater(t, mr.TTL("sheos:screen:result:abc:health"), time.Duration(0))
}

func TestRedisStore_UnavailableReturnsStateError(t *testing.T) {
	store, mr := newMiniredisStore(t, time.Minute)
	mr.Close()

	_, err := store.TryBegin(context.Background(), Key{Session: "x", Feature: domain.FeatureThreat})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin failed")
}
