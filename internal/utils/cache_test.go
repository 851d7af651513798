package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	ctx := context.Background()

	var got cachedThing
	found, err := GetCache(ctx, rdb, "thing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, "thing", cachedThing{Name: "a", Count: 2}, time.Minute))
	found, err = GetCache(ctx, rdb, "thing", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedThing{Name: "a", Count: 2}, got)

	mr.FastForward(2 * time.Minute)
	found, err = GetCache(ctx, rdb, "thing", &got)
	require.NoError(t, err)
	assert.False(t, found, "entry should expire")

	require.NoError(t, SetCache(ctx, rdb, "a", 1, time.Minute))
	require.NoError(t, SetCache(ctx, rdb, "b", 2, time.Minute))
	require.NoError(t, DeleteCache(ctx, rdb, "a", "b"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
}

func TestCacheNilClient(t *testing.T) {
	ctx := context.Background()
	var got cachedThing

	found, err := GetCache(ctx, nil, "thing", &got)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetCache(ctx, nil, "thing", got, time.Minute))
	assert.NoError(t, DeleteCache(ctx, nil, "thing"))
}
