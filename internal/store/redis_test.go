package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/taptote/internal/domain"
)

func openRedisStore(t *testing.T) (*RecordStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedis(client), mr
}

func TestRedisGetAbsent(t *testing.T) {
	s, _ := openRedisStore(t)

	tote, err := s.Get(context.Background(), "nosuchid")
	require.NoError(t, err)
	assert.Nil(t, tote)
}

func TestRedisMalformedTreatedAsAbsent(t *testing.T) {
	s, mr := openRedisStore(t)
	require.NoError(t, mr.Set("tote:broken", "{not json"))

	tote, err := s.Get(context.Background(), "broken")
	require.NoError(t, err)
	assert.Nil(t, tote)
}

func TestRedisEnsureUpsertRoundTrip(t *testing.T) {
	s, _ := openRedisStore(t)
	ctx := context.Background()

	created, err := s.Ensure(ctx, "ab12cd34")
	require.NoError(t, err)
	assert.Equal(t, "Tote ab12cd34", created.Title)
	assert.Empty(t, created.Images)

	updated, err := s.Upsert(ctx, "ab12cd34", Patch{Notes: strPtr("fragile")})
	require.NoError(t, err)
	assert.Equal(t, "fragile", updated.Notes)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	got, err := s.Get(ctx, "ab12cd34")
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestRedisList(t *testing.T) {
	s, mr := openRedisStore(t)
	ctx := context.Background()

	_, err := s.Ensure(ctx, "aaa11111")
	require.NoError(t, err)
	_, err = s.Ensure(ctx, "bbb22222")
	require.NoError(t, err)
	require.NoError(t, mr.Set("tote:junk", "garbage"))
	require.NoError(t, s.SaveSettings(ctx, domain.Settings{CloudSync: true}))

	totes, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, totes, 2)
}

func TestRedisSettings(t *testing.T) {
	s, _ := openRedisStore(t)
	ctx := context.Background()

	settings, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.False(t, settings.CloudSync)

	require.NoError(t, s.SaveSettings(ctx, domain.Settings{CloudSync: true}))

	settings, err = s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.True(t, settings.CloudSync)
}

func TestRedisWriteFailurePropagates(t *testing.T) {
	s, mr := openRedisStore(t)

	mr.Close()
	_, err := s.Ensure(context.Background(), "ab12cd34")
	assert.Error(t, err)
}
