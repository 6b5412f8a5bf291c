package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/domain"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func setupGormStorage(t *testing.T) *GormStorage {
	t.Helper()
	require := require.New(t)

	db, err := OpenDatabase("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(err)

	storage, err := NewGormStorage(db)
	require.NoError(err)
	return storage
}

func setupRedisStorage(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStorage(client), mr
}

func testRepository(t *testing.T, repo Repository) {
	ctx := context.Background()

	t.Run("Assert missing filter reports not found", func(t *testing.T) {
		require := require.New(t)

		_, err := repo.GetFilter(ctx, "missing")
		require.ErrorIs(err, errors.ErrFilterNotFound)
	})

	t.Run("Assert saved filter round trips", func(t *testing.T) {
		require := require.New(t)
		record := &domain.Record{
			ID:         "news",
			Photo:      true,
			Hashtag:    true,
			Contain:    []string{"sale", "discount"},
			NotContain: []string{"spam"},
		}
		require.NoError(repo.SaveFilter(ctx, record))

		got, err := repo.GetFilter(ctx, "news")
		require.NoError(err)
		require.Equal(record, got)
	})

	t.Run("Assert saving again overwrites criteria", func(t *testing.T) {
		require := require.New(t)
		require.NoError(repo.SaveFilter(ctx, &domain.Record{ID: "news", Audio: true}))

		got, err := repo.GetFilter(ctx, "news")
		require.NoError(err)
		require.Equal(&domain.Record{ID: "news", Audio: true}, got)
	})

	t.Run("Assert all filters are listed", func(t *testing.T) {
		require := require.New(t)
		require.NoError(repo.SaveFilter(ctx, &domain.Record{ID: "other", Link: true}))

		all, err := repo.GetAllFilters(ctx)
		require.NoError(err)
		require.Len(all, 2)
	})

	t.Run("Assert deleted filter is gone", func(t *testing.T) {
		require := require.New(t)
		require.NoError(repo.DeleteFilter(ctx, "other"))

		_, err := repo.GetFilter(ctx, "other")
		require.ErrorIs(err, errors.ErrFilterNotFound)
		require.ErrorIs(repo.DeleteFilter(ctx, "other"), errors.ErrFilterNotFound)
	})

	t.Run("Assert nil record is rejected", func(t *testing.T) {
		require.ErrorIs(t, repo.SaveFilter(ctx, nil), errors.ErrInvalidRecord)
	})
}

func TestFileStorage(t *testing.T) {
	storage, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)
	testRepository(t, storage)

	t.Run("Assert path traversal is rejected", func(t *testing.T) {
		_, err := storage.GetFilter(context.Background(), "../secrets")
		require.ErrorIs(t, err, errors.ErrInvalidRecord)
	})
}

func TestGormStorage(t *testing.T) {
	storage := setupGormStorage(t)
	testRepository(t, storage)

	t.Run("Assert nullable and zero columns are inactive", func(t *testing.T) {
		require := require.New(t)
		zero := int64(0)
		two := int64(2)
		empty := ""
		row := &filterRow{ID: "legacy", Audio: &zero, Video: &two, Contain: &empty}
		require.NoError(storage.db.Create(row).Error)

		got, err := storage.GetFilter(context.Background(), "legacy")
		require.NoError(err)
		require.Equal(&domain.Record{ID: "legacy", Video: true}, got)
	})

	t.Run("Assert stored keyword strings split verbatim", func(t *testing.T) {
		require := require.New(t)
		contain := " sale<stop_word>Deal "
		notcontain := "spam<stop_word>"
		require.NoError(storage.db.Create(&filterRow{ID: "raw", Contain: &contain, NotContain: &notcontain}).Error)

		got, err := storage.GetFilter(context.Background(), "raw")
		require.NoError(err)
		require.Equal([]string{" sale", "Deal "}, got.Contain)
		require.Equal([]string{"spam", ""}, got.NotContain)
	})
}

func TestRedisStorage(t *testing.T) {
	storage, mr := setupRedisStorage(t)
	testRepository(t, storage)

	t.Run("Assert hash fields written by other tools are normalized", func(t *testing.T) {
		require := require.New(t)
		mr.HSet("filter:legacy", "audio", "0", "video", "true", "photo", "", "contain", "a<stop_word>b<stop_word>")

		got, err := storage.GetFilter(context.Background(), "legacy")
		require.NoError(err)
		require.Equal(&domain.Record{ID: "legacy", Video: true, Contain: []string{"a", "b", ""}}, got)
	})

	t.Run("Assert unreadable filters fail the listing", func(t *testing.T) {
		require := require.New(t)
		require.NoError(mr.Set("filter:broken", "not a hash"))
		_, err := mr.SAdd("filters", "broken", "ghost")
		require.NoError(err)

		_, err = storage.GetAllFilters(context.Background())
		require.Error(err)
		require.NotErrorIs(err, errors.ErrFilterNotFound)
	})

	t.Run("Assert ids without a hash are skipped", func(t *testing.T) {
		require := require.New(t)
		mr.Del("filter:broken")
		_, err := mr.SRem("filters", "broken")
		require.NoError(err)

		all, err := storage.GetAllFilters(context.Background())
		require.NoError(err)
		require.NotContains(lo.Map(all, func(r *domain.Record, _ int) string { return r.ID }), "ghost")
	})
}

func TestDecodeKeywords(t *testing.T) {
	require := require.New(t)

	require.Nil(decodeKeywords(""))
	require.Equal([]string{"sale", "discount"}, decodeKeywords("sale<stop_word>discount"))
	require.Equal([]string{" sale", ""}, decodeKeywords(" sale<stop_word>"))
	require.Equal([]string{"", ""}, decodeKeywords("<stop_word>"))
	require.Equal([]string{" "}, decodeKeywords(" "))
	require.Equal("a<stop_word> b", encodeKeywords(decodeKeywords("a<stop_word> b")))
}

func TestFlagFromString(t *testing.T) {
	require := require.New(t)

	require.False(flagFromString(""))
	require.False(flagFromString("0"))
	require.False(flagFromString("false"))
	require.False(flagFromString("garbage"))
	require.True(flagFromString("1"))
	require.True(flagFromString("7"))
	require.True(flagFromString("true"))
}
