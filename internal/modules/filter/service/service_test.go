package service

import (
	"context"
	"testing"

	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/domain"
	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/repository"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/errors"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T, records ...*domain.Record) *Service {
	t.Helper()
	repo, err := repository.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	for _, r := range records {
		require.NoError(t, repo.SaveFilter(context.Background(), r))
	}
	return New(repo)
}

func TestActiveCriteria(t *testing.T) {
	t.Run("Assert only switched on criteria are active", func(t *testing.T) {
		require := require.New(t)
		set, err := ActiveCriteria(&domain.Record{
			ID:         "f1",
			Photo:      true,
			Link:       true,
			NotContain: []string{"spam"},
		})
		require.NoError(err)
		require.Equal([]domain.Criterion{domain.CriterionPhoto, domain.CriterionLink, domain.CriterionNotcontain}, set.Criteria())
	})

	t.Run("Assert empty record has no active criteria", func(t *testing.T) {
		require := require.New(t)
		set, err := ActiveCriteria(&domain.Record{ID: "f1", Contain: []string{}})
		require.NoError(err)
		require.Empty(set)
	})

	t.Run("Assert nil record fails fast", func(t *testing.T) {
		_, err := ActiveCriteria(nil)
		require.ErrorIs(t, err, errors.ErrInvalidRecord)
	})
}

func TestBuildActiveSet(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t, &domain.Record{ID: "media", Audio: true, Video: true})

	t.Run("Assert missing filter is not found", func(t *testing.T) {
		_, _, err := svc.BuildActiveSet(ctx, "nope")
		require.ErrorIs(t, err, errors.ErrFilterNotFound)
	})

	t.Run("Assert stored filter yields its active set", func(t *testing.T) {
		require := require.New(t)
		record, set, err := svc.BuildActiveSet(ctx, "media")
		require.NoError(err)
		require.Equal("media", record.ID)
		require.True(set.Has(domain.CriterionAudio))
		require.True(set.Has(domain.CriterionVideo))
		require.Len(set, 2)
	})
}

func TestSetCriterion(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	t.Run("Assert setting a criterion creates the filter", func(t *testing.T) {
		require := require.New(t)
		record, err := svc.SetCriterion(ctx, "fresh", domain.CriterionContain, "sale,discount")
		require.NoError(err)
		require.Equal([]string{"sale", "discount"}, record.Contain)

		stored, err := svc.GetFilter(ctx, "fresh")
		require.NoError(err)
		require.Equal(record, stored)
	})

	t.Run("Assert invalid flag value is rejected", func(t *testing.T) {
		_, err := svc.SetCriterion(ctx, "fresh", domain.CriterionPhoto, "sometimes")
		require.ErrorIs(t, err, errors.ErrInvalidCriterion)
	})
}
