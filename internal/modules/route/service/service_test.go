package service

import (
	"testing"
	"time"

	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/domain"
	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/repository"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/errors"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*Service, *repository.FileStorage) {
	t.Helper()
	repo, err := repository.NewFileStorage(t.TempDir())
	require.NoError(t, err)
	return New(repo), repo
}

func TestService(t *testing.T) {
	t.Run("Assert added routes are indexed by source", func(t *testing.T) {
		require := require.New(t)
		svc, _ := setupService(t)

		a, err := svc.AddRoute(&domain.Route{SourceChatID: -100, DestinationChatID: 1, FilterID: "f1"})
		require.NoError(err)
		_, err = svc.AddRoute(&domain.Route{SourceChatID: -100, DestinationChatID: 2, FilterID: "f2"})
		require.NoError(err)

		require.Len(svc.RoutesForSource(-100), 2)
		require.Empty(svc.RoutesForSource(-200))

		require.NoError(svc.RemoveRoute(a.ID))
		routes := svc.RoutesForSource(-100)
		require.Len(routes, 1)
		require.Equal("f2", routes[0].FilterID)
	})

	t.Run("Assert Start indexes only active routes", func(t *testing.T) {
		require := require.New(t)
		svc, repo := setupService(t)

		require.NoError(repo.SaveRoute(&domain.Route{ID: "on", SourceChatID: -1, IsActive: true}))
		require.NoError(repo.SaveRoute(&domain.Route{ID: "off", SourceChatID: -1}))
		require.NoError(svc.Start())

		routes := svc.RoutesForSource(-1)
		require.Len(routes, 1)
		require.Equal("on", routes[0].ID)
	})

	t.Run("Assert removing unknown route fails", func(t *testing.T) {
		svc, _ := setupService(t)
		require.ErrorIs(t, svc.RemoveRoute("nope"), errors.ErrRouteNotFound)
	})

	t.Run("Assert MarkForwarded persists the time", func(t *testing.T) {
		require := require.New(t)
		svc, _ := setupService(t)

		route, err := svc.AddRoute(&domain.Route{SourceChatID: -5})
		require.NoError(err)

		at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		svc.MarkForwarded(route, at)

		stored, err := svc.GetRoute(route.ID)
		require.NoError(err)
		require.True(at.Equal(stored.LastForward))
	})
}
