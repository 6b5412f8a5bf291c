package service

import (
	"testing"
	"time"

	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/domain"
	messageRepo "github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/repository"
	messageService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/service"
	routeDomain "github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/domain"
	routeRepo "github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/repository"
	routeService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/service"
	"github.com/stretchr/testify/require"
)

func TestGenerateFeed(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	rRepo, err := routeRepo.NewFileStorage(dir)
	require.NoError(err)
	mRepo, err := messageRepo.NewFileStorage(dir)
	require.NoError(err)

	routes := routeService.New(rRepo)
	messages := messageService.New(mRepo)
	svc := New(routes, messages)

	route, err := routes.AddRoute(&routeDomain.Route{SourceChatID: -100, SourceTitle: "Deals", DestinationChatID: 42, FilterID: "sales"})
	require.NoError(err)

	require.NoError(messages.SaveMessage(&domain.Message{ID: 1, RouteID: route.ID, Label: domain.LabelText, Text: "ordinary update", ForwardedAt: time.Now()}))
	require.NoError(messages.SaveMessage(&domain.Message{ID: 2, RouteID: route.ID, Label: domain.LabelPhoto, ForwardedAt: time.Now()}))

	feed, err := svc.GenerateFeed(route.ID, "http://localhost:8080")
	require.NoError(err)
	require.Contains(feed.Title, "Deals")
	require.Len(feed.Items, 2)
	require.Equal("[photo]", feed.Items[0].Title)
	require.Equal("ordinary update", feed.Items[1].Title)

	rss, err := feed.ToRss()
	require.NoError(err)
	require.Contains(rss, "ordinary update")

	_, err = svc.GenerateFeed("missing", "http://localhost:8080")
	require.Error(err)
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 5))
	require.Equal(t, "ab...", truncate("abcdef", 2))
	require.Equal(t, "пр...", truncate("привет", 2))
}
