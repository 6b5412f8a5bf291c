package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/VictoriaMetrics/metrics"
	feedService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/feed/service"
	messageDomain "github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/domain"
	messageRepo "github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/repository"
	messageService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/service"
	routeDomain "github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/domain"
	routeRepo "github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/repository"
	routeService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/service"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/config"
	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	dir := t.TempDir()
	rRepo, err := routeRepo.NewFileStorage(dir)
	require.NoError(t, err)
	mRepo, err := messageRepo.NewFileStorage(dir)
	require.NoError(t, err)

	routes := routeService.New(rRepo)
	messages := messageService.New(mRepo)
	route, err := routes.AddRoute(&routeDomain.Route{SourceChatID: -100, SourceTitle: "Deals", DestinationChatID: 1, FilterID: "f"})
	require.NoError(t, err)
	require.NoError(t, messages.SaveMessage(&messageDomain.Message{ID: 5, RouteID: route.ID, Label: messageDomain.LabelText, Text: "half price", ForwardedAt: time.Now()}))

	set := metrics.NewSet()
	set.GetOrCreateCounter(`forward_decisions_total{result="true",reason="type_match"}`).Inc()

	handler := New(&config.Config{HTTPPort: "0"}, feedService.New(routes, messages), set).Handler()

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	t.Run("Assert feed renders forwarded messages", func(t *testing.T) {
		require := require.New(t)
		rec := get("/rss/" + route.ID)
		require.Equal(http.StatusOK, rec.Code)
		require.Contains(rec.Header().Get("Content-Type"), "application/rss+xml")
		require.Contains(rec.Body.String(), "half price")
	})

	t.Run("Assert unknown route is 404", func(t *testing.T) {
		require.Equal(t, http.StatusNotFound, get("/rss/unknown").Code)
	})

	t.Run("Assert metrics are exposed", func(t *testing.T) {
		require := require.New(t)
		rec := get("/metrics")
		require.Equal(http.StatusOK, rec.Code)
		require.Contains(rec.Body.String(), `forward_decisions_total{result="true",reason="type_match"} 1`)
	})

	t.Run("Assert health is ok", func(t *testing.T) {
		rec := get("/health")
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})
}
