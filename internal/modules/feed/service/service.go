package service

import (
	"fmt"
	"html"

	"github.com/gorilla/feeds"
	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/domain"
	messageService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/service"
	routeService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/service"
	"github.com/samber/oops"
)

// FeedSize is the number of journal entries rendered per feed
const FeedSize = 50

// Service renders RSS feeds of forwarded messages
type Service struct {
	routes   *routeService.Service
	messages *messageService.Service
}

// New creates a new feed service
func New(routes *routeService.Service, messages *messageService.Service) *Service {
	return &Service{
		routes:   routes,
		messages: messages,
	}
}

// GenerateFeed generates an RSS feed of what a route forwarded
func (s *Service) GenerateFeed(routeID string, baseURL string) (*feeds.Feed, error) {
	route, err := s.routes.GetRoute(routeID)
	if err != nil {
		return nil, oops.With("route_id", routeID, "context", "route not found").Wrap(err)
	}

	messages, err := s.messages.GetMessages(routeID, FeedSize)
	if err != nil {
		return nil, oops.With("route_id", routeID, "context", "failed to get messages").Wrap(err)
	}

	title := route.SourceTitle
	if title == "" {
		title = fmt.Sprintf("%d", route.SourceChatID)
	}

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("%s - forwarded with filter %s", title, route.FilterID),
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/rss/%s", baseURL, route.ID)},
		Description: fmt.Sprintf("Messages forwarded from %s to %d", title, route.DestinationChatID),
		Created:     route.AddedAt,
		Updated:     route.LastForward,
	}

	for _, msg := range messages {
		feed.Items = append(feed.Items, messageToFeedItem(msg))
	}
	return feed, nil
}

func messageToFeedItem(msg *domain.Message) *feeds.Item {
	description := msg.Text
	if description == "" {
		description = fmt.Sprintf("[%s]", msg.Label)
	}

	return &feeds.Item{
		Title:       truncate(description, 100),
		Link:        &feeds.Link{Href: msg.Link},
		Description: description,
		Content:     fmt.Sprintf("<p>%s</p><p><em>%s</em></p>", html.EscapeString(description), msg.Label),
		Author:      &feeds.Author{Name: msg.Author},
		Created:     msg.ForwardedAt,
		Id:          fmt.Sprintf("%s-%d", msg.RouteID, msg.ID),
	}
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
