package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/domain"
	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/repository"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service handles route business logic and keeps an index of active routes
// by source chat
type Service struct {
	repo     repository.Repository
	bySource map[int64][]*domain.Route
	mu       sync.RWMutex
}

// New creates a new route service
func New(repo repository.Repository) *Service {
	return &Service{
		repo:     repo,
		bySource: make(map[int64][]*domain.Route),
	}
}

// Start loads the active routes into the source index
func (s *Service) Start() error {
	routes, err := s.repo.GetAllRoutes()
	if err != nil {
		return oops.With("context", "failed to load routes").Wrap(err)
	}

	index := lo.GroupBy(lo.Filter(routes, func(r *domain.Route, _ int) bool {
		return r.IsActive
	}), func(r *domain.Route) int64 {
		return r.SourceChatID
	})

	s.mu.Lock()
	s.bySource = index
	s.mu.Unlock()

	slog.Info("Routes loaded", "total", len(routes), "sources", len(index))
	return nil
}

// AddRoute creates and stores a new active route
func (s *Service) AddRoute(route *domain.Route) (*domain.Route, error) {
	route.ID = uuid.NewString()[:8]
	route.AddedAt = time.Now()
	route.IsActive = true

	if err := s.repo.SaveRoute(route); err != nil {
		return nil, oops.With("route_id", route.ID, "context", "failed to save route").Wrap(err)
	}

	s.mu.Lock()
	s.bySource[route.SourceChatID] = append(s.bySource[route.SourceChatID], route)
	s.mu.Unlock()

	return route, nil
}

// RemoveRoute deletes a route and drops it from the index
func (s *Service) RemoveRoute(routeID string) error {
	route, err := s.repo.GetRoute(routeID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteRoute(routeID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	remaining := lo.Reject(s.bySource[route.SourceChatID], func(r *domain.Route, _ int) bool {
		return r.ID == routeID
	})
	if len(remaining) == 0 {
		delete(s.bySource, route.SourceChatID)
	} else {
		s.bySource[route.SourceChatID] = remaining
	}
	return nil
}

// RoutesForSource returns the active routes leaving a chat
func (s *Service) RoutesForSource(chatID int64) []*domain.Route {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.Route(nil), s.bySource[chatID]...)
}

// GetRoute retrieves a route by ID
func (s *Service) GetRoute(routeID string) (*domain.Route, error) {
	return s.repo.GetRoute(routeID)
}

// GetAllRoutes retrieves all routes
func (s *Service) GetAllRoutes() ([]*domain.Route, error) {
	return s.repo.GetAllRoutes()
}

// MarkForwarded records the time of the latest forward on a route
func (s *Service) MarkForwarded(route *domain.Route, at time.Time) {
	stored, err := s.repo.GetRoute(route.ID)
	if err != nil {
		slog.Error("Failed to load route", "route_id", route.ID, "error", err)
		return
	}
	stored.LastForward = at
	if err := s.repo.SaveRoute(stored); err != nil {
		slog.Error("Failed to update route last forward time", "route_id", route.ID, "error", err)
	}
}
