package service

import (
	"time"

	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/domain"
	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/repository"
)

// Service handles the forwarded message journal
type Service struct {
	repo repository.Repository
}

// New creates a new message service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// SaveMessage records a forwarded message
func (s *Service) SaveMessage(message *domain.Message) error {
	return s.repo.SaveMessage(message)
}

// GetMessages retrieves the latest forwarded messages of a route
func (s *Service) GetMessages(routeID string, limit int) ([]*domain.Message, error) {
	return s.repo.GetMessages(routeID, limit)
}

// GetRecentMessages retrieves messages forwarded since a given time
func (s *Service) GetRecentMessages(routeID string, since time.Time) ([]*domain.Message, error) {
	return s.repo.GetRecentMessages(routeID, since)
}
