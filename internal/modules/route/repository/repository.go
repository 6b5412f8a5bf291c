package repository

import (
	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/domain"
)

// Repository defines the interface for route persistence
type Repository interface {
	SaveRoute(route *domain.Route) error
	GetRoute(routeID string) (*domain.Route, error)
	GetAllRoutes() ([]*domain.Route, error)
	DeleteRoute(routeID string) error
}
