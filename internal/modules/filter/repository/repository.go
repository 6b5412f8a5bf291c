package repository

import (
	"context"

	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/domain"
)

// Repository defines the interface for filter persistence.
// GetFilter returns errors.ErrFilterNotFound when no record is stored
// under the identifier; implementations must be safe for concurrent reads.
type Repository interface {
	GetFilter(ctx context.Context, filterID string) (*domain.Record, error)
	GetAllFilters(ctx context.Context) ([]*domain.Record, error)
	SaveFilter(ctx context.Context, record *domain.Record) error
	DeleteFilter(ctx context.Context, filterID string) error
}
