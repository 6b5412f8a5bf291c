package repository

import (
	"time"

	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/domain"
)

// Repository defines the interface for the forwarded message journal
type Repository interface {
	SaveMessage(message *domain.Message) error
	GetMessages(routeID string, limit int) ([]*domain.Message, error)
	GetRecentMessages(routeID string, since time.Time) ([]*domain.Message, error)
}
