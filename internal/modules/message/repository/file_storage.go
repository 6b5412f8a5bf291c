package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/domain"
	"github.com/samber/oops"
)

// FileStorage implements Repository using one JSON file per journal entry,
// grouped by route
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStorage creates a new file-based journal
func NewFileStorage(basePath string) (*FileStorage, error) {
	messagePath := filepath.Join(basePath, "messages")
	if err := os.MkdirAll(messagePath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create messages directory").Wrap(err)
	}

	return &FileStorage{basePath: messagePath}, nil
}

func (s *FileStorage) SaveMessage(message *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	msgDir := filepath.Join(s.basePath, message.RouteID)
	if err := os.MkdirAll(msgDir, 0755); err != nil {
		return oops.With("message_dir", msgDir, "context", "failed to create message directory").Wrap(err)
	}

	// zero padded so directory order is message order
	path := filepath.Join(msgDir, fmt.Sprintf("%020d.json", message.ID))
	data, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		return oops.With("route_id", message.RouteID, "message_id", message.ID, "context", "failed to marshal message").Wrap(err)
	}

	return os.WriteFile(path, data, 0644)
}

// GetMessages returns up to limit entries, newest first
func (s *FileStorage) GetMessages(routeID string, limit int) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.readDir(routeID)
	if err != nil {
		return nil, err
	}

	messages := []*domain.Message{}
	for i := len(entries) - 1; i >= 0 && len(messages) < limit; i-- {
		if message, ok := s.readEntry(routeID, entries[i]); ok {
			messages = append(messages, message)
		}
	}

	return messages, nil
}

func (s *FileStorage) GetRecentMessages(routeID string, since time.Time) ([]*domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.readDir(routeID)
	if err != nil {
		return nil, err
	}

	messages := []*domain.Message{}
	for _, entry := range entries {
		message, ok := s.readEntry(routeID, entry)
		if ok && message.ForwardedAt.After(since) {
			messages = append(messages, message)
		}
	}

	return messages, nil
}

func (s *FileStorage) readDir(routeID string) ([]os.DirEntry, error) {
	msgDir := filepath.Join(s.basePath, routeID)
	entries, err := os.ReadDir(msgDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, oops.With("route_id", routeID, "message_dir", msgDir, "context", "failed to read messages directory").Wrap(err)
	}
	return entries, nil
}

func (s *FileStorage) readEntry(routeID string, entry os.DirEntry) (*domain.Message, bool) {
	if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
		return nil, false
	}

	data, err := os.ReadFile(filepath.Join(s.basePath, routeID, entry.Name()))
	if err != nil {
		return nil, false
	}

	var message domain.Message
	if err := json.Unmarshal(data, &message); err != nil {
		return nil, false
	}
	return &message, true
}
