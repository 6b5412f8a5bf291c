package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/domain"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// FileStorage implements Repository using one JSON file per filter
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStorage creates a new file-based filter repository
func NewFileStorage(basePath string) (*FileStorage, error) {
	filterPath := filepath.Join(basePath, "filters")
	if err := os.MkdirAll(filterPath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create filters directory").Wrap(err)
	}

	return &FileStorage{basePath: filterPath}, nil
}

func (s *FileStorage) path(filterID string) (string, error) {
	if filterID == "" || filterID != filepath.Base(filterID) || filterID == "." || filterID == ".." {
		return "", oops.With("filter_id", filterID).Wrap(errors.ErrInvalidRecord)
	}
	return filepath.Join(s.basePath, filterID+".json"), nil
}

func (s *FileStorage) GetFilter(_ context.Context, filterID string) (*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.path(filterID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrFilterNotFound
		}
		return nil, oops.With("filter_id", filterID, "context", "failed to read filter").Wrap(err)
	}

	var record domain.Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, oops.With("filter_id", filterID, "context", "failed to unmarshal filter").Wrap(err)
	}
	record.ID = filterID

	return &record, nil
}

func (s *FileStorage) GetAllFilters(_ context.Context) ([]*domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, oops.With("directory", s.basePath, "context", "failed to read filters directory").Wrap(err)
	}

	records := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (*domain.Record, bool) {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			return nil, false
		}

		data, err := os.ReadFile(filepath.Join(s.basePath, entry.Name()))
		if err != nil {
			return nil, false
		}

		var record domain.Record
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, false
		}

		return &record, true
	})

	return records, nil
}

func (s *FileStorage) SaveFilter(_ context.Context, record *domain.Record) error {
	if record == nil {
		return errors.ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.path(record.ID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return oops.With("filter_id", record.ID, "context", "failed to marshal filter").Wrap(err)
	}

	return os.WriteFile(path, data, 0644)
}

func (s *FileStorage) DeleteFilter(_ context.Context, filterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.path(filterID)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errors.ErrFilterNotFound
		}
		return oops.With("filter_id", filterID, "context", "failed to delete filter").Wrap(err)
	}
	return nil
}
