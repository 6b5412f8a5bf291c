package repository

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/route/domain"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// FileStorage implements Repository using file system
type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

// NewFileStorage creates a new file-based route repository
func NewFileStorage(basePath string) (*FileStorage, error) {
	routePath := filepath.Join(basePath, "routes")
	if err := os.MkdirAll(routePath, 0755); err != nil {
		return nil, oops.With("base_path", basePath, "context", "failed to create routes directory").Wrap(err)
	}

	return &FileStorage{basePath: routePath}, nil
}

func (s *FileStorage) SaveRoute(route *domain.Route) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.basePath, route.ID+".json")
	data, err := json.MarshalIndent(route, "", "  ")
	if err != nil {
		return oops.With("route_id", route.ID, "context", "failed to marshal route").Wrap(err)
	}

	return os.WriteFile(path, data, 0644)
}

func (s *FileStorage) GetRoute(routeID string) (*domain.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if routeID != filepath.Base(routeID) {
		return nil, errors.ErrRouteNotFound
	}

	path := filepath.Join(s.basePath, routeID+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ErrRouteNotFound
		}
		return nil, oops.With("route_id", routeID, "context", "failed to read route").Wrap(err)
	}

	var route domain.Route
	if err := json.Unmarshal(data, &route); err != nil {
		return nil, oops.With("route_id", routeID, "context", "failed to unmarshal route").Wrap(err)
	}

	return &route, nil
}

func (s *FileStorage) GetAllRoutes() ([]*domain.Route, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		return nil, oops.With("directory", s.basePath, "context", "failed to read routes directory").Wrap(err)
	}

	routes := lo.FilterMap(entries, func(entry os.DirEntry, _ int) (*domain.Route, bool) {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			return nil, false
		}

		data, err := os.ReadFile(filepath.Join(s.basePath, entry.Name()))
		if err != nil {
			return nil, false
		}

		var route domain.Route
		if err := json.Unmarshal(data, &route); err != nil {
			return nil, false
		}

		return &route, true
	})

	sort.Slice(routes, func(i, j int) bool {
		return routes[i].AddedAt.Before(routes[j].AddedAt)
	})
	return routes, nil
}

func (s *FileStorage) DeleteRoute(routeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if routeID != filepath.Base(routeID) {
		return errors.ErrRouteNotFound
	}

	path := filepath.Join(s.basePath, routeID+".json")
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errors.ErrRouteNotFound
		}
		return oops.With("route_id", routeID, "context", "failed to delete route").Wrap(err)
	}
	return nil
}
