package service

import (
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/domain"
	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/repository"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service resolves filters and derives their active criteria
type Service struct {
	repo repository.Repository
}

// New creates a new filter service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// ActiveCriteria returns the criteria of record that are switched on.
// The identifier is never a criterion.
func ActiveCriteria(record *domain.Record) (domain.ActiveSet, error) {
	if record == nil {
		return nil, oops.With("context", "active criteria need a filter record").Wrap(errors.ErrInvalidRecord)
	}

	active := lo.FilterMap(domain.CriterionNames(), func(name string, _ int) (domain.Criterion, bool) {
		c := domain.Criterion(name)
		return c, record.IsActive(c)
	})

	set := make(domain.ActiveSet, len(active))
	for _, c := range active {
		set[c] = struct{}{}
	}
	return set, nil
}

// BuildActiveSet loads the filter and returns it along with its active
// criteria. A missing filter yields errors.ErrFilterNotFound.
func (s *Service) BuildActiveSet(ctx context.Context, filterID string) (*domain.Record, domain.ActiveSet, error) {
	record, err := s.repo.GetFilter(ctx, filterID)
	if stderrors.Is(err, errors.ErrFilterNotFound) {
		slog.Info("No filter for id", "filter_id", filterID)
		return nil, nil, err
	}
	if err != nil {
		return nil, nil, oops.With("filter_id", filterID, "context", "failed to load filter").Wrap(err)
	}

	set, err := ActiveCriteria(record)
	if err != nil {
		return nil, nil, err
	}
	return record, set, nil
}

// GetFilter retrieves a filter by ID
func (s *Service) GetFilter(ctx context.Context, filterID string) (*domain.Record, error) {
	return s.repo.GetFilter(ctx, filterID)
}

// GetAllFilters retrieves all filters
func (s *Service) GetAllFilters(ctx context.Context) ([]*domain.Record, error) {
	return s.repo.GetAllFilters(ctx)
}

// DeleteFilter deletes a filter
func (s *Service) DeleteFilter(ctx context.Context, filterID string) error {
	return s.repo.DeleteFilter(ctx, filterID)
}

// SetCriterion updates a single criterion of a filter, creating the filter
// when it does not exist yet
func (s *Service) SetCriterion(ctx context.Context, filterID string, criterion domain.Criterion, value string) (*domain.Record, error) {
	record, err := s.repo.GetFilter(ctx, filterID)
	if stderrors.Is(err, errors.ErrFilterNotFound) {
		record = &domain.Record{ID: filterID}
	} else if err != nil {
		return nil, oops.With("filter_id", filterID, "context", "failed to load filter").Wrap(err)
	}

	if err := record.Set(criterion, value); err != nil {
		return nil, oops.With("filter_id", filterID, "criterion", criterion, "value", value).Wrap(errors.ErrInvalidCriterion)
	}

	if err := s.repo.SaveFilter(ctx, record); err != nil {
		return nil, oops.With("filter_id", filterID, "context", "failed to save filter").Wrap(err)
	}
	return record, nil
}
