package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/VictoriaMetrics/metrics"
	filterDomain "github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/domain"
	filterService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/filter/service"
	messageDomain "github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/domain"
	messageService "github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/service"
	"github.com/reshetovitsme/telegram-forward-filter/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// DecisionMetric counts forwarding decisions by result and reason
const DecisionMetric = `forward_decisions_total{result="%t",reason="%s"}`

const (
	reasonNoFilter    = "no_filter"
	reasonTypeMatch   = "type_match"
	reasonNoRule      = "no_content_rule"
	reasonMediaGuard  = "media_guard"
	reasonContentRule = "content_rule"
)

// Service decides whether a message passes a filter
type Service struct {
	filters *filterService.Service
	metrics *metrics.Set
}

// New creates a new forwarding decision service
func New(filters *filterService.Service, m *metrics.Set) *Service {
	return &Service{
		filters: filters,
		metrics: m,
	}
}

// ShouldForward reports whether msg should be forwarded under filterID.
//
// A missing filter forwards nothing. A message whose label is an active
// criterion is forwarded outright. Otherwise the contain/notcontain rules
// apply to text-only messages: the message is forwarded when no required
// keyword is present or when a banned keyword is present. Messages with
// media never pass a content rule.
func (s *Service) ShouldForward(ctx context.Context, filterID string, msg messageDomain.View) (bool, error) {
	record, active, err := s.filters.BuildActiveSet(ctx, filterID)
	if stderrors.Is(err, errors.ErrFilterNotFound) {
		return s.decide(false, reasonNoFilter), nil
	}
	if err != nil {
		return false, oops.With("filter_id", filterID, "context", "failed to build active filter set").Wrap(err)
	}

	label := messageService.Classify(msg)
	if criterion, err := filterDomain.ParseCriterion(label.String()); err == nil && active.Has(criterion) {
		slog.Info("Filter caught", "filter_id", filterID, "label", label)
		return s.decide(true, reasonTypeMatch), nil
	}

	if !active.Has(filterDomain.CriterionContain) && !active.Has(filterDomain.CriterionNotcontain) {
		slog.Info("No content rule and no type match", "filter_id", filterID, "label", label)
		return s.decide(false, reasonNoRule), nil
	}

	text := strings.ToLower(msg.Text)

	containsRequired := false
	if active.Has(filterDomain.CriterionContain) {
		if msg.HasMedia() {
			return s.decide(false, reasonMediaGuard), nil
		}
		containsRequired = containsAny(text, record.Contain)
	}

	containsBanned := false
	if active.Has(filterDomain.CriterionNotcontain) {
		if msg.HasMedia() {
			return s.decide(false, reasonMediaGuard), nil
		}
		containsBanned = containsAny(text, record.NotContain)
	}

	slog.Info("Content rules evaluated",
		"filter_id", filterID,
		"contains_required", containsRequired,
		"contains_banned", containsBanned,
	)

	return s.decide(!containsRequired || containsBanned, reasonContentRule), nil
}

func (s *Service) decide(result bool, reason string) bool {
	if s.metrics != nil {
		s.metrics.GetOrCreateCounter(fmt.Sprintf(DecisionMetric, result, reason)).Inc()
	}
	return result
}

// containsAny matches keywords as written against the lowercased text
func containsAny(text string, keywords []string) bool {
	return lo.SomeBy(keywords, func(keyword string) bool {
		return strings.Contains(text, keyword)
	})
}
