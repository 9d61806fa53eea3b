package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lucsky/cuid"

	"github.com/pricecart/backend/internal/domain"
)

// ComparisonServiceConfig holds configuration for the comparison service
type ComparisonServiceConfig struct {
	EnableDebugLogging bool
}

// ComparisonService runs the match -> price -> aggregate -> plan pipeline for
// a shopping list. It holds no per-request state; concurrent calls are safe
// as long as the catalog and matcher are.
type ComparisonService struct {
	catalog            domain.CatalogRepository
	matcher            Matcher
	history            domain.HistoryRepository
	enableDebugLogging bool

	now   func() time.Time
	newID func() string
}

// NewComparisonService creates a comparison service. A nil matcher selects the
// lexical MatchingService; a nil history disables history recording.
func NewComparisonService(
	catalog domain.CatalogRepository,
	matcher Matcher,
	history domain.HistoryRepository,
	config ComparisonServiceConfig,
) *ComparisonService {
	if matcher == nil {
		matcher = NewMatchingService(MatchConfig{EnableDebugLogging: config.EnableDebugLogging})
	}

	return &ComparisonService{
		catalog:            catalog,
		matcher:            matcher,
		history:            history,
		enableDebugLogging: config.EnableDebugLogging,
		now:                time.Now,
		newID:              cuid.New,
	}
}

// Compare prices every item of the request and builds the shopping plan.
// Bad parameters are clamped, never rejected; the only errors are catalog
// failures and context cancellation.
func (s *ComparisonService) Compare(
	ctx context.Context,
	request *domain.ComparisonRequest,
) (*domain.Comparison, error) {
	if request == nil {
		request = &domain.ComparisonRequest{}
	}

	maxStores := domain.ClampMaxStores(request.MaxStores)
	strategy := domain.ParseStrategy(string(request.Strategy))

	items := make([]domain.PricedItem, 0, len(request.Items))
	for _, item := range request.Items {
		products, err := s.catalog.Candidates(ctx, item.Query)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}

		match, err := s.matcher.Match(ctx, item.Query, products)
		if err != nil {
			return nil, err
		}

		items = append(items, ResolvePrices(item, match))
	}

	summary := Aggregate(items)
	plan := BuildPlan(items, summary, strategy, maxStores)

	comparison := &domain.Comparison{
		ID:                      s.newID(),
		LastUpdated:             s.now().UTC(),
		Strategy:                strategy,
		MaxStores:               maxStores,
		Items:                   items,
		Cart:                    summary,
		Plan:                    plan,
		EstimatedSavingsVsWorst: Round2(summary.WorstSingleStore.Total - plan.Total),
	}

	if s.enableDebugLogging {
		log.Printf("[COMPARE] %d items | strategy=%s maxStores=%d | plan total %.2f at %v (constrained=%v)",
			len(items), strategy, maxStores, plan.Total, plan.StoresUsed, plan.Constrained)
	}

	s.recordHistory(ctx, request, comparison)

	return comparison, nil
}

// History returns the client's recent comparisons, newest first.
func (s *ComparisonService) History(ctx context.Context, clientID string) ([]domain.HistoryEntry, error) {
	if s.history == nil || clientID == "" {
		return nil, domain.ErrHistoryNotFound
	}
	return s.history.List(ctx, clientID)
}

// ClearHistory drops the client's recorded comparisons.
func (s *ComparisonService) ClearHistory(ctx context.Context, clientID string) error {
	if s.history == nil || clientID == "" {
		return nil
	}
	return s.history.Clear(ctx, clientID)
}

// recordHistory stores a condensed entry. Failures are logged, not returned:
// history is a convenience and must not fail the comparison.
func (s *ComparisonService) recordHistory(
	ctx context.Context,
	request *domain.ComparisonRequest,
	comparison *domain.Comparison,
) {
	if s.history == nil || request.ClientID == "" {
		return
	}

	queries := make([]string, 0, len(comparison.Items))
	for _, it := range comparison.Items {
		queries = append(queries, it.Item.Query)
	}

	input := strings.TrimSpace(request.RawInput)
	if input == "" {
		input = strings.Join(queries, ", ")
	}

	entry := domain.HistoryEntry{
		ID:           comparison.ID,
		CreatedAt:    comparison.LastUpdated,
		Input:        input,
		Items:        queries,
		TotalSavings: comparison.EstimatedSavingsVsWorst,
		PlanTotal:    comparison.Plan.Total,
		StoresUsed:   comparison.Plan.StoresUsed,
		Strategy:     comparison.Strategy,
		MaxStores:    comparison.MaxStores,
	}

	if err := s.history.Append(ctx, request.ClientID, entry); err != nil {
		log.Printf("[HISTORY] failed to record comparison %s: %v", comparison.ID, err)
	}
}
