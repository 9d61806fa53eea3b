package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/pricecart/backend/internal/domain"
)

// Scoring constants for the lexical matcher
const (
	minScoreDenominator = 2   // caps a one-token query at 0.5 from keyword hits alone
	nameBoost           = 0.1 // normalized product name contains the first query token
	maxScore            = 1.0
	minContainmentLen   = 2 // shorter tokens only hit keywords they equal exactly
)

// Matcher picks the catalog product a free-text query refers to.
type Matcher interface {
	Match(ctx context.Context, query string, products []domain.Product) (domain.MatchResult, error)
}

// MatchConfig holds configuration for the matching service
type MatchConfig struct {
	EnableDebugLogging bool
}

// MatchingService is the default Matcher: a permissive token-overlap
// heuristic over product keywords.
type MatchingService struct {
	enableDebugLogging bool
}

// NewMatchingService creates a new matching service with the given configuration
func NewMatchingService(config MatchConfig) *MatchingService {
	return &MatchingService{
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Match scores query against every product and returns the best one.
// Ties keep the product that comes first in catalog order. A winning score
// of zero means no product matched at all.
func (s *MatchingService) Match(
	ctx context.Context,
	query string,
	products []domain.Product,
) (domain.MatchResult, error) {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return domain.MatchResult{NeedsReview: true}, nil
	}

	bestIdx := -1
	highestScore := -1.0 // so the first product always takes the lead

	for i := range products {
		select {
		case <-ctx.Done():
			return domain.MatchResult{}, ctx.Err()
		default:
		}

		score := scoreProduct(tokens, &products[i])

		if s.enableDebugLogging {
			log.Printf("[MATCH] %q vs %s | score: %.3f", query, products[i].ID, score)
		}

		if score > highestScore {
			highestScore = score
			bestIdx = i
		}
	}

	if bestIdx < 0 || highestScore <= 0 {
		return domain.MatchResult{NeedsReview: true}, nil
	}

	product := products[bestIdx]
	if s.enableDebugLogging {
		log.Printf("[MATCH] Best match for %q: %s (confidence: %.3f)", query, product.ID, highestScore)
	}

	return domain.MatchResult{
		Product:     &product,
		Confidence:  highestScore,
		NeedsReview: highestScore < domain.ReviewThreshold,
	}, nil
}

// scoreProduct computes hit/max(2, len(tokens)) plus the name boost, capped at 1.
func scoreProduct(tokens []string, product *domain.Product) float64 {
	hit := 0
	for _, t := range tokens {
		for _, k := range product.Keywords {
			if tokenHitsKeyword(t, k) {
				hit++
				break
			}
		}
	}

	score := float64(hit) / float64(max(minScoreDenominator, len(tokens)))
	if strings.Contains(Normalize(product.Name), tokens[0]) {
		score += nameBoost
	}
	return min(maxScore, score)
}

// tokenHitsKeyword is bidirectional substring containment, so "banana"
// matches "bananas" and vice versa. Containment needs the shorter side to
// have at least minContainmentLen characters; otherwise a stray "a" would hit
// nearly every keyword.
func tokenHitsKeyword(token, keyword string) bool {
	if token == keyword {
		return true
	}
	if len(token) >= minContainmentLen && strings.Contains(keyword, token) {
		return true
	}
	return len(keyword) >= minContainmentLen && strings.Contains(token, keyword)
}
