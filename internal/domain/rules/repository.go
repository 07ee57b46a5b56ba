package rules

import "context"

// Repository provides immutable rule sets keyed by season.
type Repository interface {
	GetBySeason(ctx context.Context, season int) (ScoringRuleSet, bool, error)
	ListSeasons(ctx context.Context) ([]int, error)
}
