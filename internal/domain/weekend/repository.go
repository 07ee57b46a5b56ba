package weekend

import "context"

// Repository persists full race weekend result sets.
type Repository interface {
	GetByRaceID(ctx context.Context, raceID string) (*Results, bool, error)
	ListRaceIDsBySeason(ctx context.Context, season int) ([]string, error)
	Upsert(ctx context.Context, results *Results) error
}
