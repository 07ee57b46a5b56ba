package selection

import "context"

type Repository interface {
	GetByID(ctx context.Context, selectionID string) (TeamSelection, bool, error)
	ListByRace(ctx context.Context, raceID string) ([]TeamSelection, error)
	Insert(ctx context.Context, item TeamSelection) error
}
