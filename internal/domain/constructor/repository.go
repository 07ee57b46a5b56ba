package constructor

import "context"

type Repository interface {
	List(ctx context.Context) ([]Constructor, error)
	GetByID(ctx context.Context, constructorID string) (Constructor, bool, error)
}
