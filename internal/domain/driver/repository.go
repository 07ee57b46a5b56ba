package driver

import "context"

type Repository interface {
	List(ctx context.Context) ([]Driver, error)
	GetByID(ctx context.Context, driverID string) (Driver, bool, error)
}
