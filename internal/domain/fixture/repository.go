package fixture

import "context"

// Repository exposes fixture read operations.
type Repository interface {
	ListByGameweek(ctx context.Context, gameweek int) ([]Fixture, error)
	GetByAPIMatchID(ctx context.Context, apiMatchID int64) (Fixture, bool, error)
	// ListGameweeks returns every known gameweek number, ascending.
	ListGameweeks(ctx context.Context) ([]int, error)
}
