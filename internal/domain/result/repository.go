package result

import "context"

type Repository interface {
	ListByGameweek(ctx context.Context, gameweek int) ([]Result, error)
	GetByFixture(ctx context.Context, gameweek, fixtureIndex int) (Result, bool, error)
	Upsert(ctx context.Context, item Result) error
	// ListResultedGameweeks returns, ascending, every gameweek with at
	// least one declared result.
	ListResultedGameweeks(ctx context.Context) ([]int, error)
}
