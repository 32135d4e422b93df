package pick

import "context"

// Repository exposes pick read operations.
type Repository interface {
	ListByGameweek(ctx context.Context, gameweek int) ([]Pick, error)
	ListByFixture(ctx context.Context, gameweek, fixtureIndex int) ([]Pick, error)
}
