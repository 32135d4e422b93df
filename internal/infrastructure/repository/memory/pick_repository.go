package memory

import (
	"context"
	"sync"

	"github.com/totl-app/totl-api/internal/domain/pick"
)

type PickRepository struct {
	mu    sync.RWMutex
	picks []pick.Pick
}

func NewPickRepository(picks []pick.Pick) *PickRepository {
	return &PickRepository{picks: append([]pick.Pick(nil), picks...)}
}

func (r *PickRepository) ListByGameweek(_ context.Context, gameweek int) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0, len(r.picks))
	for _, item := range r.picks {
		if item.Gameweek == gameweek {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *PickRepository) ListByFixture(_ context.Context, gameweek, fixtureIndex int) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0, len(r.picks))
	for _, item := range r.picks {
		if item.Gameweek == gameweek && item.FixtureIndex == fixtureIndex {
			out = append(out, item)
		}
	}
	return out, nil
}
