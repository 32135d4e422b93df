package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/totl-app/totl-api/internal/domain/fixture"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	fixtures []fixture.Fixture
}

func NewFixtureRepository(fixtures []fixture.Fixture) *FixtureRepository {
	return &FixtureRepository{fixtures: append([]fixture.Fixture(nil), fixtures...)}
}

func (r *FixtureRepository) ListByGameweek(_ context.Context, gameweek int) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]fixture.Fixture, 0, len(r.fixtures))
	for _, item := range r.fixtures {
		if item.Gameweek == gameweek {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FixtureIndex < out[j].FixtureIndex })
	return out, nil
}

func (r *FixtureRepository) GetByAPIMatchID(_ context.Context, apiMatchID int64) (fixture.Fixture, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.fixtures {
		if item.APIMatchID != 0 && item.APIMatchID == apiMatchID {
			return item, true, nil
		}
	}
	return fixture.Fixture{}, false, nil
}

func (r *FixtureRepository) ListGameweeks(_ context.Context) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int]struct{})
	out := make([]int, 0, 8)
	for _, item := range r.fixtures {
		if _, ok := seen[item.Gameweek]; ok {
			continue
		}
		seen[item.Gameweek] = struct{}{}
		out = append(out, item.Gameweek)
	}
	sort.Ints(out)
	return out, nil
}
