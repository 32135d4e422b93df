package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/totl-app/totl-api/internal/domain/result"
)

type ResultRepository struct {
	mu      sync.RWMutex
	results []result.Result
}

func NewResultRepository(results []result.Result) *ResultRepository {
	return &ResultRepository{results: append([]result.Result(nil), results...)}
}

func (r *ResultRepository) ListByGameweek(_ context.Context, gameweek int) ([]result.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.Result, 0, len(r.results))
	for _, item := range r.results {
		if item.Gameweek == gameweek {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *ResultRepository) GetByFixture(_ context.Context, gameweek, fixtureIndex int) (result.Result, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.results {
		if item.Gameweek == gameweek && item.FixtureIndex == fixtureIndex {
			return item, true, nil
		}
	}
	return result.Result{}, false, nil
}

func (r *ResultRepository) Upsert(_ context.Context, item result.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.results {
		if r.results[idx].Gameweek == item.Gameweek && r.results[idx].FixtureIndex == item.FixtureIndex {
			r.results[idx] = item
			return nil
		}
	}
	r.results = append(r.results, item)
	return nil
}

func (r *ResultRepository) ListResultedGameweeks(_ context.Context) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[int]struct{})
	out := make([]int, 0, 8)
	for _, item := range r.results {
		if _, ok := seen[item.Gameweek]; ok {
			continue
		}
		seen[item.Gameweek] = struct{}{}
		out = append(out, item.Gameweek)
	}
	sort.Ints(out)
	return out, nil
}
