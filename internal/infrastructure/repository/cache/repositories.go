package cache

import (
	"context"
	"strconv"

	"github.com/totl-app/totl-api/internal/domain/fixture"
	"github.com/totl-app/totl-api/internal/domain/minileague"
	"github.com/totl-app/totl-api/internal/domain/user"
	basecache "github.com/totl-app/totl-api/internal/platform/cache"
)

// Fixture, user and league rows change rarely between deadline windows, so
// they sit behind a TTL cache. Picks and results are read uncached: a stale
// result would skew scoring right when it matters most.

type FixtureRepository struct {
	next  fixture.Repository
	cache *basecache.Store
}

func NewFixtureRepository(next fixture.Repository, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) ListByGameweek(ctx context.Context, gameweek int) ([]fixture.Fixture, error) {
	key := "fixture:gw:" + strconv.Itoa(gameweek)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByGameweek(ctx, gameweek)
		if err != nil {
			return nil, err
		}
		return append([]fixture.Fixture(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]fixture.Fixture)
	return append([]fixture.Fixture(nil), items...), nil
}

func (r *FixtureRepository) GetByAPIMatchID(ctx context.Context, apiMatchID int64) (fixture.Fixture, bool, error) {
	key := "fixture:match:" + strconv.FormatInt(apiMatchID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByAPIMatchID(ctx, apiMatchID)
		if err != nil {
			return nil, err
		}
		return cachedFixtureByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return fixture.Fixture{}, false, err
	}

	cached, _ := v.(cachedFixtureByID)
	return cached.value, cached.exists, nil
}

func (r *FixtureRepository) ListGameweeks(ctx context.Context) ([]int, error) {
	v, err := r.cache.GetOrLoad(ctx, "fixture:gameweeks", func(ctx context.Context) (any, error) {
		items, err := r.next.ListGameweeks(ctx)
		if err != nil {
			return nil, err
		}
		return append([]int(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]int)
	return append([]int(nil), items...), nil
}

type cachedFixtureByID struct {
	value  fixture.Fixture
	exists bool
}

type UserRepository struct {
	next  user.Repository
	cache *basecache.Store
}

func NewUserRepository(next user.Repository, cache *basecache.Store) *UserRepository {
	return &UserRepository{next: next, cache: cache}
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	v, err := r.cache.GetOrLoad(ctx, "user:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]user.User(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]user.User)
	return append([]user.User(nil), items...), nil
}

func (r *UserRepository) ListNotifiable(ctx context.Context) ([]user.User, error) {
	v, err := r.cache.GetOrLoad(ctx, "user:notifiable", func(ctx context.Context) (any, error) {
		items, err := r.next.ListNotifiable(ctx)
		if err != nil {
			return nil, err
		}
		return append([]user.User(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]user.User)
	return append([]user.User(nil), items...), nil
}

type MiniLeagueRepository struct {
	next  minileague.Repository
	cache *basecache.Store
}

func NewMiniLeagueRepository(next minileague.Repository, cache *basecache.Store) *MiniLeagueRepository {
	return &MiniLeagueRepository{next: next, cache: cache}
}

func (r *MiniLeagueRepository) List(ctx context.Context) ([]minileague.League, error) {
	v, err := r.cache.GetOrLoad(ctx, "minileague:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]minileague.League(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]minileague.League)
	return append([]minileague.League(nil), items...), nil
}

func (r *MiniLeagueRepository) GetByID(ctx context.Context, leagueID string) (minileague.League, bool, error) {
	key := "minileague:id:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedLeagueByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return minileague.League{}, false, err
	}

	cached, _ := v.(cachedLeagueByID)
	return cached.value, cached.exists, nil
}

func (r *MiniLeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]minileague.Member, error) {
	key := "minileague:members:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListMembers(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return append([]minileague.Member(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]minileague.Member)
	return append([]minileague.Member(nil), items...), nil
}

func (r *MiniLeagueRepository) GetStartOverride(ctx context.Context, leagueID string) (int, bool, error) {
	key := "minileague:start:" + leagueID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		start, exists, err := r.next.GetStartOverride(ctx, leagueID)
		if err != nil {
			return nil, err
		}
		return cachedStartOverride{value: start, exists: exists}, nil
	})
	if err != nil {
		return 0, false, err
	}

	cached, _ := v.(cachedStartOverride)
	return cached.value, cached.exists, nil
}

type cachedLeagueByID struct {
	value  minileague.League
	exists bool
}

type cachedStartOverride struct {
	value  int
	exists bool
}
