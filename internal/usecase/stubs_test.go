package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/totl-app/totl-api/internal/domain/fixture"
	"github.com/totl-app/totl-api/internal/domain/minileague"
	"github.com/totl-app/totl-api/internal/domain/notification"
	"github.com/totl-app/totl-api/internal/domain/pick"
	"github.com/totl-app/totl-api/internal/domain/result"
	"github.com/totl-app/totl-api/internal/domain/user"
)

type stubFixtureRepository struct {
	fixtures []fixture.Fixture
	err      error
}

func (s *stubFixtureRepository) ListByGameweek(_ context.Context, gameweek int) ([]fixture.Fixture, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []fixture.Fixture{}
	for _, item := range s.fixtures {
		if item.Gameweek == gameweek {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubFixtureRepository) GetByAPIMatchID(_ context.Context, apiMatchID int64) (fixture.Fixture, bool, error) {
	if s.err != nil {
		return fixture.Fixture{}, false, s.err
	}
	for _, item := range s.fixtures {
		if item.APIMatchID == apiMatchID {
			return item, true, nil
		}
	}
	return fixture.Fixture{}, false, nil
}

func (s *stubFixtureRepository) ListGameweeks(_ context.Context) ([]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	seen := map[int]struct{}{}
	out := []int{}
	for _, item := range s.fixtures {
		if _, ok := seen[item.Gameweek]; ok {
			continue
		}
		seen[item.Gameweek] = struct{}{}
		out = append(out, item.Gameweek)
	}
	sort.Ints(out)
	return out, nil
}

type stubPickRepository struct {
	picks []pick.Pick
	err   error
}

func (s *stubPickRepository) ListByGameweek(_ context.Context, gameweek int) ([]pick.Pick, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []pick.Pick{}
	for _, item := range s.picks {
		if item.Gameweek == gameweek {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubPickRepository) ListByFixture(_ context.Context, gameweek, fixtureIndex int) ([]pick.Pick, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []pick.Pick{}
	for _, item := range s.picks {
		if item.Gameweek == gameweek && item.FixtureIndex == fixtureIndex {
			out = append(out, item)
		}
	}
	return out, nil
}

type stubResultRepository struct {
	results []result.Result
	err     error
}

func (s *stubResultRepository) ListByGameweek(_ context.Context, gameweek int) ([]result.Result, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []result.Result{}
	for _, item := range s.results {
		if item.Gameweek == gameweek {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubResultRepository) GetByFixture(_ context.Context, gameweek, fixtureIndex int) (result.Result, bool, error) {
	if s.err != nil {
		return result.Result{}, false, s.err
	}
	for _, item := range s.results {
		if item.Gameweek == gameweek && item.FixtureIndex == fixtureIndex {
			return item, true, nil
		}
	}
	return result.Result{}, false, nil
}

func (s *stubResultRepository) Upsert(_ context.Context, item result.Result) error {
	if s.err != nil {
		return s.err
	}
	for idx := range s.results {
		if s.results[idx].Gameweek == item.Gameweek && s.results[idx].FixtureIndex == item.FixtureIndex {
			s.results[idx] = item
			return nil
		}
	}
	s.results = append(s.results, item)
	return nil
}

func (s *stubResultRepository) ListResultedGameweeks(_ context.Context) ([]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	seen := map[int]struct{}{}
	out := []int{}
	for _, item := range s.results {
		if _, ok := seen[item.Gameweek]; ok {
			continue
		}
		seen[item.Gameweek] = struct{}{}
		out = append(out, item.Gameweek)
	}
	sort.Ints(out)
	return out, nil
}

type stubUserRepository struct {
	users []user.User
	err   error
}

func (s *stubUserRepository) List(_ context.Context) ([]user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.users, nil
}

func (s *stubUserRepository) ListNotifiable(_ context.Context) ([]user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []user.User{}
	for _, item := range s.users {
		if item.NotificationsEnabled {
			out = append(out, item)
		}
	}
	return out, nil
}

type stubLeagueRepository struct {
	leagues   []minileague.League
	members   map[string][]minileague.Member
	overrides map[string]int
	err       error
}

func (s *stubLeagueRepository) List(_ context.Context) ([]minileague.League, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.leagues, nil
}

func (s *stubLeagueRepository) GetByID(_ context.Context, leagueID string) (minileague.League, bool, error) {
	if s.err != nil {
		return minileague.League{}, false, s.err
	}
	for _, item := range s.leagues {
		if item.ID == leagueID {
			return item, true, nil
		}
	}
	return minileague.League{}, false, nil
}

func (s *stubLeagueRepository) ListMembers(_ context.Context, leagueID string) ([]minileague.Member, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.members[leagueID], nil
}

func (s *stubLeagueRepository) GetStartOverride(_ context.Context, leagueID string) (int, bool, error) {
	if s.err != nil {
		return 0, false, s.err
	}
	start, ok := s.overrides[leagueID]
	return start, ok, nil
}

type stubTableWriter struct {
	mu     sync.Mutex
	tables map[string][]minileague.TableRow
	err    error
}

func (s *stubTableWriter) ReplaceTable(_ context.Context, leagueID string, rows []minileague.TableRow) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tables == nil {
		s.tables = map[string][]minileague.TableRow{}
	}
	s.tables[leagueID] = rows
	return nil
}

type stubDispatcher struct {
	mu       sync.Mutex
	sent     []notification.Dispatch
	failWith map[string]error
}

func (s *stubDispatcher) Send(_ context.Context, item notification.Dispatch) (notification.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failWith[item.EventID]; ok {
		return notification.Receipt{}, err
	}
	s.sent = append(s.sent, item)
	return notification.Receipt{Accepted: len(item.UserIDs)}, nil
}

func (s *stubDispatcher) sentByEventID() map[string]notification.Dispatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]notification.Dispatch, len(s.sent))
	for _, item := range s.sent {
		out[item.EventID] = item
	}
	return out
}
