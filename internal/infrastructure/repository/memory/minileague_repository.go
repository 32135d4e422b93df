package memory

import (
	"context"
	"sync"

	"github.com/totl-app/totl-api/internal/domain/minileague"
)

type MiniLeagueRepository struct {
	mu        sync.RWMutex
	leagues   []minileague.League
	members   map[string][]minileague.Member
	overrides map[string]int
	tables    map[string][]minileague.TableRow
}

func NewMiniLeagueRepository(leagues []minileague.League, members []minileague.Member, overrides map[string]int) *MiniLeagueRepository {
	byLeague := make(map[string][]minileague.Member)
	for _, member := range members {
		byLeague[member.LeagueID] = append(byLeague[member.LeagueID], member)
	}
	if overrides == nil {
		overrides = map[string]int{}
	}

	return &MiniLeagueRepository{
		leagues:   append([]minileague.League(nil), leagues...),
		members:   byLeague,
		overrides: overrides,
		tables:    make(map[string][]minileague.TableRow),
	}
}

func (r *MiniLeagueRepository) List(_ context.Context) ([]minileague.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]minileague.League(nil), r.leagues...), nil
}

func (r *MiniLeagueRepository) GetByID(_ context.Context, leagueID string) (minileague.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.leagues {
		if item.ID == leagueID {
			return item, true, nil
		}
	}
	return minileague.League{}, false, nil
}

func (r *MiniLeagueRepository) ListMembers(_ context.Context, leagueID string) ([]minileague.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]minileague.Member(nil), r.members[leagueID]...), nil
}

func (r *MiniLeagueRepository) GetStartOverride(_ context.Context, leagueID string) (int, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	start, ok := r.overrides[leagueID]
	return start, ok, nil
}

func (r *MiniLeagueRepository) ReplaceTable(_ context.Context, leagueID string, rows []minileague.TableRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tables[leagueID] = append([]minileague.TableRow(nil), rows...)
	return nil
}

// StoredTable returns the last persisted table for a league. Used by the
// dev seed wiring and tests; the HTTP read path recomputes live.
func (r *MiniLeagueRepository) StoredTable(leagueID string) []minileague.TableRow {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]minileague.TableRow(nil), r.tables[leagueID]...)
}
