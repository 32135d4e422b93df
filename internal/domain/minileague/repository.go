package minileague

import "context"

type Repository interface {
	List(ctx context.Context) ([]League, error)
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	ListMembers(ctx context.Context, leagueID string) ([]Member, error)
	// GetStartOverride returns the per-league start-gameweek override, the
	// strongest signal in the start resolution chain.
	GetStartOverride(ctx context.Context, leagueID string) (int, bool, error)
}

// TableWriter persists recomputed league tables. Kept separate from
// Repository so read paths can be wired without write access.
type TableWriter interface {
	ReplaceTable(ctx context.Context, leagueID string, rows []TableRow) error
}
