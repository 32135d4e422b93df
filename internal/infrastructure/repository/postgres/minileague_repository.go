package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/totl-app/totl-api/internal/domain/minileague"
	qb "github.com/totl-app/totl-api/internal/platform/querybuilder"
)

type miniLeagueTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	Name          string    `db:"name"`
	StartGameweek int       `db:"start_gameweek"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type miniLeagueMemberModel struct {
	ID          int64     `db:"id"`
	LeagueID    string    `db:"league_public_id"`
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	CreatedAt   time.Time `db:"created_at"`
}

type miniLeagueTableRowInsertModel struct {
	LeagueID     string `db:"league_public_id"`
	UserID       string `db:"user_id"`
	DisplayName  string `db:"display_name"`
	LeaguePoints int    `db:"league_points"`
	Unicorns     int    `db:"unicorns"`
	OCP          int    `db:"ocp"`
	Rank         int    `db:"rank"`
	IsTied       bool   `db:"is_tied"`
}

type MiniLeagueRepository struct {
	db *sqlx.DB
}

func NewMiniLeagueRepository(db *sqlx.DB) *MiniLeagueRepository {
	return &MiniLeagueRepository{db: db}
}

func (r *MiniLeagueRepository) List(ctx context.Context) ([]minileague.League, error) {
	query, _, err := qb.Select("*").From("mini_leagues").
		OrderBy("name", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues query: %w", err)
	}

	var rows []miniLeagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select leagues: %w", err)
	}

	out := make([]minileague.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapLeagueRow(row))
	}
	return out, nil
}

func (r *MiniLeagueRepository) GetByID(ctx context.Context, leagueID string) (minileague.League, bool, error) {
	query, args, err := qb.Select("*").From("mini_leagues").
		Where(qb.Eq("public_id", leagueID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return minileague.League{}, false, fmt.Errorf("build select league query: %w", err)
	}

	var row miniLeagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return minileague.League{}, false, nil
		}
		return minileague.League{}, false, fmt.Errorf("select league: %w", err)
	}
	return mapLeagueRow(row), true, nil
}

func (r *MiniLeagueRepository) ListMembers(ctx context.Context, leagueID string) ([]minileague.Member, error) {
	query, args, err := qb.Select("*").From("mini_league_members").
		Where(qb.Eq("league_public_id", leagueID)).
		OrderBy("display_name", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select members query: %w", err)
	}

	var rows []miniLeagueMemberModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select members: %w", err)
	}

	out := make([]minileague.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, minileague.Member{
			LeagueID:    row.LeagueID,
			UserID:      row.UserID,
			DisplayName: row.DisplayName,
		})
	}
	return out, nil
}

func (r *MiniLeagueRepository) GetStartOverride(ctx context.Context, leagueID string) (int, bool, error) {
	query, args, err := qb.Select("start_gameweek").From("mini_league_start_overrides").
		Where(qb.Eq("league_public_id", leagueID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build select start override query: %w", err)
	}

	var start int
	if err := r.db.GetContext(ctx, &start, query, args...); err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("select start override: %w", err)
	}
	return start, true, nil
}

// ReplaceTable swaps the stored table for a league in one transaction so
// readers never observe a half-written table.
func (r *MiniLeagueRepository) ReplaceTable(ctx context.Context, leagueID string, tableRows []minileague.TableRow) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace table tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM mini_league_tables WHERE league_public_id = $1`, leagueID); err != nil {
		return fmt.Errorf("delete stale table rows: %w", err)
	}

	for _, row := range tableRows {
		model := miniLeagueTableRowInsertModel{
			LeagueID:     leagueID,
			UserID:       row.UserID,
			DisplayName:  row.DisplayName,
			LeaguePoints: row.LeaguePoints,
			Unicorns:     row.Unicorns,
			OCP:          row.OCP,
			Rank:         row.Rank,
			IsTied:       row.IsTied,
		}
		query, args, err := qb.InsertModel("mini_league_tables", model, "")
		if err != nil {
			return fmt.Errorf("build insert table row query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert table row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace table tx: %w", err)
	}
	return nil
}

func mapLeagueRow(row miniLeagueTableModel) minileague.League {
	return minileague.League{
		ID:            row.PublicID,
		Name:          row.Name,
		StartGameweek: row.StartGameweek,
		CreatedAt:     row.CreatedAt,
	}
}
