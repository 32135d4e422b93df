package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/totl-app/totl-api/internal/domain/fixture"
	qb "github.com/totl-app/totl-api/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListByGameweek(ctx context.Context, gameweek int) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("gameweek", gameweek)).
		OrderBy("fixture_index", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by gameweek query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures by gameweek: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapFixtureRow(row))
	}
	return out, nil
}

func (r *FixtureRepository) GetByAPIMatchID(ctx context.Context, apiMatchID int64) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(qb.Eq("api_match_id", apiMatchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build select fixture by match id query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("select fixture by match id: %w", err)
	}
	return mapFixtureRow(row), true, nil
}

func (r *FixtureRepository) ListGameweeks(ctx context.Context) ([]int, error) {
	query, _, err := qb.Select("DISTINCT gameweek").From("fixtures").
		OrderBy("gameweek").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select gameweeks query: %w", err)
	}

	var out []int
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("select gameweeks: %w", err)
	}
	return out, nil
}

func mapFixtureRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:           row.PublicID,
		Gameweek:     row.Gameweek,
		FixtureIndex: row.FixtureIndex,
		HomeTeam:     row.HomeTeam,
		AwayTeam:     row.AwayTeam,
		HomeTeamID:   row.HomeTeamID.String,
		AwayTeamID:   row.AwayTeamID.String,
		APIMatchID:   nullInt64ToInt64(row.APIMatchID),
		KickoffAt:    row.KickoffAt,
	}
}
