package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/totl-app/totl-api/internal/domain/pick"
	qb "github.com/totl-app/totl-api/internal/platform/querybuilder"
)

type pickTableModel struct {
	ID           int64     `db:"id"`
	UserID       string    `db:"user_id"`
	Gameweek     int       `db:"gameweek"`
	FixtureIndex int       `db:"fixture_index"`
	Outcome      string    `db:"outcome"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) ListByGameweek(ctx context.Context, gameweek int) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(qb.Eq("gameweek", gameweek)).
		OrderBy("fixture_index", "user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by gameweek query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks by gameweek: %w", err)
	}
	return mapPickRows(rows), nil
}

func (r *PickRepository) ListByFixture(ctx context.Context, gameweek, fixtureIndex int) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("gameweek", gameweek),
			qb.Eq("fixture_index", fixtureIndex),
		).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select picks by fixture query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks by fixture: %w", err)
	}
	return mapPickRows(rows), nil
}

func mapPickRows(rows []pickTableModel) []pick.Pick {
	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		outcome, ok := pick.ParseOutcome(row.Outcome)
		if !ok {
			continue
		}
		out = append(out, pick.Pick{
			UserID:       row.UserID,
			Gameweek:     row.Gameweek,
			FixtureIndex: row.FixtureIndex,
			Outcome:      outcome,
		})
	}
	return out
}
