package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/totl-app/totl-api/internal/domain/pick"
	"github.com/totl-app/totl-api/internal/domain/result"
	qb "github.com/totl-app/totl-api/internal/platform/querybuilder"
)

type resultTableModel struct {
	ID           int64     `db:"id"`
	Gameweek     int       `db:"gameweek"`
	FixtureIndex int       `db:"fixture_index"`
	Outcome      string    `db:"outcome"`
	DeclaredAt   time.Time `db:"declared_at"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type resultInsertModel struct {
	Gameweek     int       `db:"gameweek"`
	FixtureIndex int       `db:"fixture_index"`
	Outcome      string    `db:"outcome"`
	DeclaredAt   time.Time `db:"declared_at"`
}

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) ListByGameweek(ctx context.Context, gameweek int) ([]result.Result, error) {
	query, args, err := qb.Select("*").From("results").
		Where(qb.Eq("gameweek", gameweek)).
		OrderBy("fixture_index").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select results by gameweek query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select results by gameweek: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		mapped, ok := mapResultRow(row)
		if !ok {
			continue
		}
		out = append(out, mapped)
	}
	return out, nil
}

func (r *ResultRepository) GetByFixture(ctx context.Context, gameweek, fixtureIndex int) (result.Result, bool, error) {
	query, args, err := qb.Select("*").From("results").
		Where(
			qb.Eq("gameweek", gameweek),
			qb.Eq("fixture_index", fixtureIndex),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return result.Result{}, false, fmt.Errorf("build select result by fixture query: %w", err)
	}

	var row resultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return result.Result{}, false, nil
		}
		return result.Result{}, false, fmt.Errorf("select result by fixture: %w", err)
	}

	mapped, ok := mapResultRow(row)
	if !ok {
		return result.Result{}, false, nil
	}
	return mapped, true, nil
}

func (r *ResultRepository) Upsert(ctx context.Context, item result.Result) error {
	model := resultInsertModel{
		Gameweek:     item.Gameweek,
		FixtureIndex: item.FixtureIndex,
		Outcome:      string(item.Outcome),
		DeclaredAt:   item.DeclaredAt.UTC(),
	}

	query, args, err := qb.InsertModel("results", model, `ON CONFLICT (gameweek, fixture_index)
DO UPDATE SET outcome = EXCLUDED.outcome, declared_at = EXCLUDED.declared_at, updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}
	return nil
}

func (r *ResultRepository) ListResultedGameweeks(ctx context.Context) ([]int, error) {
	query, _, err := qb.Select("DISTINCT gameweek").From("results").
		OrderBy("gameweek").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select resulted gameweeks query: %w", err)
	}

	var out []int
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("select resulted gameweeks: %w", err)
	}
	return out, nil
}

func mapResultRow(row resultTableModel) (result.Result, bool) {
	outcome, ok := pick.ParseOutcome(row.Outcome)
	if !ok {
		return result.Result{}, false
	}
	return result.Result{
		Gameweek:     row.Gameweek,
		FixtureIndex: row.FixtureIndex,
		Outcome:      outcome,
		DeclaredAt:   row.DeclaredAt,
	}, true
}
