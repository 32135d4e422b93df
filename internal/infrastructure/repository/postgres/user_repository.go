package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/totl-app/totl-api/internal/domain/user"
	qb "github.com/totl-app/totl-api/internal/platform/querybuilder"
)

type userTableModel struct {
	ID                   int64     `db:"id"`
	PublicID             string    `db:"public_id"`
	DisplayName          string    `db:"display_name"`
	NotificationsEnabled bool      `db:"notifications_enabled"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query, _, err := qb.Select("*").From("users").
		OrderBy("display_name", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	return mapUserRows(rows), nil
}

func (r *UserRepository) ListNotifiable(ctx context.Context) ([]user.User, error) {
	query, args, err := qb.Select("*").From("users").
		Where(qb.Eq("notifications_enabled", true)).
		OrderBy("display_name", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select notifiable users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select notifiable users: %w", err)
	}
	return mapUserRows(rows), nil
}

func mapUserRows(rows []userTableModel) []user.User {
	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, user.User{
			ID:                   row.PublicID,
			DisplayName:          row.DisplayName,
			NotificationsEnabled: row.NotificationsEnabled,
		})
	}
	return out
}
