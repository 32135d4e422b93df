package postgres

import (
	"database/sql"
	"time"
)

type fixtureTableModel struct {
	ID           int64          `db:"id"`
	PublicID     string         `db:"public_id"`
	Gameweek     int            `db:"gameweek"`
	FixtureIndex int            `db:"fixture_index"`
	HomeTeam     string         `db:"home_team"`
	AwayTeam     string         `db:"away_team"`
	HomeTeamID   sql.NullString `db:"home_team_public_id"`
	AwayTeamID   sql.NullString `db:"away_team_public_id"`
	APIMatchID   sql.NullInt64  `db:"api_match_id"`
	KickoffAt    time.Time      `db:"kickoff_at"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func nullInt64ToInt64(value sql.NullInt64) int64 {
	if !value.Valid {
		return 0
	}
	return value.Int64
}
