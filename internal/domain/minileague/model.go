package minileague

import "time"

// League is a private mini-league of users competing on gameweek wins.
type League struct {
	ID            string
	Name          string
	StartGameweek int // 0 means not set; see usecase start resolution
	CreatedAt     time.Time
}

// Member ties one user to one league.
type Member struct {
	LeagueID    string
	UserID      string
	DisplayName string
}

// TableRow is one accumulated mini-league table entry. LeaguePoints: 3 per
// outright gameweek win, 1 per shared win. OCP is the member's total
// correct picks over the league's relevant gameweeks.
type TableRow struct {
	LeagueID     string
	UserID       string
	DisplayName  string
	LeaguePoints int
	Unicorns     int
	OCP          int
	Rank         int
	IsTied       bool
}
