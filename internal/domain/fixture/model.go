package fixture

import "time"

// DeadlineBuffer is how long before the first kickoff of a gameweek picks
// close.
const DeadlineBuffer = 75 * time.Minute

// Fixture represents one scheduled match. Immutable once published and
// belonging to exactly one gameweek. APIMatchID links the fixture to the
// external live-score feed; zero means untracked.
type Fixture struct {
	ID           string
	Gameweek     int
	FixtureIndex int
	HomeTeam     string
	AwayTeam     string
	HomeTeamID   string
	AwayTeamID   string
	APIMatchID   int64
	KickoffAt    time.Time
}

// GameweekDeadline returns the pick deadline for a set of fixtures from one
// gameweek: the earliest kickoff minus DeadlineBuffer. False when no
// fixture carries a kickoff time.
func GameweekDeadline(items []Fixture) (time.Time, bool) {
	earliest := time.Time{}
	for _, item := range items {
		if item.KickoffAt.IsZero() {
			continue
		}
		if earliest.IsZero() || item.KickoffAt.Before(earliest) {
			earliest = item.KickoffAt
		}
	}
	if earliest.IsZero() {
		return time.Time{}, false
	}
	return earliest.Add(-DeadlineBuffer), true
}
