package pick

import "strings"

// Outcome is a match prediction symbol. Absence of a Pick means "no pick";
// an Outcome value is always one of exactly these three symbols.
type Outcome string

const (
	OutcomeHome Outcome = "H"
	OutcomeDraw Outcome = "D"
	OutcomeAway Outcome = "A"
)

// Pick is one user's prediction for one fixture. Immutable after the
// gameweek deadline; deadline enforcement lives with the write path, not
// here.
type Pick struct {
	UserID       string
	Gameweek     int
	FixtureIndex int
	Outcome      Outcome
}

func ParseOutcome(value string) (Outcome, bool) {
	switch Outcome(strings.ToUpper(strings.TrimSpace(value))) {
	case OutcomeHome:
		return OutcomeHome, true
	case OutcomeDraw:
		return OutcomeDraw, true
	case OutcomeAway:
		return OutcomeAway, true
	default:
		return "", false
	}
}

// OutcomeFromScore maps a scoreline to the outcome it currently implies.
func OutcomeFromScore(homeScore, awayScore int) Outcome {
	switch {
	case homeScore > awayScore:
		return OutcomeHome
	case homeScore < awayScore:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}
