package livescore

import "strings"

type Side string

const (
	SideHome    Side = "home"
	SideAway    Side = "away"
	SideUnknown Side = "unknown"
)

// ResolveScoringSide decides which side a goal belongs to. An explicit team
// id from the feed always wins; the feed's side label is next. Only when
// neither is present does it fall back to fuzzy name matching.
func ResolveScoringSide(goal Goal, homeTeamID, awayTeamID, homeName, awayName string) Side {
	if goal.TeamID != "" {
		switch goal.TeamID {
		case homeTeamID:
			return SideHome
		case awayTeamID:
			return SideAway
		}
	}

	switch goal.Team {
	case "home":
		return SideHome
	case "away":
		return SideAway
	}

	return matchSideByName(goal.Team, homeName, awayName)
}

// matchSideByName is the documented last-resort substring heuristic for
// feeds that only carry a free-text team label. Kept in one place so its
// fuzziness stays visible and testable.
func matchSideByName(label, homeName, awayName string) Side {
	needle := foldName(label)
	if needle == "" {
		return SideUnknown
	}

	home := foldName(homeName)
	away := foldName(awayName)
	homeHit := home != "" && (strings.Contains(home, needle) || strings.Contains(needle, home))
	awayHit := away != "" && (strings.Contains(away, needle) || strings.Contains(needle, away))

	switch {
	case homeHit && !awayHit:
		return SideHome
	case awayHit && !homeHit:
		return SideAway
	default:
		return SideUnknown
	}
}

func foldName(value string) string {
	return NormalizeScorer(value)
}
