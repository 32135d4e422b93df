package usecase

import (
	"fmt"
	"math"

	"github.com/totl-app/totl-api/internal/domain/pick"
)

// OutcomeGroups splits notification recipients by how their pick relates to
// the current live outcome. The three groups are disjoint and together
// cover every input recipient exactly once.
type OutcomeGroups struct {
	OnTrack  []string
	OffTrack []string
	NoPick   []string
}

// PartitionByOutcome buckets recipients against the currently implied
// outcome. Users move between groups as the scoreline changes; each group
// carries its own key suffix, so a moved user legitimately gets a fresh
// notification.
func PartitionByOutcome(recipients []string, picks map[string]pick.Outcome, outcome pick.Outcome) OutcomeGroups {
	groups := OutcomeGroups{}
	for _, userID := range recipients {
		picked, ok := picks[userID]
		switch {
		case !ok:
			groups.NoPick = append(groups.NoPick, userID)
		case picked == outcome:
			groups.OnTrack = append(groups.OnTrack, userID)
		default:
			groups.OffTrack = append(groups.OffTrack, userID)
		}
	}
	return groups
}

// ResultGroups is the full-time split: there is no "still on track" once a
// result is declared, only correct and wrong.
type ResultGroups struct {
	Correct []string
	Wrong   []string
	NoPick  []string
}

func PartitionByResult(recipients []string, picks map[string]pick.Outcome, declared pick.Outcome) ResultGroups {
	groups := ResultGroups{}
	for _, userID := range recipients {
		picked, ok := picks[userID]
		switch {
		case !ok:
			groups.NoPick = append(groups.NoPick, userID)
		case picked == declared:
			groups.Correct = append(groups.Correct, userID)
		default:
			groups.Wrong = append(groups.Wrong, userID)
		}
	}
	return groups
}

// CorrectPercentage is the population statistic quoted in full-time bodies:
// rounded share of correct picks among users who picked at all.
func CorrectPercentage(countCorrect, countWithPicks int) int {
	if countWithPicks <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(countCorrect) / float64(countWithPicks)))
}

// FullTimePhrase renders the population statistic. Low percentages get the
// "Only" phrasing to celebrate rare correct calls.
func FullTimePhrase(correctPercentage int) string {
	if correctPercentage <= 20 {
		return fmt.Sprintf("Only %d%% got this correct", correctPercentage)
	}
	return fmt.Sprintf("%d%% got this correct", correctPercentage)
}
